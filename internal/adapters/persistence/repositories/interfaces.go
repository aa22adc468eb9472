package repositories

import (
	"context"
	"time"

	"pichincha-tarjetas/internal/core/domain"
)

// CardRepository defines the card store contract. Every call takes a
// context so callers can attach deadlines and fail fast when the store
// is unavailable.
type CardRepository interface {
	// Create persists a new card. The check that no ACTIVE card exists
	// for the same national id runs atomically with the insert; a
	// violation returns domain.ErrActiveCardExists. A collision on the
	// generated card number returns domain.ErrCardNumberTaken.
	Create(ctx context.Context, card *domain.Card) (*domain.Card, error)

	GetByID(ctx context.Context, id string) (*domain.Card, error)
	GetByNumber(ctx context.Context, cardNumber string) (*domain.Card, error)
	ListAll(ctx context.Context) ([]*domain.Card, error)
	ListByNationalID(ctx context.Context, nationalID string) ([]*domain.Card, error)
	ListActiveByNationalID(ctx context.Context, nationalID string) ([]*domain.Card, error)
	ListByStatus(ctx context.Context, status domain.CardStatus) ([]*domain.Card, error)
	ListByType(ctx context.Context, cardType domain.CardType) ([]*domain.Card, error)
	SearchByHolderName(ctx context.Context, name string) ([]*domain.Card, error)

	// ListExpiringSoon returns ACTIVE cards expiring on or before the given day
	ListExpiringSoon(ctx context.Context, until time.Time) ([]*domain.Card, error)

	CountByStatus(ctx context.Context, status domain.CardStatus) (int64, error)

	// Update overwrites the stored record only if it has not changed since
	// prevUpdatedAt (conditional write). A stale record returns
	// domain.ErrConcurrentUpdate; a missing one domain.ErrCardNotFound.
	Update(ctx context.Context, card *domain.Card, prevUpdatedAt time.Time) (*domain.Card, error)

	// Delete hard-deletes a card and reports whether a record existed
	Delete(ctx context.Context, id string) (bool, error)

	// MarkExpired transitions every non-terminal card whose expiration date
	// is before the given day to EXPIRED in a single atomic batch and
	// returns the number of cards updated.
	MarkExpired(ctx context.Context, today time.Time, updatedAt time.Time) (int64, error)

	ExistsByNumber(ctx context.Context, cardNumber string) (bool, error)
	Ping(ctx context.Context) error
}
