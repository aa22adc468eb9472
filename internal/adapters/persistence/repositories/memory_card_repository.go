package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"pichincha-tarjetas/internal/core/domain"

	"github.com/google/uuid"
)

// memoryCardRepository is a mutex-guarded in-memory store. It backs the
// service and handler tests and mirrors the semantics of the MySQL
// implementation, including the issuance and conditional-write guards.
type memoryCardRepository struct {
	mu          sync.RWMutex
	cards       map[string]*domain.Card
	numberIndex map[string]string // card number -> id
}

// NewMemoryCardRepository creates an empty in-memory card repository
func NewMemoryCardRepository() CardRepository {
	return &memoryCardRepository{
		cards:       make(map[string]*domain.Card),
		numberIndex: make(map[string]string),
	}
}

func (r *memoryCardRepository) Create(ctx context.Context, card *domain.Card) (*domain.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.cards {
		if existing.NationalID == card.NationalID && existing.Status == domain.StatusActive {
			return nil, domain.ErrActiveCardExists
		}
	}
	if _, taken := r.numberIndex[card.CardNumber]; taken {
		return nil, domain.ErrCardNumberTaken
	}

	stored := *card
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.cards[stored.ID] = &stored
	r.numberIndex[stored.CardNumber] = stored.ID

	result := stored
	return &result, nil
}

func (r *memoryCardRepository) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	card, ok := r.cards[id]
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	result := *card
	return &result, nil
}

func (r *memoryCardRepository) GetByNumber(ctx context.Context, cardNumber string) (*domain.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.numberIndex[cardNumber]
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	result := *r.cards[id]
	return &result, nil
}

func (r *memoryCardRepository) ListAll(ctx context.Context) ([]*domain.Card, error) {
	return r.filter(func(*domain.Card) bool { return true }), nil
}

func (r *memoryCardRepository) ListByNationalID(ctx context.Context, nationalID string) ([]*domain.Card, error) {
	return r.filter(func(c *domain.Card) bool { return c.NationalID == nationalID }), nil
}

func (r *memoryCardRepository) ListActiveByNationalID(ctx context.Context, nationalID string) ([]*domain.Card, error) {
	return r.filter(func(c *domain.Card) bool {
		return c.NationalID == nationalID && c.Status == domain.StatusActive
	}), nil
}

func (r *memoryCardRepository) ListByStatus(ctx context.Context, status domain.CardStatus) ([]*domain.Card, error) {
	return r.filter(func(c *domain.Card) bool { return c.Status == status }), nil
}

func (r *memoryCardRepository) ListByType(ctx context.Context, cardType domain.CardType) ([]*domain.Card, error) {
	return r.filter(func(c *domain.Card) bool { return c.CardType == cardType }), nil
}

func (r *memoryCardRepository) SearchByHolderName(ctx context.Context, name string) ([]*domain.Card, error) {
	needle := strings.ToLower(name)
	return r.filter(func(c *domain.Card) bool {
		return strings.Contains(strings.ToLower(c.HolderName), needle)
	}), nil
}

func (r *memoryCardRepository) ListExpiringSoon(ctx context.Context, until time.Time) ([]*domain.Card, error) {
	limit := domain.Day(until)
	return r.filter(func(c *domain.Card) bool {
		return c.Status == domain.StatusActive && !c.ExpirationDate.After(limit)
	}), nil
}

func (r *memoryCardRepository) CountByStatus(ctx context.Context, status domain.CardStatus) (int64, error) {
	return int64(len(r.filter(func(c *domain.Card) bool { return c.Status == status }))), nil
}

func (r *memoryCardRepository) Update(ctx context.Context, card *domain.Card, prevUpdatedAt time.Time) (*domain.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.cards[card.ID]
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	if !stored.UpdatedAt.Equal(prevUpdatedAt) {
		return nil, domain.ErrConcurrentUpdate
	}

	updated := *stored
	updated.DailyLimit = card.DailyLimit
	updated.Status = card.Status
	updated.Phone = card.Phone
	updated.Email = card.Email
	updated.UpdatedAt = card.UpdatedAt
	r.cards[card.ID] = &updated

	result := updated
	return &result, nil
}

func (r *memoryCardRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	card, ok := r.cards[id]
	if !ok {
		return false, nil
	}
	delete(r.numberIndex, card.CardNumber)
	delete(r.cards, id)
	return true, nil
}

func (r *memoryCardRepository) MarkExpired(ctx context.Context, today time.Time, updatedAt time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for id, card := range r.cards {
		if card.Status.IsTerminal() || !card.IsExpiredAt(today) {
			continue
		}
		updated := *card
		updated.Status = domain.StatusExpired
		updated.UpdatedAt = updatedAt
		r.cards[id] = &updated
		count++
	}
	return count, nil
}

func (r *memoryCardRepository) ExistsByNumber(ctx context.Context, cardNumber string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.numberIndex[cardNumber]
	return ok, nil
}

func (r *memoryCardRepository) Ping(ctx context.Context) error {
	return nil
}

func (r *memoryCardRepository) filter(keep func(*domain.Card) bool) []*domain.Card {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var cards []*domain.Card
	for _, card := range r.cards {
		if keep(card) {
			result := *card
			cards = append(cards, &result)
		}
	}
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].CreatedAt.Equal(cards[j].CreatedAt) {
			return cards[i].ID < cards[j].ID
		}
		return cards[i].CreatedAt.Before(cards[j].CreatedAt)
	})
	return cards
}
