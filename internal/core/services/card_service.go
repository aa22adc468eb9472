package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"pichincha-tarjetas/internal/adapters/persistence/repositories"
	"pichincha-tarjetas/internal/core/cardgen"
	"pichincha-tarjetas/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	cardValidityYears  = 5
	expiringSoonWindow = 30 * 24 * time.Hour
)

var nationalIDPattern = regexp.MustCompile(`^\d{10}$`)

// CardService implements the card lifecycle: issuance, queries, status
// transitions, partial updates, deletion and the expiration sweep.
type CardService struct {
	repo repositories.CardRepository
	gen  cardgen.Generator
	log  *logrus.Logger

	// now is the clock; tests substitute a fixed one
	now func() time.Time
}

// NewCardService creates a new card service
func NewCardService(repo repositories.CardRepository, gen cardgen.Generator, log *logrus.Logger) *CardService {
	return &CardService{
		repo: repo,
		gen:  gen,
		log:  log,
		now:  time.Now,
	}
}

// IssueCardInput represents a card issuance request
type IssueCardInput struct {
	HolderName     string
	NationalID     string
	DailyLimit     decimal.Decimal
	InitialBalance decimal.Decimal
	CardType       domain.CardType
	Phone          string
	Email          string
}

// UpdateCardInput represents a partial update. Only non-nil fields
// overwrite the stored record; status is deliberately not updatable
// through this path.
type UpdateCardInput struct {
	DailyLimit *decimal.Decimal
	Phone      *string
	Email      *string
}

// Issue creates a new card with generated credentials. At most one ACTIVE
// card may exist per national id; a violation returns
// domain.ErrActiveCardExists. Generated numbers are checked for
// availability before the insert; a collision is retried once before
// surfacing domain.ErrCardNumberTaken.
func (s *CardService) Issue(ctx context.Context, input *IssueCardInput) (*domain.Card, error) {
	if err := validateIssueInput(input); err != nil {
		return nil, err
	}

	s.log.WithField("cedula", input.NationalID).Info("Issuing new debit card")

	now := s.now()
	card := &domain.Card{
		HolderName:       strings.TrimSpace(input.HolderName),
		NationalID:       input.NationalID,
		ExpirationDate:   domain.Day(now).AddDate(cardValidityYears, 0, 0),
		DailyLimit:       input.DailyLimit,
		AvailableBalance: input.InitialBalance,
		Status:           domain.StatusActive,
		CardType:         input.CardType,
		Phone:            input.Phone,
		Email:            input.Email,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// One retry on a generation collision; a second hit means something
	// is wrong beyond bad luck and the conflict goes to the caller.
	for attempt := 0; attempt < 2; attempt++ {
		number, err := s.gen.CardNumber()
		if err != nil {
			return nil, fmt.Errorf("failed to generate card number: %w", err)
		}
		taken, err := s.repo.ExistsByNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		if taken {
			if attempt == 0 {
				s.log.WithField("cedula", input.NationalID).
					Warn("Generated card number collided, retrying")
				continue
			}
			return nil, domain.ErrCardNumberTaken
		}

		card.CardNumber = number
		card.CVV, err = s.gen.CVV()
		if err != nil {
			return nil, fmt.Errorf("failed to generate cvv: %w", err)
		}

		created, err := s.repo.Create(ctx, card)
		if err == nil {
			s.log.WithFields(logrus.Fields{"id": created.ID, "cedula": created.NationalID}).
				Info("Card issued")
			return created, nil
		}
		if errors.Is(err, domain.ErrCardNumberTaken) && attempt == 0 {
			// lost the race between the availability check and the insert
			s.log.WithField("cedula", input.NationalID).
				Warn("Generated card number collided, retrying")
			continue
		}
		return nil, err
	}
	return nil, domain.ErrCardNumberTaken
}

// GetByID gets a card by ID
func (s *CardService) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByNumber gets a card by its number
func (s *CardService) GetByNumber(ctx context.Context, cardNumber string) (*domain.Card, error) {
	return s.repo.GetByNumber(ctx, cardNumber)
}

// ListAll lists every card
func (s *CardService) ListAll(ctx context.Context) ([]*domain.Card, error) {
	return s.repo.ListAll(ctx)
}

// ListByNationalID lists all cards of a holder
func (s *CardService) ListByNationalID(ctx context.Context, nationalID string) ([]*domain.Card, error) {
	return s.repo.ListByNationalID(ctx, nationalID)
}

// ListActiveByNationalID lists a holder's ACTIVE cards
func (s *CardService) ListActiveByNationalID(ctx context.Context, nationalID string) ([]*domain.Card, error) {
	return s.repo.ListActiveByNationalID(ctx, nationalID)
}

// ListByStatus lists cards in a status
func (s *CardService) ListByStatus(ctx context.Context, status domain.CardStatus) ([]*domain.Card, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}
	return s.repo.ListByStatus(ctx, status)
}

// ListByType lists cards of a product tier
func (s *CardService) ListByType(ctx context.Context, cardType domain.CardType) ([]*domain.Card, error) {
	if !cardType.IsValid() {
		return nil, domain.ErrInvalidCardType
	}
	return s.repo.ListByType(ctx, cardType)
}

// SearchByHolderName searches cards by holder name, case-insensitive substring
func (s *CardService) SearchByHolderName(ctx context.Context, name string) ([]*domain.Card, error) {
	return s.repo.SearchByHolderName(ctx, name)
}

// ListExpiringSoon returns ACTIVE cards expiring within the next 30 days
func (s *CardService) ListExpiringSoon(ctx context.Context) ([]*domain.Card, error) {
	return s.repo.ListExpiringSoon(ctx, s.now().Add(expiringSoonWindow))
}

// CountByStatus counts cards in a status
func (s *CardService) CountByStatus(ctx context.Context, status domain.CardStatus) (int64, error) {
	if !status.IsValid() {
		return 0, domain.ErrInvalidStatus
	}
	return s.repo.CountByStatus(ctx, status)
}

// Update applies a partial update. Omitted fields are left untouched and
// the update timestamp is always refreshed.
func (s *CardService) Update(ctx context.Context, id string, input *UpdateCardInput) (*domain.Card, error) {
	if input.DailyLimit != nil && !input.DailyLimit.IsPositive() {
		return nil, fmt.Errorf("%w: daily limit must be greater than 0", domain.ErrInvalidInput)
	}

	card, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prevUpdatedAt := card.UpdatedAt
	if input.DailyLimit != nil {
		card.DailyLimit = *input.DailyLimit
	}
	if input.Phone != nil {
		card.Phone = *input.Phone
	}
	if input.Email != nil {
		card.Email = *input.Email
	}
	card.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, card, prevUpdatedAt)
	if err != nil {
		return nil, err
	}
	s.log.WithField("id", id).Info("Card updated")
	return updated, nil
}

// Block transitions a card to BLOCKED
func (s *CardService) Block(ctx context.Context, id string) (*domain.Card, error) {
	return s.changeStatus(ctx, id, domain.StatusBlocked)
}

// Unblock transitions a BLOCKED card back to ACTIVE
func (s *CardService) Unblock(ctx context.Context, id string) (*domain.Card, error) {
	return s.changeStatus(ctx, id, domain.StatusActive)
}

// Suspend transitions a card to SUSPENDED
func (s *CardService) Suspend(ctx context.Context, id string) (*domain.Card, error) {
	return s.changeStatus(ctx, id, domain.StatusSuspended)
}

// Reactivate transitions a SUSPENDED card back to ACTIVE
func (s *CardService) Reactivate(ctx context.Context, id string) (*domain.Card, error) {
	return s.changeStatus(ctx, id, domain.StatusActive)
}

// Cancel transitions a card to CANCELLED (terminal)
func (s *CardService) Cancel(ctx context.Context, id string) (*domain.Card, error) {
	return s.changeStatus(ctx, id, domain.StatusCancelled)
}

// Delete hard-deletes a card and reports whether it existed
func (s *CardService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.WithField("id", id).Info("Card deleted")
	}
	return deleted, nil
}

// SweepExpired transitions every overdue card to EXPIRED and returns the
// number of cards updated. A second run finds nothing and returns 0.
func (s *CardService) SweepExpired(ctx context.Context) (int64, error) {
	now := s.now()
	count, err := s.repo.MarkExpired(ctx, now, now)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.log.WithField("count", count).Info("Expired cards swept")
	}
	return count, nil
}

// changeStatus performs a guarded read-modify-write status transition
func (s *CardService) changeStatus(ctx context.Context, id string, next domain.CardStatus) (*domain.Card, error) {
	card, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if card.Status == next {
		// Repeating a transition is a no-op, not an error
		return card, nil
	}
	if !card.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, card.Status, next)
	}

	prevUpdatedAt := card.UpdatedAt
	card.Status = next
	card.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, card, prevUpdatedAt)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"id": id, "estado": next}).Info("Card status changed")
	return updated, nil
}

func validateIssueInput(input *IssueCardInput) error {
	name := strings.TrimSpace(input.HolderName)
	// character count, not byte count: holder names carry accented letters
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		return fmt.Errorf("%w: holder name must be 2-100 characters", domain.ErrInvalidInput)
	}
	if !nationalIDPattern.MatchString(input.NationalID) {
		return fmt.Errorf("%w: national id must be exactly 10 digits", domain.ErrInvalidInput)
	}
	if !input.DailyLimit.IsPositive() {
		return fmt.Errorf("%w: daily limit must be greater than 0", domain.ErrInvalidInput)
	}
	if input.InitialBalance.IsNegative() {
		return fmt.Errorf("%w: initial balance must be greater than or equal to 0", domain.ErrInvalidInput)
	}
	if !input.CardType.IsValid() {
		return domain.ErrInvalidCardType
	}
	return nil
}
