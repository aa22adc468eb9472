package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"pichincha-tarjetas/internal/adapters/persistence/repositories"
	"pichincha-tarjetas/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator returns queued card numbers; CVV is fixed
type stubGenerator struct {
	numbers []string
	next    int
}

func (g *stubGenerator) CardNumber() (string, error) {
	if g.next < len(g.numbers) {
		n := g.numbers[g.next]
		g.next++
		return n, nil
	}
	// fall back to unique numbers so unrelated tests never collide
	g.next++
	return fmt.Sprintf("5428%012d", g.next), nil
}

func (g *stubGenerator) CVV() (string, error) {
	return "123", nil
}

// fakeClock advances one second per call so update timestamps are
// strictly increasing across operations
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	c.current = c.current.Add(time.Second)
	return c.current
}

func newTestService(gen *stubGenerator) (*CardService, repositories.CardRepository, *fakeClock) {
	repo := repositories.NewMemoryCardRepository()
	log := logrus.New()
	log.SetOutput(io.Discard)

	clock := &fakeClock{current: time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)}
	svc := NewCardService(repo, gen, log)
	svc.now = clock.Now
	return svc, repo, clock
}

func validIssueInput() *IssueCardInput {
	return &IssueCardInput{
		HolderName:     "Juan Carlos Pérez González",
		NationalID:     "1234567890",
		DailyLimit:     decimal.NewFromFloat(1000.00),
		InitialBalance: decimal.NewFromFloat(500.00),
		CardType:       domain.TypeClassic,
		Phone:          "0991234567",
		Email:          "juan.perez@example.com",
	}
}

func TestIssueCard(t *testing.T) {
	svc, _, _ := newTestService(&stubGenerator{})
	ctx := context.Background()

	card, err := svc.Issue(ctx, validIssueInput())
	require.NoError(t, err)

	assert.NotEmpty(t, card.ID)
	assert.Regexp(t, `^5428\d{12}$`, card.CardNumber)
	assert.Regexp(t, `^\d{3}$`, card.CVV)
	assert.Equal(t, domain.StatusActive, card.Status)
	assert.True(t, card.DailyLimit.Equal(decimal.NewFromFloat(1000.00)))
	assert.True(t, card.AvailableBalance.Equal(decimal.NewFromFloat(500.00)))
	assert.Equal(t, domain.TypeClassic, card.CardType)

	// expiration = issuance day + 5 years
	wantExpiration := time.Date(2031, 8, 28, 0, 0, 0, 0, time.UTC)
	assert.True(t, card.ExpirationDate.Equal(wantExpiration),
		"expiration %s, want %s", card.ExpirationDate, wantExpiration)
}

func TestIssueCardValidation(t *testing.T) {
	svc, _, _ := newTestService(&stubGenerator{})
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*IssueCardInput)
	}{
		{"short holder name", func(in *IssueCardInput) { in.HolderName = "J" }},
		{"single accented rune", func(in *IssueCardInput) { in.HolderName = "é" }},
		{"over a hundred runes", func(in *IssueCardInput) { in.HolderName = strings.Repeat("ñ", 101) }},
		{"blank holder name", func(in *IssueCardInput) { in.HolderName = "   " }},
		{"short national id", func(in *IssueCardInput) { in.NationalID = "12345" }},
		{"non-numeric national id", func(in *IssueCardInput) { in.NationalID = "12345678ab" }},
		{"zero daily limit", func(in *IssueCardInput) { in.DailyLimit = decimal.Zero }},
		{"negative daily limit", func(in *IssueCardInput) { in.DailyLimit = decimal.NewFromInt(-5) }},
		{"negative balance", func(in *IssueCardInput) { in.InitialBalance = decimal.NewFromInt(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validIssueInput()
			tt.mutate(input)
			_, err := svc.Issue(ctx, input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	t.Run("invalid card type", func(t *testing.T) {
		input := validIssueInput()
		input.CardType = domain.CardType("DEBIT")
		_, err := svc.Issue(ctx, input)
		assert.ErrorIs(t, err, domain.ErrInvalidCardType)
	})

	// zero initial balance is allowed
	t.Run("zero balance ok", func(t *testing.T) {
		input := validIssueInput()
		input.NationalID = "9876543210"
		input.InitialBalance = decimal.Zero
		card, err := svc.Issue(ctx, input)
		require.NoError(t, err)
		assert.True(t, card.AvailableBalance.IsZero())
	})

	// length limits count characters, so a 100-rune accented name fits
	t.Run("hundred rune name ok", func(t *testing.T) {
		input := validIssueInput()
		input.NationalID = "5678901234"
		input.HolderName = strings.Repeat("é", 100)
		card, err := svc.Issue(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("é", 100), card.HolderName)
	})
}

func TestIssueDuplicateActiveCard(t *testing.T) {
	svc, _, _ := newTestService(&stubGenerator{})
	ctx := context.Background()

	first, err := svc.Issue(ctx, validIssueInput())
	require.NoError(t, err)

	_, err = svc.Issue(ctx, validIssueInput())
	assert.ErrorIs(t, err, domain.ErrActiveCardExists)

	// cancelling the first card frees the holder for a new issuance
	_, err = svc.Cancel(ctx, first.ID)
	require.NoError(t, err)

	second, err := svc.Issue(ctx, validIssueInput())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestIssueCardNumberCollisionRetry(t *testing.T) {
	gen := &stubGenerator{numbers: []string{
		"5428000000000001",
		"5428000000000001", // colliding retry is re-generated below
		"5428000000000002",
	}}
	svc, _, _ := newTestService(gen)
	ctx := context.Background()

	first, err := svc.Issue(ctx, validIssueInput())
	require.NoError(t, err)
	assert.Equal(t, "5428000000000001", first.CardNumber)

	// second holder draws the same number first, then a fresh one
	input := validIssueInput()
	input.NationalID = "9999999999"
	second, err := svc.Issue(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "5428000000000002", second.CardNumber)
}

func TestIssueCardNumberCollisionExhausted(t *testing.T) {
	gen := &stubGenerator{numbers: []string{
		"5428000000000001",
		"5428000000000001",
		"5428000000000001",
	}}
	svc, _, _ := newTestService(gen)
	ctx := context.Background()

	_, err := svc.Issue(ctx, validIssueInput())
	require.NoError(t, err)

	input := validIssueInput()
	input.NationalID = "9999999999"
	_, err = svc.Issue(ctx, input)
	assert.ErrorIs(t, err, domain.ErrCardNumberTaken)
}

func TestCardNumberAvailability(t *testing.T) {
	svc, repo, _ := newTestService(&stubGenerator{})
	ctx := context.Background()

	card, err := svc.Issue(ctx, validIssueInput())
	require.NoError(t, err)

	taken, err := repo.ExistsByNumber(ctx, card.CardNumber)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ExistsByNumber(ctx, "5428999999999999")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestGetByIDAndNumber(t *testing.T) {
	svc, _, _ := newTestService(&stubGenerator{})
	ctx := context.Background()

	card, err := svc.Issue(ctx, validIssueInput())
	require.NoError(t, err)

	byID, err := svc.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, card.CardNumber, byID.CardNumber)

	byNumber, err := svc.GetByNumber(ctx, card.CardNumber)
	require.NoError(t, err)
	assert.Equal(t, card.ID, byNumber.ID)

	_, err = svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCardNotFound)

	_, err = svc.GetByNumber(ctx, "5428999999999999")
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
}

func TestBlockAndUnblock(t *testing.T) {
	svc, _, _ := newTestService(&stubGenerator{})
	ctx := context.Background()

	card, err := svc.Issue(ctx, validIssueInput())
	require.NoError(t, err)

	blocked, err := svc.Block(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBlocked, blocked.Status)
	assert.True(t, blocked.UpdatedAt.After(card.UpdatedAt))

	unblocked, err := svc.Unblock(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, unblocked.Status)
	assert.True(t, unblocked.UpdatedAt.After(blocked.UpdatedAt))
}

func TestSuspendAndReactivate(t *testing.T) {
	svc, _, _ := newTestService(&stubGenerator{})
	ctx := context.Background()

	card, err := svc.Issue(ctx, validIssueInput())
	require.NoError(t, err)

	suspended, err := svc.Suspend(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuspended, suspended.Status)

	// suspended cards cannot be blocked directly
	_, err = svc.Block(ctx, card.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	reactivated, err := svc.Reactivate(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, reactivated.Status)
}

func TestTerminalStatesAreImmutable(t *testing.T) {
	svc, _, _ := newTestService(&stubGenerator{})
	ctx := context.Background()

	card, err := svc.Issue(ctx, validIssueInput())
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	// repeating the transition is a no-op
	again, err := svc.Cancel(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, again.Status)
	assert.Equal(t, cancelled.UpdatedAt, again.UpdatedAt)

	_, err = svc.Unblock(ctx, card.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = svc.Block(ctx, card.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTransitionOnMissingCard(t *testing.T) {
	svc, _, _ := newTestService(&stubGenerator{})
	ctx := context.Background()

	for name, op := range map[string]func(context.Context, string) (*domain.Card, error){
		"block":      svc.Block,
		"unblock":    svc.Unblock,
		"suspend":    svc.Suspend,
		"reactivate": svc.Reactivate,
		"cancel":     svc.Cancel,
	} {
		_, err := op(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrCardNotFound, name)
	}
}

func TestUpdatePartialMerge(t *testing.T) {
	svc, _, _ := newTestService(&stubGenerator{})
	ctx := context.Background()

	card, err := svc.Issue(ctx, validIssueInput())
	require.NoError(t, err)

	newLimit := decimal.NewFromFloat(2500.00)
	updated, err := svc.Update(ctx, card.ID, &UpdateCardInput{DailyLimit: &newLimit})
	require.NoError(t, err)

	assert.True(t, updated.DailyLimit.Equal(newLimit))
	// untouched fields survive
	assert.Equal(t, card.Phone, updated.Phone)
	assert.Equal(t, card.Email, updated.Email)
	assert.Equal(t, domain.StatusActive, updated.Status)
	assert.True(t, updated.UpdatedAt.After(card.UpdatedAt))

	phone := "0987654321"
	email := "nuevo@example.com"
	updated2, err := svc.Update(ctx, card.ID, &UpdateCardInput{Phone: &phone, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, phone, updated2.Phone)
	assert.Equal(t, email, updated2.Email)
	assert.True(t, updated2.DailyLimit.Equal(newLimit))
}

func TestUpdateValidation(t *testing.T) {
	svc, _, _ := newTestService(&stubGenerator{})
	ctx := context.Background()

	card, err := svc.Issue(ctx, validIssueInput())
	require.NoError(t, err)

	zero := decimal.Zero
	_, err = svc.Update(ctx, card.ID, &UpdateCardInput{DailyLimit: &zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	limit := decimal.NewFromInt(100)
	_, err = svc.Update(ctx, "missing", &UpdateCardInput{DailyLimit: &limit})
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
}

func TestDeleteCard(t *testing.T) {
	svc, _, _ := newTestService(&stubGenerator{})
	ctx := context.Background()

	deleted, err := svc.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, deleted)

	card, err := svc.Issue(ctx, validIssueInput())
	require.NoError(t, err)

	deleted, err = svc.Delete(ctx, card.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = svc.GetByID(ctx, card.ID)
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
}

func TestQueries(t *testing.T) {
	svc, _, _ := newTestService(&stubGenerator{})
	ctx := context.Background()

	input1 := validIssueInput()
	card1, err := svc.Issue(ctx, input1)
	require.NoError(t, err)

	input2 := validIssueInput()
	input2.HolderName = "María Fernanda López Martínez"
	input2.NationalID = "2345678901"
	input2.CardType = domain.TypeGold
	card2, err := svc.Issue(ctx, input2)
	require.NoError(t, err)

	_, err = svc.Block(ctx, card2.ID)
	require.NoError(t, err)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byCedula, err := svc.ListByNationalID(ctx, "1234567890")
	require.NoError(t, err)
	require.Len(t, byCedula, 1)
	assert.Equal(t, card1.ID, byCedula[0].ID)

	activeByCedula, err := svc.ListActiveByNationalID(ctx, "2345678901")
	require.NoError(t, err)
	assert.Empty(t, activeByCedula)

	blocked, err := svc.ListByStatus(ctx, domain.StatusBlocked)
	require.NoError(t, err)
	require.Len(t, blocked, 1)
	assert.Equal(t, card2.ID, blocked[0].ID)

	gold, err := svc.ListByType(ctx, domain.TypeGold)
	require.NoError(t, err)
	require.Len(t, gold, 1)
	assert.Equal(t, card2.ID, gold[0].ID)

	found, err := svc.SearchByHolderName(ctx, "maría")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, card2.ID, found[0].ID)

	activeCount, err := svc.CountByStatus(ctx, domain.StatusActive)
	require.NoError(t, err)
	assert.EqualValues(t, 1, activeCount)

	_, err = svc.ListByStatus(ctx, domain.CardStatus("bogus"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	_, err = svc.ListByType(ctx, domain.CardType("bogus"))
	assert.ErrorIs(t, err, domain.ErrInvalidCardType)
	_, err = svc.CountByStatus(ctx, domain.CardStatus("bogus"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestSweepExpired(t *testing.T) {
	svc, _, clock := newTestService(&stubGenerator{})
	ctx := context.Background()

	old, err := svc.Issue(ctx, validIssueInput())
	require.NoError(t, err)

	// issue the second card four years later so its expiration is still
	// ahead once the first card's has passed
	clock.current = clock.current.AddDate(4, 0, 0)
	input2 := validIssueInput()
	input2.NationalID = "2345678901"
	fresh, err := svc.Issue(ctx, input2)
	require.NoError(t, err)

	clock.current = old.ExpirationDate.AddDate(0, 0, 1)

	count, err := svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	swept, err := svc.GetByID(ctx, old.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExpired, swept.Status)

	kept, err := svc.GetByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, kept.Status)

	// a second run finds nothing
	count, err = svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestSweepSkipsTerminalCards(t *testing.T) {
	svc, _, clock := newTestService(&stubGenerator{})
	ctx := context.Background()

	card, err := svc.Issue(ctx, validIssueInput())
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, card.ID)
	require.NoError(t, err)

	clock.current = card.ExpirationDate.AddDate(0, 0, 1)

	count, err := svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	got, err := svc.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
}

func TestListExpiringSoon(t *testing.T) {
	svc, _, clock := newTestService(&stubGenerator{})
	ctx := context.Background()

	card, err := svc.Issue(ctx, validIssueInput())
	require.NoError(t, err)

	// nothing expires within 30 days of issuance
	soon, err := svc.ListExpiringSoon(ctx)
	require.NoError(t, err)
	assert.Empty(t, soon)

	// move the clock to 20 days before expiration
	clock.current = card.ExpirationDate.AddDate(0, 0, -20)
	soon, err = svc.ListExpiringSoon(ctx)
	require.NoError(t, err)
	require.Len(t, soon, 1)
	assert.Equal(t, card.ID, soon[0].ID)

	// once expired and swept, the card drops out of the expiring-soon list
	clock.current = card.ExpirationDate.AddDate(0, 0, 1)
	count, err := svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	soon, err = svc.ListExpiringSoon(ctx)
	require.NoError(t, err)
	assert.Empty(t, soon)
}

func TestLifecycleScenario(t *testing.T) {
	svc, _, _ := newTestService(&stubGenerator{})
	ctx := context.Background()

	card, err := svc.Issue(ctx, validIssueInput())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, card.Status)
	assert.True(t, card.AvailableBalance.Equal(decimal.NewFromFloat(500.00)))
	assert.True(t, card.DailyLimit.Equal(decimal.NewFromFloat(1000.00)))

	blocked, err := svc.Block(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBlocked, blocked.Status)

	cancelled, err := svc.Cancel(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
}
