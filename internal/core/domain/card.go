package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CardStatus represents the lifecycle status of a debit card
type CardStatus string

const (
	StatusActive    CardStatus = "ACTIVE"
	StatusBlocked   CardStatus = "BLOCKED"
	StatusSuspended CardStatus = "SUSPENDED"
	StatusCancelled CardStatus = "CANCELLED"
	StatusExpired   CardStatus = "EXPIRED"
)

// statusLabels maps each status to its customer-facing label
var statusLabels = map[CardStatus]string{
	StatusActive:    "Activa",
	StatusBlocked:   "Bloqueada",
	StatusSuspended: "Suspendida",
	StatusCancelled: "Cancelada",
	StatusExpired:   "Vencida",
}

// allowedTransitions is the card status state machine.
// CANCELLED and EXPIRED are terminal: no transition leaves them.
var allowedTransitions = map[CardStatus][]CardStatus{
	StatusActive:    {StatusBlocked, StatusSuspended, StatusCancelled, StatusExpired},
	StatusBlocked:   {StatusActive, StatusCancelled, StatusExpired},
	StatusSuspended: {StatusActive, StatusCancelled, StatusExpired},
	StatusCancelled: {},
	StatusExpired:   {},
}

// IsValid returns true if the status is one of the known values
func (s CardStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Description returns the display label for the status
func (s CardStatus) Description() string {
	return statusLabels[s]
}

// IsTerminal returns true if no transition may leave this status
func (s CardStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0 && s.IsValid()
}

// CanTransitionTo reports whether the state machine allows moving to next
func (s CardStatus) CanTransitionTo(next CardStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CardType represents the card product tier (descriptive only)
type CardType string

const (
	TypeClassic   CardType = "CLASSIC"
	TypeGold      CardType = "GOLD"
	TypePlatinum  CardType = "PLATINUM"
	TypeSignature CardType = "SIGNATURE"
	TypeBusiness  CardType = "BUSINESS"
)

var typeLabels = map[CardType]string{
	TypeClassic:   "Clásica",
	TypeGold:      "Gold",
	TypePlatinum:  "Platinum",
	TypeSignature: "Signature",
	TypeBusiness:  "Empresarial",
}

// IsValid returns true if the card type is one of the known values
func (t CardType) IsValid() bool {
	_, ok := typeLabels[t]
	return ok
}

// Description returns the display label for the card type
func (t CardType) Description() string {
	return typeLabels[t]
}

// Card represents a debit card in the domain layer
type Card struct {
	ID               string
	CardNumber       string // 16 digits, BIN prefix + 12 generated
	HolderName       string
	NationalID       string // 10-digit cédula
	ExpirationDate   time.Time
	CVV              string
	DailyLimit       decimal.Decimal
	AvailableBalance decimal.Decimal
	Status           CardStatus
	CardType         CardType
	Phone            string
	Email            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsExpiredAt returns true if the card's expiration date is strictly before
// the given day (date granularity).
func (c *Card) IsExpiredAt(day time.Time) bool {
	return c.ExpirationDate.Before(Day(day))
}

// Day truncates a timestamp to midnight of its calendar day
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
