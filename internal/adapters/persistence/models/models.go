package models

import (
	"time"

	"pichincha-tarjetas/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Card represents the tarjetas_debito table
type Card struct {
	ID               string          `gorm:"primaryKey;size:36" json:"id"`
	CardNumber       string          `gorm:"column:numero_tarjeta;uniqueIndex;size:16;not null" json:"numero_tarjeta"`
	HolderName       string          `gorm:"column:nombre_titular;size:100;not null" json:"nombre_titular"`
	NationalID       string          `gorm:"column:cedula;size:10;not null;index:idx_cedula_estado,priority:1" json:"cedula"`
	ExpirationDate   time.Time       `gorm:"column:fecha_expiracion;type:date;not null" json:"fecha_expiracion"`
	CVV              string          `gorm:"column:cvv;size:3;not null" json:"-"`
	DailyLimit       decimal.Decimal `gorm:"column:limite_diario;type:decimal(10,2);not null" json:"limite_diario"`
	AvailableBalance decimal.Decimal `gorm:"column:saldo_disponible;type:decimal(10,2);not null" json:"saldo_disponible"`
	Status           string          `gorm:"column:estado;size:20;not null;index:idx_cedula_estado,priority:2" json:"estado"`
	CardType         string          `gorm:"column:tipo_tarjeta;size:20;not null;index" json:"tipo_tarjeta"`
	Phone            string          `gorm:"column:telefono;size:10" json:"telefono,omitempty"`
	Email            string          `gorm:"column:email;size:100" json:"email,omitempty"`
	CreatedAt        time.Time       `gorm:"column:fecha_creacion;autoCreateTime" json:"fecha_creacion"`
	UpdatedAt        time.Time       `gorm:"column:fecha_actualizacion" json:"fecha_actualizacion"`
}

func (Card) TableName() string {
	return "tarjetas_debito"
}

// BeforeCreate assigns the store-generated card ID
func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ToDomain converts the persisted record to the domain value
func (c *Card) ToDomain() *domain.Card {
	return &domain.Card{
		ID:               c.ID,
		CardNumber:       c.CardNumber,
		HolderName:       c.HolderName,
		NationalID:       c.NationalID,
		ExpirationDate:   c.ExpirationDate,
		CVV:              c.CVV,
		DailyLimit:       c.DailyLimit,
		AvailableBalance: c.AvailableBalance,
		Status:           domain.CardStatus(c.Status),
		CardType:         domain.CardType(c.CardType),
		Phone:            c.Phone,
		Email:            c.Email,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// FromDomain maps a domain card onto the persistence model
func FromDomain(card *domain.Card) *Card {
	return &Card{
		ID:               card.ID,
		CardNumber:       card.CardNumber,
		HolderName:       card.HolderName,
		NationalID:       card.NationalID,
		ExpirationDate:   card.ExpirationDate,
		CVV:              card.CVV,
		DailyLimit:       card.DailyLimit,
		AvailableBalance: card.AvailableBalance,
		Status:           string(card.Status),
		CardType:         string(card.CardType),
		Phone:            card.Phone,
		Email:            card.Email,
		CreatedAt:        card.CreatedAt,
		UpdatedAt:        card.UpdatedAt,
	}
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Card{})
}
