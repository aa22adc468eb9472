package config

import (
	"log"
	"time"

	"pichincha-tarjetas/internal/adapters/persistence/models"
	"pichincha-tarjetas/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seeder loads sample cards for development
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run seeds sample cards when the table is empty
func (s *Seeder) Run() error {
	var count int64
	if err := s.db.Model(&models.Card{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Sample data already present, skipping seeder")
		return nil
	}

	log.Println("Seeding sample cards...")
	cards := sampleCards(time.Now())
	if err := s.db.Create(&cards).Error; err != nil {
		return err
	}
	log.Printf("Seeded %d sample cards", len(cards))
	return nil
}

type seedCard struct {
	number     string
	holder     string
	nationalID string
	expiresIn  func(time.Time) time.Time
	cvv        string
	limit      string
	balance    string
	cardType   domain.CardType
	status     domain.CardStatus
	phone      string
	email      string
}

func sampleCards(now time.Time) []models.Card {
	years := func(n int) func(time.Time) time.Time {
		return func(t time.Time) time.Time { return domain.Day(t).AddDate(n, 0, 0) }
	}
	days := func(n int) func(time.Time) time.Time {
		return func(t time.Time) time.Time { return domain.Day(t).AddDate(0, 0, n) }
	}

	seeds := []seedCard{
		{"5428123456789012", "Juan Carlos Pérez González", "1234567890", years(5), "123", "1000.00", "2500.50", domain.TypeClassic, domain.StatusActive, "0987654321", "juan.perez@email.com"},
		{"5428234567890123", "María Fernanda López Martínez", "2345678901", years(4), "456", "2000.00", "5000.00", domain.TypeGold, domain.StatusActive, "0987654322", "maria.lopez@email.com"},
		{"5428345678901234", "Carlos Alberto Rodríguez Vega", "3456789012", years(3), "789", "5000.00", "12000.75", domain.TypePlatinum, domain.StatusActive, "0987654323", "carlos.rodriguez@email.com"},
		{"5428456789012345", "Ana Sofía Torres Jiménez", "4567890123", years(2), "321", "1500.00", "800.25", domain.TypeClassic, domain.StatusBlocked, "", ""},
		{"5428567890123456", "Roberto Miguel Silva Castillo", "5678901234", years(1), "654", "3000.00", "7500.00", domain.TypeSignature, domain.StatusActive, "0987654325", "roberto.silva@email.com"},
		{"5428678901234567", "Patricia Elena Morales Herrera", "6789012345", years(5), "987", "2500.00", "4200.30", domain.TypeGold, domain.StatusActive, "", ""},
		{"5428789012345678", "Diego Fernando Vargas Sánchez", "7890123456", years(3), "147", "10000.00", "25000.00", domain.TypeBusiness, domain.StatusActive, "0987654327", "diego.vargas@empresa.com"},
		// expires in two weeks so the expiring-soon listing has a hit
		{"5428890123456789", "Carmen Lucía Delgado Ruiz", "8901234567", days(15), "258", "1200.00", "350.75", domain.TypeClassic, domain.StatusActive, "", ""},
		{"5428901234567890", "Andrés Felipe Flores Mendoza", "9012345678", years(4), "369", "4000.00", "8900.50", domain.TypePlatinum, domain.StatusActive, "", ""},
		{"5428012345678901", "Lucía Alejandra Ramírez Castro", "0123456789", years(2), "741", "1800.00", "1200.00", domain.TypeGold, domain.StatusSuspended, "", ""},
	}

	cards := make([]models.Card, len(seeds))
	for i, seed := range seeds {
		cards[i] = models.Card{
			CardNumber:       seed.number,
			HolderName:       seed.holder,
			NationalID:       seed.nationalID,
			ExpirationDate:   seed.expiresIn(now),
			CVV:              seed.cvv,
			DailyLimit:       decimal.RequireFromString(seed.limit),
			AvailableBalance: decimal.RequireFromString(seed.balance),
			Status:           string(seed.status),
			CardType:         string(seed.cardType),
			Phone:            seed.phone,
			Email:            seed.email,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
	}
	return cards
}
