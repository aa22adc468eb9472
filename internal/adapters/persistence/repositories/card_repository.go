package repositories

import (
	"context"
	"errors"
	"time"

	"pichincha-tarjetas/internal/adapters/persistence/models"
	"pichincha-tarjetas/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cardRepository implements CardRepository on MySQL via GORM
type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new card repository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

// Create inserts a new card. The one-active-card-per-holder check and
// the insert run in the same transaction; the rows of the holder are
// locked so two concurrent issuances cannot both pass the check.
func (r *cardRepository) Create(ctx context.Context, card *domain.Card) (*domain.Card, error) {
	record := models.FromDomain(card)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Card{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cedula = ? AND estado = ?", card.NationalID, string(domain.StatusActive)).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrActiveCardExists
		}
		return tx.Create(record).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrCardNumberTaken
		}
		return nil, err
	}
	return record.ToDomain(), nil
}

// GetByID gets a card by ID
func (r *cardRepository) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	var record models.Card
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCardNotFound
		}
		return nil, err
	}
	return record.ToDomain(), nil
}

// GetByNumber gets a card by its 16-digit number
func (r *cardRepository) GetByNumber(ctx context.Context, cardNumber string) (*domain.Card, error) {
	var record models.Card
	err := r.db.WithContext(ctx).Where("numero_tarjeta = ?", cardNumber).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCardNotFound
		}
		return nil, err
	}
	return record.ToDomain(), nil
}

// ListAll lists every card
func (r *cardRepository) ListAll(ctx context.Context) ([]*domain.Card, error) {
	var records []models.Card
	if err := r.db.WithContext(ctx).Order("fecha_creacion").Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// ListByNationalID lists cards belonging to a holder
func (r *cardRepository) ListByNationalID(ctx context.Context, nationalID string) ([]*domain.Card, error) {
	var records []models.Card
	err := r.db.WithContext(ctx).
		Where("cedula = ?", nationalID).
		Order("fecha_creacion").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// ListActiveByNationalID lists a holder's ACTIVE cards
func (r *cardRepository) ListActiveByNationalID(ctx context.Context, nationalID string) ([]*domain.Card, error) {
	var records []models.Card
	err := r.db.WithContext(ctx).
		Where("cedula = ? AND estado = ?", nationalID, string(domain.StatusActive)).
		Order("fecha_creacion").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// ListByStatus lists cards in the given status
func (r *cardRepository) ListByStatus(ctx context.Context, status domain.CardStatus) ([]*domain.Card, error) {
	var records []models.Card
	err := r.db.WithContext(ctx).
		Where("estado = ?", string(status)).
		Order("fecha_creacion").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// ListByType lists cards of the given product tier
func (r *cardRepository) ListByType(ctx context.Context, cardType domain.CardType) ([]*domain.Card, error) {
	var records []models.Card
	err := r.db.WithContext(ctx).
		Where("tipo_tarjeta = ?", string(cardType)).
		Order("fecha_creacion").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// SearchByHolderName performs a case-insensitive substring search on the
// holder name
func (r *cardRepository) SearchByHolderName(ctx context.Context, name string) ([]*domain.Card, error) {
	var records []models.Card
	err := r.db.WithContext(ctx).
		Where("LOWER(nombre_titular) LIKE LOWER(?)", "%"+name+"%").
		Order("fecha_creacion").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// ListExpiringSoon returns ACTIVE cards expiring on or before the given day
func (r *cardRepository) ListExpiringSoon(ctx context.Context, until time.Time) ([]*domain.Card, error) {
	var records []models.Card
	err := r.db.WithContext(ctx).
		Where("estado = ? AND fecha_expiracion <= ?", string(domain.StatusActive), domain.Day(until)).
		Order("fecha_expiracion").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// CountByStatus counts cards in the given status
func (r *cardRepository) CountByStatus(ctx context.Context, status domain.CardStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("estado = ?", string(status)).
		Count(&count).Error
	return count, err
}

// Update overwrites the record guarded by its previous update timestamp,
// so a concurrent writer cannot be silently overwritten.
func (r *cardRepository) Update(ctx context.Context, card *domain.Card, prevUpdatedAt time.Time) (*domain.Card, error) {
	record := models.FromDomain(card)

	res := r.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("id = ? AND fecha_actualizacion = ?", card.ID, prevUpdatedAt).
		Select("limite_diario", "estado", "telefono", "email", "fecha_actualizacion").
		Updates(record)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Either the card is gone or someone updated it first
		var exists int64
		if err := r.db.WithContext(ctx).Model(&models.Card{}).Where("id = ?", card.ID).Count(&exists).Error; err != nil {
			return nil, err
		}
		if exists == 0 {
			return nil, domain.ErrCardNotFound
		}
		return nil, domain.ErrConcurrentUpdate
	}
	return r.GetByID(ctx, card.ID)
}

// Delete hard-deletes a card by ID
func (r *cardRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Card{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkExpired expires every overdue non-terminal card in one statement
func (r *cardRepository) MarkExpired(ctx context.Context, today time.Time, updatedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("fecha_expiracion < ? AND estado IN ?", domain.Day(today), []string{
			string(domain.StatusActive),
			string(domain.StatusBlocked),
			string(domain.StatusSuspended),
		}).
		Updates(map[string]interface{}{
			"estado":              string(domain.StatusExpired),
			"fecha_actualizacion": updatedAt,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// ExistsByNumber checks whether a card number is already taken
func (r *cardRepository) ExistsByNumber(ctx context.Context, cardNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("numero_tarjeta = ?", cardNumber).
		Count(&count).Error
	return count > 0, err
}

// Ping verifies store connectivity
func (r *cardRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func toDomainList(records []models.Card) []*domain.Card {
	cards := make([]*domain.Card, len(records))
	for i := range records {
		cards[i] = records[i].ToDomain()
	}
	return cards
}
