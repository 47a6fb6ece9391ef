package repository

import (
	"errors"
	"time"

	"github.com/laujml/la-cuponera/internal/domain/offer/model"

	"gorm.io/gorm"
)

// ErrNoStock is returned by DecrementStock when the conditioned update
// matched zero rows, meaning a concurrent purchase exhausted the offer first.
var ErrNoStock = errors.New("no remaining coupons for offer")

type OfferRepository interface {
	ListActive(categoryID, search string, today time.Time, offset, limit int) ([]model.Offer, int64, error)
	GetApprovedByID(id string) (*model.Offer, error)
	// DecrementStock runs the conditioned decrement inside the caller's
	// transaction. The WHERE guard on the live count is what makes
	// concurrent purchases safe; do not split it into read-then-write.
	DecrementStock(tx *gorm.DB, offerID string) error
	// UpdateStatus moves a pending offer to a reviewed state. Returns
	// gorm.ErrRecordNotFound when the offer is missing or already
	// reviewed.
	UpdateStatus(id, status string) error
}

type offerRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) ListActive(categoryID, search string, today time.Time, offset, limit int) ([]model.Offer, int64, error) {
	var offers []model.Offer
	var total int64

	q := r.db.Model(&model.Offer{}).
		Where("estado = ?", model.StatusAprobada).
		Where("fecha_fin >= ?", today)

	if categoryID != "" {
		q = q.Where("rubro_id = ?", categoryID)
	}
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("titulo ILIKE ? OR descripcion ILIKE ? OR empresa_nombre ILIKE ?", pattern, pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&offers).Error; err != nil {
		return nil, 0, err
	}
	return offers, total, nil
}

func (r *offerRepository) GetApprovedByID(id string) (*model.Offer, error) {
	var offer model.Offer
	if err := r.db.Where("id = ? AND estado = ?", id, model.StatusAprobada).First(&offer).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *offerRepository) UpdateStatus(id, status string) error {
	result := r.db.Model(&model.Offer{}).
		Where("id = ? AND estado = ?", id, model.StatusEnEspera).
		UpdateColumn("estado", status)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *offerRepository) DecrementStock(tx *gorm.DB, offerID string) error {
	result := tx.Model(&model.Offer{}).
		Where("id = ? AND cupones_disponibles > 0", offerID).
		UpdateColumn("cupones_disponibles", gorm.Expr("cupones_disponibles - 1"))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoStock
	}
	return nil
}
