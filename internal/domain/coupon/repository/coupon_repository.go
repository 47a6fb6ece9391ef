package repository

import (
	"github.com/laujml/la-cuponera/internal/domain/coupon/model"

	"gorm.io/gorm"
)

type CouponRepository interface {
	// Create inserts a coupon inside the caller's transaction. A
	// duplicate code surfaces as gorm.ErrDuplicatedKey.
	Create(tx *gorm.DB, coupon *model.Coupon) error
	ListByBuyer(buyerID string) ([]model.Coupon, error)
	GetByIDForBuyer(id, buyerID string) (*model.Coupon, error)
}

type couponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Create(tx *gorm.DB, coupon *model.Coupon) error {
	return tx.Create(coupon).Error
}

func (r *couponRepository) ListByBuyer(buyerID string) ([]model.Coupon, error) {
	var coupons []model.Coupon
	err := r.db.Preload("Offer").
		Where("cliente_id = ?", buyerID).
		Order("fecha_compra DESC").
		Find(&coupons).Error
	if err != nil {
		return nil, err
	}
	return coupons, nil
}

// GetByIDForBuyer scopes the read to the owning buyer; other buyers' coupons
// are indistinguishable from missing ones.
func (r *couponRepository) GetByIDForBuyer(id, buyerID string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.db.Preload("Offer").
		Where("id = ? AND cliente_id = ?", id, buyerID).
		First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}
