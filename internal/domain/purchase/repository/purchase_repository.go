package repository

import (
	couponModel "github.com/laujml/la-cuponera/internal/domain/coupon/model"
	couponRepo "github.com/laujml/la-cuponera/internal/domain/coupon/repository"
	offerRepo "github.com/laujml/la-cuponera/internal/domain/offer/repository"
	"github.com/laujml/la-cuponera/internal/domain/purchase/model"

	"gorm.io/gorm"
)

type PurchaseRepository interface {
	// CreatePurchaseWithCoupon runs the atomic unit of the purchase flow:
	// insert the purchase, insert its coupon, and (for limited offers)
	// decrement the remaining count conditioned on it still being
	// positive. Any failure rolls back the whole unit.
	//
	// Distinguishable failures: gorm.ErrDuplicatedKey when the coupon
	// code collided, offerRepo.ErrNoStock when a concurrent purchase
	// exhausted stock between the gate read and commit.
	CreatePurchaseWithCoupon(purchase *model.Purchase, coupon *couponModel.Coupon, decrement bool) error
	GetByID(id string) (*model.Purchase, error)
}

type purchaseRepository struct {
	db      *gorm.DB
	coupons couponRepo.CouponRepository
	offers  offerRepo.OfferRepository
}

func NewPurchaseRepository(db *gorm.DB, coupons couponRepo.CouponRepository, offers offerRepo.OfferRepository) PurchaseRepository {
	return &purchaseRepository{db: db, coupons: coupons, offers: offers}
}

func (r *purchaseRepository) CreatePurchaseWithCoupon(purchase *model.Purchase, coupon *couponModel.Coupon, decrement bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(purchase).Error; err != nil {
			return err
		}

		coupon.PurchaseID = purchase.ID
		if err := r.coupons.Create(tx, coupon); err != nil {
			return err
		}

		if decrement {
			if err := r.offers.DecrementStock(tx, coupon.OfferID); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *purchaseRepository) GetByID(id string) (*model.Purchase, error) {
	var purchase model.Purchase
	if err := r.db.Where("id = ?", id).First(&purchase).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}
