package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/laujml/la-cuponera/internal/domain/coupon/model"
	"github.com/laujml/la-cuponera/internal/domain/coupon/repository"

	"gorm.io/gorm"
)

var ErrCouponNotFound = errors.New("coupon not found")

// CouponBuckets partitions a buyer's coupons for the tab view. Order inside
// each bucket is newest purchase first, as returned by the store.
type CouponBuckets struct {
	Disponibles []model.Coupon `json:"disponibles"`
	Canjeados   []model.Coupon `json:"canjeados"`
	Vencidos    []model.Coupon `json:"vencidos"`
}

type CouponService interface {
	MyCoupons(buyerID string) (*CouponBuckets, error)
	GetCoupon(id, buyerID string) (*model.Coupon, error)
}

type couponService struct {
	repo repository.CouponRepository
	now  func() time.Time
}

func NewCouponService(repo repository.CouponRepository) CouponService {
	return &couponService{repo: repo, now: time.Now}
}

// NewCouponServiceWithClock injects the clock for tests.
func NewCouponServiceWithClock(repo repository.CouponRepository, now func() time.Time) CouponService {
	return &couponService{repo: repo, now: now}
}

func (s *couponService) MyCoupons(buyerID string) (*CouponBuckets, error) {
	coupons, err := s.repo.ListByBuyer(buyerID)
	if err != nil {
		return nil, fmt.Errorf("coupon query failed: %w", err)
	}

	now := s.now()
	buckets := &CouponBuckets{
		Disponibles: []model.Coupon{},
		Canjeados:   []model.Coupon{},
		Vencidos:    []model.Coupon{},
	}

	for _, c := range coupons {
		switch model.Classify(&c, now) {
		case model.BucketCanjeado:
			buckets.Canjeados = append(buckets.Canjeados, c)
		case model.BucketVencido:
			// Display status reflects the derived bucket even when the
			// stored row still says "disponible".
			c.Status = model.StatusVencido
			buckets.Vencidos = append(buckets.Vencidos, c)
		default:
			buckets.Disponibles = append(buckets.Disponibles, c)
		}
	}

	return buckets, nil
}

func (s *couponService) GetCoupon(id, buyerID string) (*model.Coupon, error) {
	coupon, err := s.repo.GetByIDForBuyer(id, buyerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("coupon query failed: %w", err)
	}

	if model.Classify(coupon, s.now()) == model.BucketVencido {
		coupon.Status = model.StatusVencido
	}
	return coupon, nil
}
