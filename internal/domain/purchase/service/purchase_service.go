package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/laujml/la-cuponera/internal/domain/coupon/codegen"
	couponModel "github.com/laujml/la-cuponera/internal/domain/coupon/model"
	offerRepo "github.com/laujml/la-cuponera/internal/domain/offer/repository"
	offerService "github.com/laujml/la-cuponera/internal/domain/offer/service"
	"github.com/laujml/la-cuponera/internal/domain/purchase/model"
	"github.com/laujml/la-cuponera/internal/domain/purchase/repository"
	"github.com/laujml/la-cuponera/internal/domain/purchase/strategy"
	"github.com/laujml/la-cuponera/internal/pkg/worker"
	"github.com/laujml/la-cuponera/pkg/logger"
	"github.com/laujml/la-cuponera/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrCodeExhausted means the retry budget ran out without finding a
	// unique coupon code. Practically unreachable outside of tests given
	// the 10^7 code space, but surfaced distinctly so it is visible.
	ErrCodeExhausted = errors.New("could not generate a unique coupon code")

	// ErrPaymentRejected wraps the simulated payment validation failures.
	ErrPaymentRejected = errors.New("payment rejected")
)

type PurchaseService interface {
	// Purchase runs the whole flow for one buyer/offer pair: availability
	// gate, payment gate, code generation and the atomic write unit.
	// Returns the created coupon with its offer attached for display.
	Purchase(buyerID, offerID string, card strategy.CardInput) (*couponModel.Coupon, error)
}

type purchaseService struct {
	offers      offerService.OfferService
	repo        repository.PurchaseRepository
	payment     strategy.PaymentStrategy
	codegen     *codegen.Generator
	metrics     *metrics.MetricsCollector
	invalidates *worker.InvalidatePool
	codeRetries int
	soldOutMap  sync.Map // offer ids observed sold out; stock never replenishes in scope
	now         func() time.Time
}

// Options collects the coordinator's collaborators.
type Options struct {
	Offers      offerService.OfferService
	Repo        repository.PurchaseRepository
	Payment     strategy.PaymentStrategy
	Codegen     *codegen.Generator
	Metrics     *metrics.MetricsCollector
	Invalidates *worker.InvalidatePool
	CodeRetries int
	Now         func() time.Time
}

func NewPurchaseService(opts Options) PurchaseService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.CodeRetries <= 0 {
		opts.CodeRetries = 5
	}
	return &purchaseService{
		offers:      opts.Offers,
		repo:        opts.Repo,
		payment:     opts.Payment,
		codegen:     opts.Codegen,
		metrics:     opts.Metrics,
		invalidates: opts.Invalidates,
		codeRetries: opts.CodeRetries,
		now:         opts.Now,
	}
}

func (s *purchaseService) Purchase(buyerID, offerID string, card strategy.CardInput) (*couponModel.Coupon, error) {
	// Local fast path: an offer seen sold out stays sold out.
	if _, ok := s.soldOutMap.Load(offerID); ok {
		s.metrics.RecordPurchase("sold_out")
		return nil, offerService.ErrSoldOut
	}

	// 1. Availability gate. Rejections propagate verbatim, nothing written.
	snapshot, err := s.offers.CheckPurchasable(offerID)
	if err != nil {
		s.recordRejection(offerID, err)
		return nil, err
	}

	// 2. Payment gate. Simulated: validates input, moves no funds.
	reference, err := s.payment.Authorize(card, snapshot.OfferPrice)
	if err != nil {
		s.metrics.RecordPurchase("payment_rejected")
		return nil, fmt.Errorf("%w: %v", ErrPaymentRejected, err)
	}

	// 3. Atomic unit, retried only on coupon code collision.
	for attempt := 0; attempt < s.codeRetries; attempt++ {
		code := s.codegen.Generate(snapshot.MerchantName)
		now := s.now()

		purchase := &model.Purchase{
			BuyerID:  buyerID,
			OfferID:  snapshot.ID,
			Quantity: 1,
			Total:    snapshot.OfferPrice,
			Status:   model.StatusCompletada,
		}
		coupon := &couponModel.Coupon{
			Code:        code,
			BuyerID:     buyerID,
			OfferID:     snapshot.ID,
			PricePaid:   snapshot.OfferPrice,
			Status:      couponModel.StatusDisponible,
			PurchasedAt: now,
			ExpiresAt:   snapshot.UseByDate,
		}

		err := s.repo.CreatePurchaseWithCoupon(purchase, coupon, snapshot.Limited)
		if err == nil {
			s.metrics.RecordPurchase("success")
			logger.Log.Info("Coupon purchased",
				zap.String("offer_id", snapshot.ID),
				zap.String("coupon_code", code),
				zap.String("payment_ref", reference))

			s.invalidates.AddTask(worker.InvalidateTask{OfferID: snapshot.ID})
			s.attachOffer(coupon)
			return coupon, nil
		}

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Code collision; whole unit rolled back, try a fresh code.
			s.metrics.RecordCodeRetry()
			continue
		}

		if errors.Is(err, offerRepo.ErrNoStock) {
			// A concurrent purchase won the last coupon between the
			// gate read and our commit; nothing persisted.
			s.soldOutMap.Store(offerID, true)
			s.metrics.RecordPurchase("sold_out")
			return nil, offerService.ErrSoldOut
		}

		s.metrics.RecordPurchase("store_error")
		return nil, fmt.Errorf("purchase transaction failed: %w", err)
	}

	s.metrics.RecordPurchase("code_exhausted")
	return nil, ErrCodeExhausted
}

func (s *purchaseService) recordRejection(offerID string, err error) {
	switch {
	case errors.Is(err, offerService.ErrOfferNotFound):
		s.metrics.RecordPurchase("not_found")
	case errors.Is(err, offerService.ErrOfferExpired):
		s.metrics.RecordPurchase("expired")
	case errors.Is(err, offerService.ErrSoldOut):
		s.soldOutMap.Store(offerID, true)
		s.metrics.RecordPurchase("sold_out")
	default:
		s.metrics.RecordPurchase("store_error")
	}
}

// attachOffer loads the offer for display alongside the fresh coupon. Purely
// cosmetic; a failure here never fails the purchase.
func (s *purchaseService) attachOffer(coupon *couponModel.Coupon) {
	offer, err := s.offers.GetOffer(coupon.OfferID)
	if err != nil {
		logger.Log.Warn("Could not attach offer to purchased coupon",
			zap.String("offer_id", coupon.OfferID), zap.Error(err))
		return
	}
	coupon.Offer = offer
}
