package service

import (
	"errors"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/laujml/la-cuponera/internal/domain/coupon/codegen"
	couponModel "github.com/laujml/la-cuponera/internal/domain/coupon/model"
	offerModel "github.com/laujml/la-cuponera/internal/domain/offer/model"
	offerRepo "github.com/laujml/la-cuponera/internal/domain/offer/repository"
	offerService "github.com/laujml/la-cuponera/internal/domain/offer/service"
	purchaseModel "github.com/laujml/la-cuponera/internal/domain/purchase/model"
	"github.com/laujml/la-cuponera/internal/domain/purchase/strategy"
	"github.com/laujml/la-cuponera/internal/pkg/worker"
	"github.com/laujml/la-cuponera/pkg/logger"
	"github.com/laujml/la-cuponera/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

type mockOfferService struct {
	mock.Mock
}

func (m *mockOfferService) ListOffers(categoryID, search string, page, limit int) ([]offerModel.Offer, int64, error) {
	args := m.Called(categoryID, search, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]offerModel.Offer), args.Get(1).(int64), args.Error(2)
}

func (m *mockOfferService) GetOffer(id string) (*offerModel.Offer, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*offerModel.Offer), args.Error(1)
}

func (m *mockOfferService) CheckPurchasable(id string) (*offerModel.Snapshot, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*offerModel.Snapshot), args.Error(1)
}

func (m *mockOfferService) ReviewOffer(id, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

type mockPurchaseRepository struct {
	mock.Mock
	codes []string
}

func (m *mockPurchaseRepository) CreatePurchaseWithCoupon(purchase *purchaseModel.Purchase, coupon *couponModel.Coupon, decrement bool) error {
	m.codes = append(m.codes, coupon.Code)
	args := m.Called(purchase, coupon, decrement)
	if args.Error(0) == nil {
		purchase.ID = "pur-1"
		coupon.PurchaseID = purchase.ID
	}
	return args.Error(0)
}

func (m *mockPurchaseRepository) GetByID(id string) (*purchaseModel.Purchase, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchaseModel.Purchase), args.Error(1)
}

type mockPaymentStrategy struct {
	mock.Mock
}

func (m *mockPaymentStrategy) Authorize(card strategy.CardInput, amount float64) (string, error) {
	args := m.Called(card, amount)
	return args.String(0), args.Error(1)
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func validCard() strategy.CardInput {
	return strategy.CardInput{
		Number: "4242424242424242",
		Holder: "Maria Lopez",
		Expiry: "12/27",
		CVV:    "123",
	}
}

func limitedSnapshot() *offerModel.Snapshot {
	return &offerModel.Snapshot{
		ID:           "of-1",
		Title:        "2x1 en pupusas",
		MerchantName: "Pupuseria La Bendicion",
		OfferPrice:   5,
		UseByDate:    testNow.AddDate(0, 0, 30),
		Limited:      true,
		Remaining:    10,
	}
}

type fixture struct {
	offers  *mockOfferService
	repo    *mockPurchaseRepository
	payment *mockPaymentStrategy
	svc     PurchaseService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		offers:  new(mockOfferService),
		repo:    new(mockPurchaseRepository),
		payment: new(mockPaymentStrategy),
	}
	f.svc = NewPurchaseService(Options{
		Offers:      f.offers,
		Repo:        f.repo,
		Payment:     f.payment,
		Codegen:     codegen.NewWithSource(rand.NewSource(1)),
		Metrics:     metrics.GetGlobalCollector(),
		Invalidates: worker.NewInvalidatePool(nil, 1, 16),
		CodeRetries: 5,
		Now:         func() time.Time { return testNow },
	})
	return f
}

func TestPurchaseSuccessLimitedOffer(t *testing.T) {
	f := newFixture(t)

	f.offers.On("CheckPurchasable", "of-1").Return(limitedSnapshot(), nil)
	f.payment.On("Authorize", validCard(), 5.0).Return("SIM-123", nil)
	f.repo.On("CreatePurchaseWithCoupon", mock.Anything, mock.Anything, true).Return(nil).Once()
	f.offers.On("GetOffer", "of-1").Return(&offerModel.Offer{Title: "2x1 en pupusas"}, nil)

	coupon, err := f.svc.Purchase("buyer-1", "of-1", validCard())

	require.NoError(t, err)
	assert.Equal(t, "buyer-1", coupon.BuyerID)
	assert.Equal(t, "of-1", coupon.OfferID)
	assert.Equal(t, 5.0, coupon.PricePaid)
	assert.Equal(t, couponModel.StatusDisponible, coupon.Status)
	assert.Equal(t, testNow, coupon.PurchasedAt)
	assert.Equal(t, testNow.AddDate(0, 0, 30), coupon.ExpiresAt)
	assert.Equal(t, "pur-1", coupon.PurchaseID)
	assert.Regexp(t, `^PUP-\d{7}$`, coupon.Code)
	assert.NotNil(t, coupon.Offer)
	f.repo.AssertExpectations(t)
}

func TestPurchaseUnlimitedOfferSkipsDecrement(t *testing.T) {
	f := newFixture(t)

	snap := limitedSnapshot()
	snap.Limited = false
	f.offers.On("CheckPurchasable", "of-1").Return(snap, nil)
	f.payment.On("Authorize", validCard(), 5.0).Return("SIM-123", nil)
	f.repo.On("CreatePurchaseWithCoupon", mock.Anything, mock.Anything, false).Return(nil).Once()
	f.offers.On("GetOffer", "of-1").Return(&offerModel.Offer{}, nil)

	_, err := f.svc.Purchase("buyer-1", "of-1", validCard())

	require.NoError(t, err)
	f.repo.AssertExpectations(t)
}

func TestPurchaseGateRejectionWritesNothing(t *testing.T) {
	f := newFixture(t)

	f.offers.On("CheckPurchasable", "of-1").Return(nil, offerService.ErrOfferExpired)

	coupon, err := f.svc.Purchase("buyer-1", "of-1", validCard())

	assert.ErrorIs(t, err, offerService.ErrOfferExpired)
	assert.Nil(t, coupon)
	f.payment.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "CreatePurchaseWithCoupon", mock.Anything, mock.Anything, mock.Anything)
}

func TestPurchasePaymentRejectedWritesNothing(t *testing.T) {
	f := newFixture(t)

	f.offers.On("CheckPurchasable", "of-1").Return(limitedSnapshot(), nil)
	f.payment.On("Authorize", mock.Anything, 5.0).Return("", errors.New("card number failed validation"))

	coupon, err := f.svc.Purchase("buyer-1", "of-1", validCard())

	assert.ErrorIs(t, err, ErrPaymentRejected)
	assert.Nil(t, coupon)
	f.repo.AssertNotCalled(t, "CreatePurchaseWithCoupon", mock.Anything, mock.Anything, mock.Anything)
}

func TestPurchaseRetriesOnCodeCollision(t *testing.T) {
	f := newFixture(t)

	f.offers.On("CheckPurchasable", "of-1").Return(limitedSnapshot(), nil)
	f.payment.On("Authorize", mock.Anything, 5.0).Return("SIM-123", nil)
	f.repo.On("CreatePurchaseWithCoupon", mock.Anything, mock.Anything, true).Return(gorm.ErrDuplicatedKey).Once()
	f.repo.On("CreatePurchaseWithCoupon", mock.Anything, mock.Anything, true).Return(nil).Once()
	f.offers.On("GetOffer", "of-1").Return(&offerModel.Offer{}, nil)

	coupon, err := f.svc.Purchase("buyer-1", "of-1", validCard())

	require.NoError(t, err)
	require.Len(t, f.repo.codes, 2)
	assert.NotEqual(t, f.repo.codes[0], f.repo.codes[1])
	assert.Equal(t, f.repo.codes[1], coupon.Code)
}

func TestPurchaseCodeSpaceExhausted(t *testing.T) {
	f := newFixture(t)

	f.offers.On("CheckPurchasable", "of-1").Return(limitedSnapshot(), nil)
	f.payment.On("Authorize", mock.Anything, 5.0).Return("SIM-123", nil)
	f.repo.On("CreatePurchaseWithCoupon", mock.Anything, mock.Anything, true).Return(gorm.ErrDuplicatedKey).Times(5)

	coupon, err := f.svc.Purchase("buyer-1", "of-1", validCard())

	assert.ErrorIs(t, err, ErrCodeExhausted)
	assert.Nil(t, coupon)
	assert.Len(t, f.repo.codes, 5)
	f.repo.AssertExpectations(t)
}

func TestPurchaseSoldOutAtCommitShortCircuitsNextCall(t *testing.T) {
	f := newFixture(t)

	f.offers.On("CheckPurchasable", "of-1").Return(limitedSnapshot(), nil).Once()
	f.payment.On("Authorize", mock.Anything, 5.0).Return("SIM-123", nil).Once()
	f.repo.On("CreatePurchaseWithCoupon", mock.Anything, mock.Anything, true).Return(offerRepo.ErrNoStock).Once()

	_, err := f.svc.Purchase("buyer-1", "of-1", validCard())
	assert.ErrorIs(t, err, offerService.ErrSoldOut)

	// Second attempt never reaches the gate again.
	_, err = f.svc.Purchase("buyer-2", "of-1", validCard())
	assert.ErrorIs(t, err, offerService.ErrSoldOut)

	f.offers.AssertNumberOfCalls(t, "CheckPurchasable", 1)
	f.repo.AssertNumberOfCalls(t, "CreatePurchaseWithCoupon", 1)
}

func TestPurchaseStoreErrorIsWrapped(t *testing.T) {
	f := newFixture(t)

	f.offers.On("CheckPurchasable", "of-1").Return(limitedSnapshot(), nil)
	f.payment.On("Authorize", mock.Anything, 5.0).Return("SIM-123", nil)
	f.repo.On("CreatePurchaseWithCoupon", mock.Anything, mock.Anything, true).Return(errors.New("connection refused")).Once()

	coupon, err := f.svc.Purchase("buyer-1", "of-1", validCard())

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCodeExhausted)
	assert.Nil(t, coupon)
	f.repo.AssertNumberOfCalls(t, "CreatePurchaseWithCoupon", 1)
}

func TestPurchaseAttachOfferFailureDoesNotFailPurchase(t *testing.T) {
	f := newFixture(t)

	f.offers.On("CheckPurchasable", "of-1").Return(limitedSnapshot(), nil)
	f.payment.On("Authorize", mock.Anything, 5.0).Return("SIM-123", nil)
	f.repo.On("CreatePurchaseWithCoupon", mock.Anything, mock.Anything, true).Return(nil).Once()
	f.offers.On("GetOffer", "of-1").Return(nil, errors.New("connection refused"))

	coupon, err := f.svc.Purchase("buyer-1", "of-1", validCard())

	require.NoError(t, err)
	assert.Nil(t, coupon.Offer)
}
