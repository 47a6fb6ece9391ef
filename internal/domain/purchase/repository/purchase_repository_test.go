package repository

import (
	"testing"
	"time"

	couponModel "github.com/laujml/la-cuponera/internal/domain/coupon/model"
	couponRepo "github.com/laujml/la-cuponera/internal/domain/coupon/repository"
	offerRepo "github.com/laujml/la-cuponera/internal/domain/offer/repository"
	"github.com/laujml/la-cuponera/internal/domain/purchase/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	return db, mock
}

func newRepo(db *gorm.DB) PurchaseRepository {
	return NewPurchaseRepository(db,
		couponRepo.NewCouponRepository(db),
		offerRepo.NewOfferRepository(db))
}

func fixtures() (*model.Purchase, *couponModel.Coupon) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	purchase := &model.Purchase{
		BuyerID:  "buyer-1",
		OfferID:  "of-1",
		Quantity: 1,
		Total:    5,
		Status:   model.StatusCompletada,
	}
	coupon := &couponModel.Coupon{
		Code:        "PUP-0012345",
		BuyerID:     "buyer-1",
		OfferID:     "of-1",
		PricePaid:   5,
		Status:      couponModel.StatusDisponible,
		PurchasedAt: now,
		ExpiresAt:   now.AddDate(0, 0, 30),
	}
	return purchase, coupon
}

func TestCreatePurchaseWithCouponCommitsWholeUnit(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := newRepo(db)
	purchase, coupon := fixtures()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "compras"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("pur-1"))
	mock.ExpectQuery(`INSERT INTO "cupones"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("cp-1"))
	mock.ExpectExec(`UPDATE "ofertas" SET "cupones_disponibles"=cupones_disponibles - 1`).
		WithArgs("of-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreatePurchaseWithCoupon(purchase, coupon, true)

	require.NoError(t, err)
	// The coupon row points at the purchase created in the same unit.
	assert.NotEmpty(t, purchase.ID)
	assert.Equal(t, purchase.ID, coupon.PurchaseID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePurchaseWithCouponSkipsDecrementForUnlimited(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := newRepo(db)
	purchase, coupon := fixtures()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "compras"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("pur-1"))
	mock.ExpectQuery(`INSERT INTO "cupones"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("cp-1"))
	mock.ExpectCommit()

	err := repo.CreatePurchaseWithCoupon(purchase, coupon, false)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePurchaseWithCouponRollsBackOnNoStock(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := newRepo(db)
	purchase, coupon := fixtures()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "compras"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("pur-1"))
	mock.ExpectQuery(`INSERT INTO "cupones"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("cp-1"))
	// A concurrent purchase exhausted the offer: zero rows matched, so both
	// inserts above must be rolled back together.
	mock.ExpectExec(`UPDATE "ofertas" SET "cupones_disponibles"=cupones_disponibles - 1`).
		WithArgs("of-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.CreatePurchaseWithCoupon(purchase, coupon, true)

	assert.ErrorIs(t, err, offerRepo.ErrNoStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePurchaseWithCouponRollsBackOnDuplicateCode(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := newRepo(db)
	purchase, coupon := fixtures()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "compras"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("pur-1"))
	// Unique index on codigo fired: the purchase insert must not survive
	// alone, and the decrement is never reached.
	mock.ExpectQuery(`INSERT INTO "cupones"`).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	err := repo.CreatePurchaseWithCoupon(purchase, coupon, true)

	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePurchaseWithCouponRollsBackOnPurchaseInsertFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := newRepo(db)
	purchase, coupon := fixtures()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "compras"`).
		WillReturnError(gorm.ErrInvalidData)
	mock.ExpectRollback()

	err := repo.CreatePurchaseWithCoupon(purchase, coupon, true)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
