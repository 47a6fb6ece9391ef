package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/laujml/la-cuponera/internal/domain/offer/model"
	"github.com/laujml/la-cuponera/internal/domain/offer/repository"

	"gorm.io/gorm"
)

// Availability gate rejections. The purchase coordinator propagates these
// verbatim; handlers map them to business codes.
var (
	ErrOfferNotFound = errors.New("offer not found or not approved")
	ErrOfferExpired  = errors.New("offer is no longer active")
	ErrSoldOut       = errors.New("offer has no remaining coupons")

	// ErrInvalidReview rejects review verdicts other than approve/reject.
	ErrInvalidReview = errors.New("offer review must approve or reject")
	// ErrNotPending means the offer is missing or was already reviewed.
	ErrNotPending = errors.New("offer is not pending review")
)

type OfferService interface {
	ListOffers(categoryID, search string, page, limit int) ([]model.Offer, int64, error)
	GetOffer(id string) (*model.Offer, error)
	// CheckPurchasable is the availability gate: read-only classification
	// of an offer as purchasable, returning the snapshot the purchase
	// flow needs, or one of the rejection errors above.
	CheckPurchasable(id string) (*model.Snapshot, error)
	// ReviewOffer moves a pending offer to aprobada or rechazada.
	ReviewOffer(id, status string) error
}

type offerService struct {
	repo repository.OfferRepository
	now  func() time.Time
}

func NewOfferService(repo repository.OfferRepository) OfferService {
	return &offerService{repo: repo, now: time.Now}
}

// NewOfferServiceWithClock injects the clock for tests.
func NewOfferServiceWithClock(repo repository.OfferRepository, now func() time.Time) OfferService {
	return &offerService{repo: repo, now: now}
}

// dayUTC truncates a time to its UTC calendar day. All calendar-day
// comparisons use UTC, which avoids device-local ambiguity at midnight.
func dayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *offerService) ListOffers(categoryID, search string, page, limit int) ([]model.Offer, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	offers, total, err := s.repo.ListActive(categoryID, search, dayUTC(s.now()), offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("offer query failed: %w", err)
	}
	return offers, total, nil
}

func (s *offerService) GetOffer(id string) (*model.Offer, error) {
	offer, err := s.repo.GetApprovedByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("offer query failed: %w", err)
	}
	return offer, nil
}

func (s *offerService) ReviewOffer(id, status string) error {
	if status != model.StatusAprobada && status != model.StatusRechazada {
		return ErrInvalidReview
	}

	if err := s.repo.UpdateStatus(id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotPending
		}
		return fmt.Errorf("offer review failed: %w", err)
	}
	return nil
}

func (s *offerService) CheckPurchasable(id string) (*model.Snapshot, error) {
	offer, err := s.repo.GetApprovedByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("offer query failed: %w", err)
	}

	// Calendar-day comparison: an offer ending today is still purchasable.
	today := dayUTC(s.now())
	endDay := dayUTC(offer.EndDate)
	if endDay.Before(today) {
		return nil, ErrOfferExpired
	}

	if offer.Limited && offer.Remaining <= 0 {
		return nil, ErrSoldOut
	}

	return model.SnapshotOf(offer), nil
}
