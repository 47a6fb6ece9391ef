package service

import (
	"context"
	"fmt"
	"time"

	"github.com/laujml/la-cuponera/internal/domain/offer/model"
	"github.com/laujml/la-cuponera/pkg/cache"
	"github.com/laujml/la-cuponera/pkg/logger"
	"github.com/laujml/la-cuponera/pkg/metrics"

	"go.uber.org/zap"
)

// Cache keys and TTLs. Listing TTL is short because remaining counts drift
// between purchases; the invalidation pool shortens the window further.
const (
	OfferCacheKeyPrefix     = "offer:"
	OfferListCacheKeyPrefix = "offer_list:"
	OfferCacheTTL           = time.Minute * 5
	OfferListCacheTTL       = time.Minute * 1
)

// CachedOfferService layers a Redis cache over the read path. The
// availability gate is intentionally NOT cached: purchase decisions always
// read the store.
type CachedOfferService struct {
	inner   OfferService
	cache   cache.CacheService
	metrics *metrics.MetricsCollector
}

func NewCachedOfferService(inner OfferService, c cache.CacheService, m *metrics.MetricsCollector) OfferService {
	return &CachedOfferService{inner: inner, cache: c, metrics: m}
}

type cachedOfferList struct {
	Offers []model.Offer `json:"offers"`
	Total  int64         `json:"total"`
}

func offerCacheKey(id string) string {
	return OfferCacheKeyPrefix + id
}

func offerListCacheKey(categoryID, search string, page, limit int) string {
	return fmt.Sprintf("%s%s:%s:%d:%d", OfferListCacheKeyPrefix, categoryID, search, page, limit)
}

func (s *CachedOfferService) ListOffers(categoryID, search string, page, limit int) ([]model.Offer, int64, error) {
	ctx := context.Background()
	key := offerListCacheKey(categoryID, search, page, limit)

	var cached cachedOfferList
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		s.metrics.RecordCacheHit("offer_list")
		return cached.Offers, cached.Total, nil
	}
	s.metrics.RecordCacheMiss("offer_list")

	offers, total, err := s.inner.ListOffers(categoryID, search, page, limit)
	if err != nil {
		return nil, 0, err
	}

	if err := s.cache.Set(ctx, key, cachedOfferList{Offers: offers, Total: total}, OfferListCacheTTL); err != nil {
		logger.Log.Warn("Failed to cache offer list", zap.String("key", key), zap.Error(err))
	}

	return offers, total, nil
}

func (s *CachedOfferService) GetOffer(id string) (*model.Offer, error) {
	ctx := context.Background()
	key := offerCacheKey(id)

	var cached model.Offer
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		s.metrics.RecordCacheHit("offer")
		return &cached, nil
	}
	s.metrics.RecordCacheMiss("offer")

	offer, err := s.inner.GetOffer(id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, offer, OfferCacheTTL); err != nil {
		logger.Log.Warn("Failed to cache offer", zap.String("key", key), zap.Error(err))
	}

	return offer, nil
}

// CheckPurchasable always goes to the store; a cached remaining count must
// never gate a purchase.
func (s *CachedOfferService) CheckPurchasable(id string) (*model.Snapshot, error) {
	return s.inner.CheckPurchasable(id)
}

// ReviewOffer writes through and drops the affected cache entries so an
// approved offer shows up without waiting for the TTL.
func (s *CachedOfferService) ReviewOffer(id, status string) error {
	if err := s.inner.ReviewOffer(id, status); err != nil {
		return err
	}

	ctx := context.Background()
	if err := s.cache.Delete(ctx, offerCacheKey(id)); err != nil {
		logger.Log.Warn("Failed to drop reviewed offer from cache", zap.String("offer_id", id), zap.Error(err))
	}
	if err := s.cache.InvalidatePattern(ctx, OfferListCacheKeyPrefix+"*"); err != nil {
		logger.Log.Warn("Failed to drop offer listings from cache", zap.Error(err))
	}
	return nil
}
