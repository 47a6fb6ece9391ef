package service

import (
	"context"
	"fmt"
	"time"

	"github.com/laujml/la-cuponera/internal/domain/category/model"
	"github.com/laujml/la-cuponera/internal/domain/category/repository"
	"github.com/laujml/la-cuponera/pkg/cache"
	"github.com/laujml/la-cuponera/pkg/logger"

	"go.uber.org/zap"
)

const (
	categoryCacheKey = "categories:active"
	categoryCacheTTL = time.Minute * 30
)

type CategoryService interface {
	ListActive() ([]model.Category, error)
}

type categoryService struct {
	repo  repository.CategoryRepository
	cache cache.CacheService
}

func NewCategoryService(repo repository.CategoryRepository, c cache.CacheService) CategoryService {
	return &categoryService{repo: repo, cache: c}
}

// ListActive returns active categories ordered by name. Categories change
// rarely, so a long cache TTL is fine.
func (s *categoryService) ListActive() ([]model.Category, error) {
	ctx := context.Background()

	var cached []model.Category
	if err := s.cache.Get(ctx, categoryCacheKey, &cached); err == nil {
		return cached, nil
	}

	categories, err := s.repo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("category query failed: %w", err)
	}

	if err := s.cache.Set(ctx, categoryCacheKey, categories, categoryCacheTTL); err != nil {
		logger.Log.Warn("Failed to cache categories", zap.Error(err))
	}

	return categories, nil
}
