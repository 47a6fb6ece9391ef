package repository

import (
	"github.com/laujml/la-cuponera/internal/domain/category/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	ListActive() ([]model.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) ListActive() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Where("activo = ?", true).Order("nombre ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
