package repository

import (
	"context"

	"gorm.io/gorm"

	"khmer-shop-backend/internal/model"
)

type CategoryRepository interface {
	ListRoots(ctx context.Context) ([]*model.Category, error)
}

type categoryRepoImpl struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepoImpl{
		db: db,
	}
}

func (r *categoryRepoImpl) ListRoots(ctx context.Context) ([]*model.Category, error) {
	var categories []*model.Category
	err := r.db.WithContext(ctx).
		Where("parent_id IS NULL").
		Preload("Subcategories").
		Order("id ASC").
		Find(&categories).Error

	if err != nil {
		return nil, err
	}

	return categories, nil
}
