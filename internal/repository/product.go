package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"khmer-shop-backend/internal/apperr"
	"khmer-shop-backend/internal/model"
)

// CatalogFilter narrows the public product listing.
type CatalogFilter struct {
	IsNew      bool
	IsFeatured bool
	Discounted bool
	CategoryID uint
	// matches products whose category is a child of this category
	ParentCategoryID uint
}

type ProductRepository interface {
	FindByID(ctx context.Context, productID uint) (*model.Product, error)
	FindActiveByID(ctx context.Context, productID uint) (*model.Product, error)
	List(ctx context.Context, filter CatalogFilter) ([]*model.Product, error)
	// FindForUpdate loads the given products in ascending id order under an
	// exclusive row lock. Lock order is deterministic so concurrent
	// checkouts sharing products cannot deadlock.
	FindForUpdate(ctx context.Context, tx *gorm.DB, productIDs []uint) ([]*model.Product, error)
	UpdateStock(ctx context.Context, tx *gorm.DB, productID uint, stock uint) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindActiveByID(ctx context.Context, productID uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", productID, true).
		First(&product).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) List(ctx context.Context, filter CatalogFilter) ([]*model.Product, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)

	if filter.IsNew {
		q = q.Where("is_new = ?", true)
	}
	if filter.IsFeatured {
		q = q.Where("is_featured = ?", true)
	}
	if filter.Discounted {
		q = q.Where("discount_percent > 0")
	}
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.ParentCategoryID != 0 {
		q = q.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.parent_id = ?", filter.ParentCategoryID)
	}

	var products []*model.Product
	err := q.Order("products.id DESC").Find(&products).Error
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) FindForUpdate(ctx context.Context, tx *gorm.DB, productIDs []uint) ([]*model.Product, error) {
	var products []*model.Product
	err := forUpdate(tx.WithContext(ctx)).
		Where("id IN ?", productIDs).
		Order("id ASC").
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) UpdateStock(ctx context.Context, tx *gorm.DB, productID uint, stock uint) error {
	return tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", productID).
		Update("stock", stock).Error
}
