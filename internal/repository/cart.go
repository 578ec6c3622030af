package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"khmer-shop-backend/internal/apperr"
	"khmer-shop-backend/internal/model"
)

type CartRepository interface {
	// GetOrCreate returns the buyer's cart, creating it on first use.
	GetOrCreate(ctx context.Context, userID string) (*model.Cart, error)
	GetItems(ctx context.Context, cartID uint) ([]*model.CartItem, error)
	// GetItemsForUpdate reads the cart's line items inside tx under an
	// exclusive row lock, so checkout snapshots and clears exactly the
	// rows it saw.
	GetItemsForUpdate(ctx context.Context, tx *gorm.DB, cartID uint) ([]*model.CartItem, error)
	FindItem(ctx context.Context, cartID, itemID uint) (*model.CartItem, error)
	FindItemByProduct(ctx context.Context, cartID, productID uint) (*model.CartItem, error)
	SaveItem(ctx context.Context, item *model.CartItem) error
	DeleteItem(ctx context.Context, cartID, itemID uint) error
	DeleteAllItems(ctx context.Context, tx *gorm.DB, cartID uint) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) GetOrCreate(ctx context.Context, userID string) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Where(model.Cart{UserID: userID}).
		FirstOrCreate(&cart).Error

	if err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *cartRepoImpl) GetItems(ctx context.Context, cartID uint) ([]*model.CartItem, error) {
	var items []*model.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Preload("Product").
		Order("id ASC").
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepoImpl) GetItemsForUpdate(ctx context.Context, tx *gorm.DB, cartID uint) ([]*model.CartItem, error) {
	var items []*model.CartItem
	err := forUpdate(tx.WithContext(ctx)).
		Where("cart_id = ?", cartID).
		Order("id ASC").
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepoImpl) FindItem(ctx context.Context, cartID, itemID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Preload("Product").
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *cartRepoImpl) FindItemByProduct(ctx context.Context, cartID, productID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *cartRepoImpl) SaveItem(ctx context.Context, item *model.CartItem) error {
	// never cascade into the product row from a cart write
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(item).Error
}

func (r *cartRepoImpl) DeleteItem(ctx context.Context, cartID, itemID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepoImpl) DeleteAllItems(ctx context.Context, tx *gorm.DB, cartID uint) error {
	return tx.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}).Error
}
