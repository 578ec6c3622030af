package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"khmer-shop-backend/internal/apperr"
	"khmer-shop-backend/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	CreateItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error
	UpdateTotal(ctx context.Context, tx *gorm.DB, orderID uint, total decimal.Decimal) error
	// UpdateStatus is compare-and-set: the write only lands if the row
	// still holds from, so a stale read can never overwrite a concurrent
	// transition.
	UpdateStatus(ctx context.Context, tx *gorm.DB, orderID uint, from, to model.OrderStatus) error
	CodeExists(ctx context.Context, tx *gorm.DB, code string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)
	FindByID(ctx context.Context, orderID uint) (*model.Order, error)
	FindByIDForUser(ctx context.Context, orderID uint, userID string) (*model.Order, error)
	FindForUpdate(ctx context.Context, tx *gorm.DB, orderID uint) (*model.Order, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) CreateItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error {
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *orderRepoImpl) UpdateTotal(ctx context.Context, tx *gorm.DB, orderID uint, total decimal.Decimal) error {
	return tx.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("total", total).Error
}

func (r *orderRepoImpl) UpdateStatus(ctx context.Context, tx *gorm.DB, orderID uint, from, to model.OrderStatus) error {
	result := tx.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.ErrInvalidTransition
	}

	return nil
}

func (r *orderRepoImpl) CodeExists(ctx context.Context, tx *gorm.DB, code string) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.Order{}).
		Where("order_code = ?", code).
		Count(&count).Error

	return count > 0, err
}

func (r *orderRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items").
		Preload("PaymentProof").
		Order("id DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		Preload("Items").
		Preload("PaymentProof").
		First(&order).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByIDForUser(ctx context.Context, orderID uint, userID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		Preload("Items").
		Preload("PaymentProof").
		First(&order).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindForUpdate(ctx context.Context, tx *gorm.DB, orderID uint) (*model.Order, error) {
	var order model.Order
	err := forUpdate(tx.WithContext(ctx)).
		Where("id = ?", orderID).
		First(&order).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &order, nil
}
