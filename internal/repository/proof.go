package repository

import (
	"context"

	"gorm.io/gorm"

	"khmer-shop-backend/internal/apperr"
	"khmer-shop-backend/internal/model"
)

type ProofRepository interface {
	Create(ctx context.Context, proof *model.PaymentProof) error
	ExistsForOrder(ctx context.Context, orderID uint) (bool, error)
	ListByStatus(ctx context.Context, status model.ProofStatus) ([]*model.PaymentProof, error)
	// FindForUpdate loads the given proofs in ascending id order under an
	// exclusive row lock, without their orders; the order rows are locked
	// separately through OrderRepository.FindForUpdate.
	FindForUpdate(ctx context.Context, tx *gorm.DB, proofIDs []uint) ([]*model.PaymentProof, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, proofID uint, status model.ProofStatus) error
}

type proofRepoImpl struct {
	db *gorm.DB
}

func NewProofRepository(db *gorm.DB) ProofRepository {
	return &proofRepoImpl{
		db: db,
	}
}

func (r *proofRepoImpl) Create(ctx context.Context, proof *model.PaymentProof) error {
	return r.db.WithContext(ctx).Create(proof).Error
}

func (r *proofRepoImpl) ExistsForOrder(ctx context.Context, orderID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PaymentProof{}).
		Where("order_id = ?", orderID).
		Count(&count).Error

	return count > 0, err
}

func (r *proofRepoImpl) ListByStatus(ctx context.Context, status model.ProofStatus) ([]*model.PaymentProof, error) {
	var proofs []*model.PaymentProof
	q := r.db.WithContext(ctx).Preload("Order")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	err := q.Order("created_at DESC").Find(&proofs).Error
	if err != nil {
		return nil, err
	}

	return proofs, nil
}

func (r *proofRepoImpl) FindForUpdate(ctx context.Context, tx *gorm.DB, proofIDs []uint) ([]*model.PaymentProof, error) {
	var proofs []*model.PaymentProof
	err := forUpdate(tx.WithContext(ctx)).
		Where("id IN ?", proofIDs).
		Order("id ASC").
		Find(&proofs).Error

	if err != nil {
		return nil, err
	}

	return proofs, nil
}

func (r *proofRepoImpl) UpdateStatus(ctx context.Context, tx *gorm.DB, proofID uint, status model.ProofStatus) error {
	result := tx.WithContext(ctx).Model(&model.PaymentProof{}).
		Where("id = ?", proofID).
		Update("status", status)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.ErrNotFound
	}

	return nil
}
