package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"

	"khmer-shop-backend/internal/apperr"
	"khmer-shop-backend/internal/dto"
	"khmer-shop-backend/internal/model"
	"khmer-shop-backend/internal/repository"
	"khmer-shop-backend/internal/storage"
)

type ProofService interface {
	// Upload attaches payment evidence to the buyer's own order. An order
	// takes at most one proof, ever.
	Upload(ctx context.Context, userID string, orderID uint, filename string, file io.Reader, note string) (*dto.ProofView, error)
	// Verify applies one operator decision to a batch of pending proofs in
	// a single transaction; any failure rolls back the whole batch.
	Verify(ctx context.Context, proofIDs []uint, decision model.ProofStatus) (int, error)
	ListProofs(ctx context.Context, status model.ProofStatus) ([]*dto.ProofView, error)
}

type proofServiceImpl struct {
	db        *gorm.DB
	evidence  storage.EvidenceStore
	orderRepo repository.OrderRepository
	proofRepo repository.ProofRepository
}

func NewProofService(
	db *gorm.DB,
	evidence storage.EvidenceStore,
	orderRepo repository.OrderRepository,
	proofRepo repository.ProofRepository,
) ProofService {
	return &proofServiceImpl{
		db:        db,
		evidence:  evidence,
		orderRepo: orderRepo,
		proofRepo: proofRepo,
	}
}

func (s *proofServiceImpl) Upload(ctx context.Context, userID string, orderID uint, filename string, file io.Reader, note string) (*dto.ProofView, error) {
	if file == nil {
		return nil, apperr.Validation("image is required")
	}

	order, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	exists, err := s.proofRepo.ExistsForOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing proof: %w", err)
	}
	if exists {
		return nil, apperr.ErrProofExists
	}

	ref, err := s.evidence.Save(ctx, filename, file)
	if err != nil {
		return nil, fmt.Errorf("store evidence: %w", err)
	}

	proof := &model.PaymentProof{
		OrderID:   order.ID,
		Image:     ref,
		Note:      note,
		Status:    model.ProofPending,
		CreatedAt: time.Now(),
	}
	if err := s.proofRepo.Create(ctx, proof); err != nil {
		// the row never landed, so the stored file would be orphaned
		_ = s.evidence.Remove(ctx, ref)

		// the unique index on order_id backs the pre-check against
		// concurrent uploads
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ErrProofExists
		}
		return nil, fmt.Errorf("create proof: %w", err)
	}

	proof.Order = *order
	return newProofView(proof), nil
}

func (s *proofServiceImpl) Verify(ctx context.Context, proofIDs []uint, decision model.ProofStatus) (int, error) {
	orderStatus, ok := decision.OrderStatusFor()
	if !ok {
		return 0, apperr.Validation("decision must be approve or reject")
	}
	if len(proofIDs) == 0 {
		return 0, apperr.Validation("no proofs selected")
	}

	ids := dedupe(proofIDs)

	updated := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		proofs, err := s.proofRepo.FindForUpdate(ctx, tx, ids)
		if err != nil {
			return fmt.Errorf("lock proofs: %w", err)
		}
		if len(proofs) != len(ids) {
			return apperr.ErrNotFound
		}

		for _, proof := range proofs {
			if proof.Status != model.ProofPending {
				return fmt.Errorf("proof %d is %s: %w", proof.ID, proof.Status, apperr.ErrInvalidTransition)
			}

			order, err := s.orderRepo.FindForUpdate(ctx, tx, proof.OrderID)
			if err != nil {
				return fmt.Errorf("lock order %d: %w", proof.OrderID, err)
			}
			if !order.Status.CanTransitionTo(orderStatus) {
				return fmt.Errorf("order %s is %s: %w", order.OrderCode, order.Status, apperr.ErrInvalidTransition)
			}

			if err := s.proofRepo.UpdateStatus(ctx, tx, proof.ID, decision); err != nil {
				return fmt.Errorf("update proof %d: %w", proof.ID, err)
			}
			if err := s.orderRepo.UpdateStatus(ctx, tx, order.ID, order.Status, orderStatus); err != nil {
				return fmt.Errorf("update order %d: %w", order.ID, err)
			}
			updated++
		}
		return nil
	})
	if err != nil {
		// nothing from this batch survives a failure
		return 0, err
	}

	return updated, nil
}

func (s *proofServiceImpl) ListProofs(ctx context.Context, status model.ProofStatus) ([]*dto.ProofView, error) {
	proofs, err := s.proofRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list proofs: %w", err)
	}

	views := make([]*dto.ProofView, len(proofs))
	for i, p := range proofs {
		views[i] = newProofView(p)
	}

	return views, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
