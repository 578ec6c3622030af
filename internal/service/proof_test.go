package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"khmer-shop-backend/internal/apperr"
	"khmer-shop-backend/internal/dto"
	"khmer-shop-backend/internal/model"
	"khmer-shop-backend/internal/repository"
	"khmer-shop-backend/internal/storage"
)

func (e *testEnv) placeOrder(t *testing.T, buyer string) *dto.OrderDetail {
	t.Helper()
	product := e.seedProduct(t, "Product-"+buyer, "1000", 0, 10)

	_, err := e.carts.AddItem(ctx, buyer, product.ID, 1)
	require.NoError(t, err)
	order, err := e.orders.Checkout(ctx, buyer, "012", "addr", "")
	require.NoError(t, err)
	return order
}

func (e *testEnv) uploadProof(t *testing.T, buyer string, orderID uint) *dto.ProofView {
	t.Helper()
	proof, err := e.proofs.Upload(ctx, buyer, orderID, "receipt.jpg", strings.NewReader("screenshot"), "paid via ABA")
	require.NoError(t, err)
	return proof
}

func TestUploadProof(t *testing.T) {
	env := newTestEnv(t)
	order := env.placeOrder(t, "buyer-1")

	proof := env.uploadProof(t, "buyer-1", order.ID)
	assert.Equal(t, string(model.ProofPending), proof.Status)
	assert.Equal(t, order.OrderCode, proof.OrderCode)
	assert.Equal(t, "paid via ABA", proof.Note)
	// the stored reference is the store's name, not the upload's
	assert.NotEmpty(t, proof.Image)
	assert.NotEqual(t, "receipt.jpg", proof.Image)
	assert.True(t, strings.HasSuffix(proof.Image, ".jpg"))

	// the proof shows up on the order detail
	detail, err := env.orders.GetOrder(ctx, "buyer-1", order.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.PaymentProof)
	assert.Equal(t, proof.ID, detail.PaymentProof.ID)
}

func TestUploadProofConflict(t *testing.T) {
	env := newTestEnv(t)
	order := env.placeOrder(t, "buyer-1")
	original := env.uploadProof(t, "buyer-1", order.ID)

	_, err := env.proofs.Upload(ctx, "buyer-1", order.ID, "second.png", strings.NewReader("x"), "")
	assert.True(t, errors.Is(err, apperr.ErrProofExists))

	// the original is untouched
	assert.Equal(t, model.ProofPending, env.proofStatus(t, original.ID))
	var count int64
	require.NoError(t, env.db.Model(&model.PaymentProof{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

// losesRaceProofRepo stands in for a second upload committing its row
// between the existence pre-check and the insert.
type losesRaceProofRepo struct {
	repository.ProofRepository
}

func (r *losesRaceProofRepo) Create(_ context.Context, _ *model.PaymentProof) error {
	return gorm.ErrDuplicatedKey
}

func TestUploadProofCleansUpEvidenceOnLostRace(t *testing.T) {
	env := newTestEnv(t)
	order := env.placeOrder(t, "buyer-1")

	dir := t.TempDir()
	evidence, err := storage.NewLocalStore(dir)
	require.NoError(t, err)

	proofs := NewProofService(env.db, evidence, env.orderRepo,
		&losesRaceProofRepo{repository.NewProofRepository(env.db)})

	_, err = proofs.Upload(ctx, "buyer-1", order.ID, "r.jpg", strings.NewReader("x"), "")
	assert.True(t, errors.Is(err, apperr.ErrProofExists))

	// the stored file was removed along with the failed insert
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadProofOwnership(t *testing.T) {
	env := newTestEnv(t)
	order := env.placeOrder(t, "buyer-1")

	_, err := env.proofs.Upload(ctx, "buyer-2", order.ID, "a.jpg", strings.NewReader("x"), "")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestVerifyApprove(t *testing.T) {
	env := newTestEnv(t)
	order := env.placeOrder(t, "buyer-1")
	proof := env.uploadProof(t, "buyer-1", order.ID)

	updated, err := env.proofs.Verify(ctx, []uint{proof.ID}, model.ProofApproved)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	assert.Equal(t, model.ProofApproved, env.proofStatus(t, proof.ID))
	assert.Equal(t, model.OrderPaid, env.orderStatus(t, order.ID))
}

func TestVerifyReject(t *testing.T) {
	env := newTestEnv(t)
	order := env.placeOrder(t, "buyer-1")
	proof := env.uploadProof(t, "buyer-1", order.ID)

	updated, err := env.proofs.Verify(ctx, []uint{proof.ID}, model.ProofRejected)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	assert.Equal(t, model.ProofRejected, env.proofStatus(t, proof.ID))
	assert.Equal(t, model.OrderRejected, env.orderStatus(t, order.ID))
}

func TestVerifyBatch(t *testing.T) {
	env := newTestEnv(t)

	var proofIDs []uint
	var orderIDs []uint
	for _, buyer := range []string{"b1", "b2", "b3"} {
		order := env.placeOrder(t, buyer)
		proof := env.uploadProof(t, buyer, order.ID)
		proofIDs = append(proofIDs, proof.ID)
		orderIDs = append(orderIDs, order.ID)
	}

	updated, err := env.proofs.Verify(ctx, proofIDs, model.ProofApproved)
	require.NoError(t, err)
	assert.Equal(t, 3, updated)

	for i, id := range proofIDs {
		assert.Equal(t, model.ProofApproved, env.proofStatus(t, id))
		assert.Equal(t, model.OrderPaid, env.orderStatus(t, orderIDs[i]))
	}
}

func TestVerifyBatchRollsBackWhole(t *testing.T) {
	env := newTestEnv(t)

	first := env.placeOrder(t, "b1")
	firstProof := env.uploadProof(t, "b1", first.ID)

	second := env.placeOrder(t, "b2")
	secondProof := env.uploadProof(t, "b2", second.ID)

	// the second proof was already decided
	_, err := env.proofs.Verify(ctx, []uint{secondProof.ID}, model.ProofRejected)
	require.NoError(t, err)

	_, err = env.proofs.Verify(ctx, []uint{firstProof.ID, secondProof.ID}, model.ProofApproved)
	assert.True(t, errors.Is(err, apperr.ErrInvalidTransition))

	// the first item was processed before the failure and must be rolled back
	assert.Equal(t, model.ProofPending, env.proofStatus(t, firstProof.ID))
	assert.Equal(t, model.OrderPendingPayment, env.orderStatus(t, first.ID))
	assert.Equal(t, model.ProofRejected, env.proofStatus(t, secondProof.ID))
	assert.Equal(t, model.OrderRejected, env.orderStatus(t, second.ID))
}

func TestVerifyMissingProofFailsBatch(t *testing.T) {
	env := newTestEnv(t)
	order := env.placeOrder(t, "b1")
	proof := env.uploadProof(t, "b1", order.ID)

	_, err := env.proofs.Verify(ctx, []uint{proof.ID, 9999}, model.ProofApproved)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	assert.Equal(t, model.ProofPending, env.proofStatus(t, proof.ID))
	assert.Equal(t, model.OrderPendingPayment, env.orderStatus(t, order.ID))
}

func TestVerifyValidation(t *testing.T) {
	env := newTestEnv(t)

	var validation *apperr.ValidationError
	_, err := env.proofs.Verify(ctx, nil, model.ProofApproved)
	assert.ErrorAs(t, err, &validation)

	_, err = env.proofs.Verify(ctx, []uint{1}, model.ProofPending)
	assert.ErrorAs(t, err, &validation)
}

func TestListProofsByStatus(t *testing.T) {
	env := newTestEnv(t)

	first := env.placeOrder(t, "b1")
	firstProof := env.uploadProof(t, "b1", first.ID)
	second := env.placeOrder(t, "b2")
	secondProof := env.uploadProof(t, "b2", second.ID)

	_, err := env.proofs.Verify(ctx, []uint{firstProof.ID}, model.ProofApproved)
	require.NoError(t, err)

	pending, err := env.proofs.ListProofs(ctx, model.ProofPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, secondProof.ID, pending[0].ID)
	assert.Equal(t, second.OrderCode, pending[0].OrderCode)

	all, err := env.proofs.ListProofs(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
