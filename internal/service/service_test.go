package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"khmer-shop-backend/internal/client"
	"khmer-shop-backend/internal/model"
	"khmer-shop-backend/internal/ordercode"
	"khmer-shop-backend/internal/repository"
	"khmer-shop-backend/internal/storage"
)

// testEnv wires the real services over an in-memory sqlite database. The
// pool is pinned to a single connection: that keeps the :memory: database
// alive and serializes concurrent transactions the way row locks do on a
// server database.
type testEnv struct {
	db      *gorm.DB
	carts   CartService
	orders  OrderService
	proofs  ProofService
	catalog CatalogService

	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository

	category *model.Category
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	require.NoError(t, client.Migrate(db))

	evidence, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	proofRepo := repository.NewProofRepository(db)

	codeGen := ordercode.New("KH", 10)

	return &testEnv{
		db:        db,
		carts:     NewCartService(cartRepo, productRepo),
		orders:    NewOrderService(db, codeGen, 5, cartRepo, productRepo, orderRepo),
		proofs:    NewProofService(db, evidence, orderRepo, proofRepo),
		catalog:   NewCatalogService(categoryRepo, productRepo),
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
	}
}

func (e *testEnv) seedCategory(t *testing.T) *model.Category {
	t.Helper()
	if e.category != nil {
		return e.category
	}
	e.category = &model.Category{Name: "Drinks", Slug: "drinks"}
	require.NoError(t, e.db.Create(e.category).Error)
	return e.category
}

func (e *testEnv) seedProduct(t *testing.T, name, price string, discount, stock uint) *model.Product {
	t.Helper()
	product := &model.Product{
		CategoryID:      e.seedCategory(t).ID,
		Name:            name,
		Slug:            name + "-slug",
		Price:           decimal.RequireFromString(price),
		DiscountPercent: discount,
		Stock:           stock,
		IsActive:        true,
	}
	require.NoError(t, e.db.Create(product).Error)
	return product
}

func (e *testEnv) productStock(t *testing.T, productID uint) uint {
	t.Helper()
	var product model.Product
	require.NoError(t, e.db.First(&product, productID).Error)
	return product.Stock
}

func (e *testEnv) orderStatus(t *testing.T, orderID uint) model.OrderStatus {
	t.Helper()
	var order model.Order
	require.NoError(t, e.db.First(&order, orderID).Error)
	return order.Status
}

func (e *testEnv) proofStatus(t *testing.T, proofID uint) model.ProofStatus {
	t.Helper()
	var proof model.PaymentProof
	require.NoError(t, e.db.First(&proof, proofID).Error)
	return proof.Status
}

func requireDecimalEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(decimal.RequireFromString(want)),
		"got %s, want %s", got, want)
}

var ctx = context.Background()
