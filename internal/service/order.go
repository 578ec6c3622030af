package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"khmer-shop-backend/internal/apperr"
	"khmer-shop-backend/internal/dto"
	"khmer-shop-backend/internal/model"
	"khmer-shop-backend/internal/ordercode"
	"khmer-shop-backend/internal/repository"
)

type OrderService interface {
	// Checkout converts the buyer's non-empty cart into an order in one
	// atomic transaction: lock products, re-validate stock, snapshot
	// prices, decrement stock, clear the cart.
	Checkout(ctx context.Context, userID, phone, address, note string) (*dto.OrderDetail, error)
	ListOrders(ctx context.Context, userID string) ([]*dto.OrderSummary, error)
	GetOrder(ctx context.Context, userID string, orderID uint) (*dto.OrderDetail, error)
	// AdvanceStatus applies an operator-driven status move, validated
	// against the closed transition table.
	AdvanceStatus(ctx context.Context, orderID uint, status model.OrderStatus) (*dto.OrderDetail, error)
}

type orderServiceImpl struct {
	db           *gorm.DB
	codeGen      *ordercode.Generator
	codeAttempts int
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
}

func NewOrderService(
	db *gorm.DB,
	codeGen *ordercode.Generator,
	codeAttempts int,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) OrderService {
	return &orderServiceImpl{
		db:           db,
		codeGen:      codeGen,
		codeAttempts: codeAttempts,
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
	}
}

func (s *orderServiceImpl) Checkout(ctx context.Context, userID, phone, address, note string) (*dto.OrderDetail, error) {
	phone = strings.TrimSpace(phone)
	address = strings.TrimSpace(address)
	note = strings.TrimSpace(note)

	if phone == "" {
		return nil, apperr.Validation("phone is required")
	}
	if address == "" {
		return nil, apperr.Validation("address is required")
	}

	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	var order *model.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// the line items are read and locked inside the transaction;
		// a snapshot taken before it could miss a concurrent cart edit
		// and clear rows that never became order items
		items, err := s.cartRepo.GetItemsForUpdate(ctx, tx, cart.ID)
		if err != nil {
			return fmt.Errorf("load cart items: %w", err)
		}
		if len(items) == 0 {
			return apperr.ErrEmptyCart
		}

		productIDs := make([]uint, len(items))
		for i, it := range items {
			productIDs[i] = it.ProductID
		}

		// exclusive locks, acquired in ascending product id order so
		// concurrent checkouts sharing products cannot deadlock
		products, err := s.productRepo.FindForUpdate(ctx, tx, productIDs)
		if err != nil {
			return fmt.Errorf("lock products: %w", err)
		}

		productByID := make(map[uint]*model.Product, len(products))
		for _, p := range products {
			productByID[p.ID] = p
		}

		// re-validate under lock; any shortage aborts the whole checkout
		for _, it := range items {
			p, ok := productByID[it.ProductID]
			if !ok {
				return apperr.ErrNotFound
			}
			if p.Stock < it.Qty {
				return &apperr.InsufficientStockError{ProductID: p.ID, ProductName: p.Name}
			}
		}

		code, err := s.allocateCode(ctx, tx)
		if err != nil {
			return err
		}

		order = &model.Order{
			UserID:    userID,
			Phone:     phone,
			Address:   address,
			Note:      note,
			Total:     decimal.Zero,
			OrderCode: code,
			Status:    model.OrderPendingPayment,
			CreatedAt: time.Now(),
		}
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		total := decimal.Zero
		orderItems := make([]*model.OrderItem, 0, len(items))
		for _, it := range items {
			p := productByID[it.ProductID]
			unitPrice := p.FinalPrice()

			orderItems = append(orderItems, &model.OrderItem{
				OrderID:     order.ID,
				ProductID:   p.ID,
				ProductName: p.Name,
				UnitPrice:   unitPrice,
				Qty:         it.Qty,
			})
			total = total.Add(unitPrice.Mul(decimal.NewFromInt(int64(it.Qty))))

			// the lock plus the check above make the clamp a no-op; it
			// stays as a floor so stock can never go negative
			newStock := uint(0)
			if p.Stock > it.Qty {
				newStock = p.Stock - it.Qty
			}
			if err := s.productRepo.UpdateStock(ctx, tx, p.ID, newStock); err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
		}

		if err := s.orderRepo.CreateItems(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("create order items: %w", err)
		}
		if err := s.orderRepo.UpdateTotal(ctx, tx, order.ID, total); err != nil {
			return fmt.Errorf("set order total: %w", err)
		}
		if err := s.cartRepo.DeleteAllItems(ctx, tx, cart.ID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		order.Total = total
		for _, oi := range orderItems {
			order.Items = append(order.Items, *oi)
		}
		return nil
	})
	if err != nil {
		return nil, checkoutError(err)
	}

	return newOrderDetail(order), nil
}

// checkoutError keeps the domain errors intact and wraps everything else as
// an opaque transaction failure.
func checkoutError(err error) error {
	var (
		insufficient *apperr.InsufficientStockError
		validation   *apperr.ValidationError
		txErr        *apperr.TransactionError
	)
	if errors.Is(err, apperr.ErrNotFound) ||
		errors.Is(err, apperr.ErrEmptyCart) ||
		errors.As(err, &insufficient) ||
		errors.As(err, &validation) ||
		errors.As(err, &txErr) {
		return err
	}
	return &apperr.TransactionError{Op: "checkout", Err: err}
}

// allocateCode draws random codes until one is globally unique. Attempts
// are bounded; at 36^10 combinations exhausting them means something is
// wrong with the store, not the dice.
func (s *orderServiceImpl) allocateCode(ctx context.Context, tx *gorm.DB) (string, error) {
	for i := 0; i < s.codeAttempts; i++ {
		code, err := s.codeGen.Generate()
		if err != nil {
			return "", &apperr.TransactionError{Op: "generate order code", Err: err}
		}

		exists, err := s.orderRepo.CodeExists(ctx, tx, code)
		if err != nil {
			return "", fmt.Errorf("check order code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", &apperr.TransactionError{
		Op:  "generate order code",
		Err: fmt.Errorf("no unique code after %d attempts", s.codeAttempts),
	}
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, userID string) ([]*dto.OrderSummary, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	summaries := make([]*dto.OrderSummary, len(orders))
	for i, o := range orders {
		summaries[i] = newOrderSummary(o)
	}

	return summaries, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, userID string, orderID uint) (*dto.OrderDetail, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	return newOrderDetail(order), nil
}

func (s *orderServiceImpl) AdvanceStatus(ctx context.Context, orderID uint, status model.OrderStatus) (*dto.OrderDetail, error) {
	if !status.Valid() {
		return nil, apperr.Validation("unknown order status %q", status)
	}

	// check and write under the same row lock; an unlocked read could
	// race a verification decision and resurrect a terminal order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}

		if !order.Status.CanTransitionTo(status) {
			return fmt.Errorf("%s -> %s: %w", order.Status, status, apperr.ErrInvalidTransition)
		}

		return s.orderRepo.UpdateStatus(ctx, tx, orderID, order.Status, status)
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return newOrderDetail(order), nil
}
