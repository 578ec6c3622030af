package service

import (
	"context"
	"errors"
	"fmt"

	"khmer-shop-backend/internal/apperr"
	"khmer-shop-backend/internal/dto"
	"khmer-shop-backend/internal/model"
	"khmer-shop-backend/internal/repository"
)

// CartService owns a buyer's cart. Its stock checks are advisory only;
// checkout re-validates everything under lock.
type CartService interface {
	GetCart(ctx context.Context, userID string) (*dto.CartView, error)
	AddItem(ctx context.Context, userID string, productID, qty uint) (*dto.CartView, error)
	SetItemQty(ctx context.Context, userID string, itemID uint, qty int) (*dto.CartView, error)
	RemoveItem(ctx context.Context, userID string, itemID uint) (*dto.CartView, error)
}

type cartServiceImpl struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
) CartService {
	return &cartServiceImpl{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartServiceImpl) GetCart(ctx context.Context, userID string) (*dto.CartView, error) {
	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return s.view(ctx, cart)
}

func (s *cartServiceImpl) AddItem(ctx context.Context, userID string, productID, qty uint) (*dto.CartView, error) {
	if qty < 1 {
		return nil, apperr.Validation("qty must be >= 1")
	}

	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	product, err := s.productRepo.FindActiveByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.FindItemByProduct(ctx, cart.ID, productID)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		item = &model.CartItem{CartID: cart.ID, ProductID: productID, Qty: qty}
	case err != nil:
		return nil, fmt.Errorf("find cart item: %w", err)
	default:
		// adding an existing product accumulates
		item.Qty += qty
	}

	if product.Stock < item.Qty {
		return nil, &apperr.InsufficientStockError{ProductID: product.ID, ProductName: product.Name}
	}

	if err := s.cartRepo.SaveItem(ctx, item); err != nil {
		return nil, fmt.Errorf("save cart item: %w", err)
	}

	return s.view(ctx, cart)
}

func (s *cartServiceImpl) SetItemQty(ctx context.Context, userID string, itemID uint, qty int) (*dto.CartView, error) {
	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	item, err := s.cartRepo.FindItem(ctx, cart.ID, itemID)
	if err != nil {
		return nil, err
	}

	// qty below one is an idempotent remove
	if qty < 1 {
		if err := s.cartRepo.DeleteItem(ctx, cart.ID, itemID); err != nil {
			return nil, fmt.Errorf("delete cart item: %w", err)
		}
		return s.view(ctx, cart)
	}

	if item.Product.Stock < uint(qty) {
		return nil, &apperr.InsufficientStockError{ProductID: item.Product.ID, ProductName: item.Product.Name}
	}

	// absolute overwrite, not additive
	item.Qty = uint(qty)
	if err := s.cartRepo.SaveItem(ctx, item); err != nil {
		return nil, fmt.Errorf("save cart item: %w", err)
	}

	return s.view(ctx, cart)
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID string, itemID uint) (*dto.CartView, error) {
	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	// the delete is scoped to the caller's own cart, so removing an item
	// that is already gone simply leaves the cart as-is
	if err := s.cartRepo.DeleteItem(ctx, cart.ID, itemID); err != nil {
		return nil, fmt.Errorf("delete cart item: %w", err)
	}

	return s.view(ctx, cart)
}

func (s *cartServiceImpl) view(ctx context.Context, cart *model.Cart) (*dto.CartView, error) {
	items, err := s.cartRepo.GetItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("load cart items: %w", err)
	}

	return newCartView(cart, items), nil
}
