package service

import (
	"context"
	"fmt"

	"khmer-shop-backend/internal/dto"
	"khmer-shop-backend/internal/repository"
)

// CatalogService is the read-only product/category surface. Catalog writes
// happen out of band; this core only ever writes Product.Stock, at checkout.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]*dto.CategoryView, error)
	ListProducts(ctx context.Context, filter repository.CatalogFilter) ([]*dto.ProductView, error)
	GetProduct(ctx context.Context, productID uint) (*dto.ProductView, error)
}

type catalogServiceImpl struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) CatalogService {
	return &catalogServiceImpl{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]*dto.CategoryView, error) {
	categories, err := s.categoryRepo.ListRoots(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	views := make([]*dto.CategoryView, len(categories))
	for i, c := range categories {
		views[i] = newCategoryView(c)
	}

	return views, nil
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, filter repository.CatalogFilter) ([]*dto.ProductView, error) {
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	views := make([]*dto.ProductView, len(products))
	for i, p := range products {
		views[i] = newProductView(p)
	}

	return views, nil
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, productID uint) (*dto.ProductView, error) {
	product, err := s.productRepo.FindActiveByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	return newProductView(product), nil
}
