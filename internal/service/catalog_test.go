package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khmer-shop-backend/internal/apperr"
	"khmer-shop-backend/internal/model"
	"khmer-shop-backend/internal/repository"
)

func TestListProductsFilters(t *testing.T) {
	env := newTestEnv(t)

	fresh := env.seedProduct(t, "Fresh", "100", 0, 5)
	require.NoError(t, env.db.Model(fresh).Update("is_new", true).Error)
	env.seedProduct(t, "OnSale", "100", 25, 5)
	hidden := env.seedProduct(t, "Hidden", "100", 0, 5)
	require.NoError(t, env.db.Model(hidden).Update("is_active", false).Error)

	all, err := env.catalog.ListProducts(ctx, repository.CatalogFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2) // inactive products never listed

	newOnly, err := env.catalog.ListProducts(ctx, repository.CatalogFilter{IsNew: true})
	require.NoError(t, err)
	require.Len(t, newOnly, 1)
	assert.Equal(t, "Fresh", newOnly[0].Name)

	sale, err := env.catalog.ListProducts(ctx, repository.CatalogFilter{Discounted: true})
	require.NoError(t, err)
	require.Len(t, sale, 1)
	assert.Equal(t, "OnSale", sale[0].Name)
	requireDecimalEqual(t, "75", sale[0].FinalPrice)
}

func TestListProductsByParentCategory(t *testing.T) {
	env := newTestEnv(t)

	root := env.seedCategory(t)
	child := &model.Category{Name: "Soft Drinks", Slug: "soft-drinks", ParentID: &root.ID}
	require.NoError(t, env.db.Create(child).Error)

	// sits directly on the root, not on a child of it
	env.seedProduct(t, "RootProduct", "100", 0, 5)

	nested := env.seedProduct(t, "ChildProduct", "100", 0, 5)
	require.NoError(t, env.db.Model(nested).Update("category_id", child.ID).Error)

	got, err := env.catalog.ListProducts(ctx, repository.CatalogFilter{ParentCategoryID: root.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ChildProduct", got[0].Name)
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Single", "400", 50, 0)

	view, err := env.catalog.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	requireDecimalEqual(t, "200", view.FinalPrice)
	assert.False(t, view.IsInStock) // derived from live stock

	_, err = env.catalog.GetProduct(ctx, 9999)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestListCategories(t *testing.T) {
	env := newTestEnv(t)
	root := env.seedCategory(t)
	child := &model.Category{Name: "Soft Drinks", Slug: "soft-drinks", ParentID: &root.ID}
	require.NoError(t, env.db.Create(child).Error)

	categories, err := env.catalog.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1) // only roots at the top level
	assert.Equal(t, root.Slug, categories[0].Slug)
	require.Len(t, categories[0].Subcategories, 1)
	assert.Equal(t, "soft-drinks", categories[0].Subcategories[0].Slug)
}
