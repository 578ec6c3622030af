package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"khmer-shop-backend/internal/repository"
	"khmer-shop-backend/internal/service"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.catalogService.ListCategories(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	filter := repository.CatalogFilter{
		IsNew:      boolParam(c.QueryParam("is_new")),
		IsFeatured: boolParam(c.QueryParam("is_featured")),
		Discounted: boolParam(c.QueryParam("discounted")),
	}
	if raw := c.QueryParam("category"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.CategoryID = uint(id)
		}
	}
	if raw := c.QueryParam("parent_category"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.ParentCategoryID = uint(id)
		}
	}

	products, err := h.catalogService.ListProducts(ctx, filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	product, err := h.catalogService.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

func boolParam(raw string) bool {
	switch raw {
	case "true", "1", "yes":
		return true
	}
	return false
}
