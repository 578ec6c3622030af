package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"khmer-shop-backend/internal/dto"
	"khmer-shop-backend/internal/middleware"
	"khmer-shop-backend/internal/service"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	cart, err := h.cartService.GetCart(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.ProductID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id is required")
	}

	cart, err := h.cartService.AddItem(ctx, middleware.UserID(c), req.ProductID, req.Qty)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	var req dto.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	cart, err := h.cartService.SetItemQty(ctx, middleware.UserID(c), itemID, req.Qty)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	cart, err := h.cartService.RemoveItem(ctx, middleware.UserID(c), itemID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cart)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
