package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"khmer-shop-backend/internal/dto"
	"khmer-shop-backend/internal/middleware"
	"khmer-shop-backend/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
	proofService service.ProofService
}

func NewOrderHandler(orderService service.OrderService, proofService service.ProofService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		proofService: proofService,
	}
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.orderService.Checkout(ctx, middleware.UserID(c), req.Phone, req.Address, req.Note)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListOrders(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	order, err := h.orderService.GetOrder(ctx, middleware.UserID(c), orderID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UploadProof(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read image")
	}
	defer file.Close()

	proof, err := h.proofService.Upload(ctx, middleware.UserID(c), orderID, fileHeader.Filename, file, c.FormValue("note"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, proof)
}
