package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"khmer-shop-backend/internal/apperr"
	"khmer-shop-backend/internal/dto"
	"khmer-shop-backend/internal/model"
	"khmer-shop-backend/internal/service"
)

// AdminHandler is the operator surface: proof verification and manual
// fulfillment status moves.
type AdminHandler struct {
	orderService service.OrderService
	proofService service.ProofService
}

func NewAdminHandler(orderService service.OrderService, proofService service.ProofService) *AdminHandler {
	return &AdminHandler{
		orderService: orderService,
		proofService: proofService,
	}
}

func (h *AdminHandler) ListProofs(c echo.Context) error {
	ctx := c.Request().Context()

	proofs, err := h.proofService.ListProofs(ctx, model.ProofStatus(c.QueryParam("status")))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, proofs)
}

func (h *AdminHandler) VerifyProofs(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.VerifyProofsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	var decision model.ProofStatus
	switch req.Decision {
	case "approve":
		decision = model.ProofApproved
	case "reject":
		decision = model.ProofRejected
	default:
		return apperr.Validation("decision must be approve or reject")
	}

	updated, err := h.proofService.Verify(ctx, req.ProofIDs, decision)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.VerifyProofsResponse{Updated: updated})
}

func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.orderService.AdvanceStatus(ctx, orderID, model.OrderStatus(req.Status))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}
