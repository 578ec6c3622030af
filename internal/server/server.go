package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"khmer-shop-backend/internal/apperr"
	"khmer-shop-backend/internal/config"
	"khmer-shop-backend/internal/handler"
	"khmer-shop-backend/internal/middleware"
	"khmer-shop-backend/internal/service"
)

type Server struct {
	echo           *echo.Echo
	catalogHandler *handler.CatalogHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	adminHandler   *handler.AdminHandler
}

func NewServer(
	cfg *config.Config,
	catalogService service.CatalogService,
	cartService service.CartService,
	orderService service.OrderService,
	proofService service.ProofService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:           e,
		catalogHandler: handler.NewCatalogHandler(catalogService),
		cartHandler:    handler.NewCartHandler(cartService),
		orderHandler:   handler.NewOrderHandler(orderService, proofService),
		adminHandler:   handler.NewAdminHandler(orderService, proofService),
	}

	s.setupRoutes(cfg)
	return s
}

func (s *Server) setupRoutes(cfg *config.Config) {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- catalog (public) --------
	api.GET("/categories", s.catalogHandler.ListCategories)
	api.GET("/products", s.catalogHandler.ListProducts)
	api.GET("/products/:id", s.catalogHandler.GetProduct)

	auth := middleware.Auth(cfg.Auth.JWTSecret)

	// -------- cart --------
	cart := api.Group("/cart", auth)
	cart.GET("", s.cartHandler.GetCart)
	cart.POST("/items", s.cartHandler.AddItem)
	cart.PATCH("/items/:id", s.cartHandler.UpdateItem)
	cart.DELETE("/items/:id", s.cartHandler.RemoveItem)

	// -------- orders --------
	orders := api.Group("/orders", auth)
	orders.GET("", s.orderHandler.ListOrders)
	orders.GET("/:id", s.orderHandler.GetOrder)
	orders.POST("/checkout", s.orderHandler.Checkout)
	orders.POST("/:id/upload-proof", s.orderHandler.UploadProof)

	// -------- operator --------
	admin := api.Group("/admin", auth, middleware.RequireRole(cfg.Auth.StaffRole))
	admin.GET("/proofs", s.adminHandler.ListProofs)
	admin.POST("/proofs/verify", s.adminHandler.VerifyProofs)
	admin.PATCH("/orders/:id/status", s.adminHandler.UpdateOrderStatus)
}

// errorHandler translates the error taxonomy into HTTP statuses. Anything
// unrecognized is an opaque 500 with no internals leaked.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = c.JSON(httpErr.Code, map[string]interface{}{"detail": httpErr.Message})
		return
	}

	var (
		validation   *apperr.ValidationError
		insufficient *apperr.InsufficientStockError
	)
	switch {
	case errors.As(err, &validation):
		_ = c.JSON(http.StatusBadRequest, map[string]string{"detail": validation.Detail})
	case errors.Is(err, apperr.ErrEmptyCart):
		_ = c.JSON(http.StatusBadRequest, map[string]string{"detail": "Cart is empty"})
	case errors.As(err, &insufficient):
		_ = c.JSON(http.StatusBadRequest, map[string]string{"detail": insufficient.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		_ = c.JSON(http.StatusNotFound, map[string]string{"detail": "Not found"})
	case errors.Is(err, apperr.ErrProofExists):
		_ = c.JSON(http.StatusConflict, map[string]string{"detail": "proof already uploaded"})
	case errors.Is(err, apperr.ErrInvalidTransition):
		_ = c.JSON(http.StatusConflict, map[string]string{"detail": "status transition not allowed"})
	default:
		c.Logger().Error(err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"detail": "internal error"})
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
