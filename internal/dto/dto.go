package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---- cart ----

type AddCartItemRequest struct {
	ProductID uint `json:"product_id"`
	Qty       uint `json:"qty"`
}

type UpdateCartItemRequest struct {
	Qty int `json:"qty"`
}

type CartProduct struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Image           string          `json:"image,omitempty"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent uint            `json:"discount_percent"`
	FinalPrice      decimal.Decimal `json:"final_price"`
	Unit            string          `json:"unit,omitempty"`
	IsInStock       bool            `json:"is_in_stock"`
}

type CartItemView struct {
	ID        uint            `json:"id"`
	Product   CartProduct     `json:"product"`
	Qty       uint            `json:"qty"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CartView struct {
	ID    uint            `json:"id"`
	Items []CartItemView  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// ---- orders ----

type CheckoutRequest struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Note    string `json:"note"`
}

type OrderItemView struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"product"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Qty         uint            `json:"qty"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type OrderSummary struct {
	ID         uint            `json:"id"`
	OrderCode  string          `json:"order_code"`
	Status     string          `json:"status"`
	Total      decimal.Decimal `json:"total"`
	ItemsCount int             `json:"items_count"`
	CreatedAt  time.Time       `json:"created_at"`
}

type OrderDetail struct {
	ID           uint            `json:"id"`
	OrderCode    string          `json:"order_code"`
	Status       string          `json:"status"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	Note         string          `json:"note,omitempty"`
	Total        decimal.Decimal `json:"total"`
	ItemsCount   int             `json:"items_count"`
	Items        []OrderItemView `json:"items"`
	PaymentProof *ProofView      `json:"payment_proof,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// ---- payment proofs ----

type ProofView struct {
	ID        uint      `json:"id"`
	OrderID   uint      `json:"order_id"`
	OrderCode string    `json:"order_code,omitempty"`
	Image     string    `json:"image"`
	Note      string    `json:"note,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type VerifyProofsRequest struct {
	ProofIDs []uint `json:"proof_ids"`
	Decision string `json:"decision"` // approve | reject
}

type VerifyProofsResponse struct {
	Updated int `json:"updated"`
}

// ---- catalog ----

type CategoryView struct {
	ID            uint           `json:"id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	Image         string         `json:"image,omitempty"`
	ParentID      *uint          `json:"parent,omitempty"`
	Subcategories []CategoryView `json:"subcategories,omitempty"`
}

type ProductView struct {
	ID              uint            `json:"id"`
	CategoryID      uint            `json:"category_id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	SKU             string          `json:"sku,omitempty"`
	Image           string          `json:"image,omitempty"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent uint            `json:"discount_percent"`
	FinalPrice      decimal.Decimal `json:"final_price"`
	Stock           uint            `json:"stock"`
	IsInStock       bool            `json:"is_in_stock"`
	IsNew           bool            `json:"is_new"`
	IsFeatured      bool            `json:"is_featured"`
	Description     string          `json:"description,omitempty"`
	Unit            string          `json:"unit,omitempty"`
}
