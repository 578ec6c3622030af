package model

import (
	"time"

	"github.com/shopspring/decimal"

	"khmer-shop-backend/internal/pricing"
)

type Category struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:100;not null"`
	Slug     string `gorm:"size:100;uniqueIndex;not null"`
	Image    string `gorm:"size:255"`
	ParentID *uint  `gorm:"index"`

	Subcategories []Category `gorm:"foreignKey:ParentID"`
}

type Product struct {
	ID         uint   `gorm:"primaryKey"`
	CategoryID uint   `gorm:"index;not null"`
	Name       string `gorm:"size:200;not null"`
	Slug       string `gorm:"size:200;uniqueIndex;not null"`
	SKU        string `gorm:"size:50;index"`
	Image      string `gorm:"size:255"`

	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountPercent uint            `gorm:"not null;default:0"`
	Stock           uint            `gorm:"not null;default:0"`

	IsNew      bool `gorm:"not null;default:false"`
	IsFeatured bool `gorm:"not null;default:false"`
	IsActive   bool `gorm:"not null;default:true"`

	Description string `gorm:"type:text"`
	Unit        string `gorm:"size:50"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FinalPrice is the unit price after the flat percentage discount.
func (p *Product) FinalPrice() decimal.Decimal {
	return pricing.FinalPrice(p.Price, p.DiscountPercent)
}

// InStock is derived from the live stock count at read time; it is never
// persisted, so it cannot drift from Stock.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// Cart is created lazily, one per buyer, and lives for the buyer's lifetime.
type Cart struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:64;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []CartItem `gorm:"foreignKey:CartID"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey"`
	CartID    uint `gorm:"uniqueIndex:uniq_cart_product;not null"`
	ProductID uint `gorm:"uniqueIndex:uniq_cart_product;not null"`
	Qty       uint `gorm:"not null;default:1"`

	Product Product `gorm:"foreignKey:ProductID"`
}

// Order is immutable once created except for Status; Total is written
// exactly once, at the end of checkout.
type Order struct {
	ID     uint   `gorm:"primaryKey"`
	UserID string `gorm:"size:64;index;not null"`

	Phone   string `gorm:"size:20;not null"`
	Address string `gorm:"type:text;not null"`
	Note    string `gorm:"type:text"`

	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	OrderCode string          `gorm:"size:30;uniqueIndex;not null"`
	Status    OrderStatus     `gorm:"size:20;index;not null"`
	CreatedAt time.Time

	Items        []OrderItem   `gorm:"foreignKey:OrderID"`
	PaymentProof *PaymentProof `gorm:"foreignKey:OrderID"`
}

// OrderItem snapshots the product name and final price at order time so
// later catalog edits never alter historical orders.
type OrderItem struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"index;not null"`
	ProductID uint `gorm:"index;not null"`

	ProductName string          `gorm:"size:200;not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Qty         uint            `gorm:"not null;default:1"`
}

func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// PaymentProof is buyer-submitted payment evidence, at most one per order.
type PaymentProof struct {
	ID        uint        `gorm:"primaryKey"`
	OrderID   uint        `gorm:"uniqueIndex;not null"`
	Image     string      `gorm:"size:255;not null"`
	Note      string      `gorm:"size:255"`
	Status    ProofStatus `gorm:"size:20;index;not null"`
	CreatedAt time.Time

	Order Order `gorm:"foreignKey:OrderID"`
}
