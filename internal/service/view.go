package service

import (
	"github.com/shopspring/decimal"

	"khmer-shop-backend/internal/dto"
	"khmer-shop-backend/internal/model"
)

func newCartView(cart *model.Cart, items []*model.CartItem) *dto.CartView {
	view := &dto.CartView{
		ID:    cart.ID,
		Items: make([]dto.CartItemView, 0, len(items)),
		Total: decimal.Zero,
	}

	for _, it := range items {
		final := it.Product.FinalPrice()
		lineTotal := final.Mul(decimal.NewFromInt(int64(it.Qty)))

		view.Items = append(view.Items, dto.CartItemView{
			ID: it.ID,
			Product: dto.CartProduct{
				ID:              it.Product.ID,
				Name:            it.Product.Name,
				Image:           it.Product.Image,
				Price:           it.Product.Price,
				DiscountPercent: it.Product.DiscountPercent,
				FinalPrice:      final,
				Unit:            it.Product.Unit,
				IsInStock:       it.Product.InStock(),
			},
			Qty:       it.Qty,
			LineTotal: lineTotal,
		})
		view.Total = view.Total.Add(lineTotal)
	}

	return view
}

func newOrderSummary(order *model.Order) *dto.OrderSummary {
	return &dto.OrderSummary{
		ID:         order.ID,
		OrderCode:  order.OrderCode,
		Status:     string(order.Status),
		Total:      order.Total,
		ItemsCount: len(order.Items),
		CreatedAt:  order.CreatedAt,
	}
}

func newOrderDetail(order *model.Order) *dto.OrderDetail {
	detail := &dto.OrderDetail{
		ID:         order.ID,
		OrderCode:  order.OrderCode,
		Status:     string(order.Status),
		Phone:      order.Phone,
		Address:    order.Address,
		Note:       order.Note,
		Total:      order.Total,
		ItemsCount: len(order.Items),
		Items:      make([]dto.OrderItemView, 0, len(order.Items)),
		CreatedAt:  order.CreatedAt,
	}

	for _, it := range order.Items {
		detail.Items = append(detail.Items, dto.OrderItemView{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Qty:         it.Qty,
			LineTotal:   it.LineTotal(),
		})
	}

	if order.PaymentProof != nil {
		detail.PaymentProof = newProofView(order.PaymentProof)
	}

	return detail
}

func newProofView(proof *model.PaymentProof) *dto.ProofView {
	return &dto.ProofView{
		ID:        proof.ID,
		OrderID:   proof.OrderID,
		OrderCode: proof.Order.OrderCode,
		Image:     proof.Image,
		Note:      proof.Note,
		Status:    string(proof.Status),
		CreatedAt: proof.CreatedAt,
	}
}

func newCategoryView(category *model.Category) *dto.CategoryView {
	view := &dto.CategoryView{
		ID:       category.ID,
		Name:     category.Name,
		Slug:     category.Slug,
		Image:    category.Image,
		ParentID: category.ParentID,
	}

	for i := range category.Subcategories {
		view.Subcategories = append(view.Subcategories, *newCategoryView(&category.Subcategories[i]))
	}

	return view
}

func newProductView(product *model.Product) *dto.ProductView {
	return &dto.ProductView{
		ID:              product.ID,
		CategoryID:      product.CategoryID,
		Name:            product.Name,
		Slug:            product.Slug,
		SKU:             product.SKU,
		Image:           product.Image,
		Price:           product.Price,
		DiscountPercent: product.DiscountPercent,
		FinalPrice:      product.FinalPrice(),
		Stock:           product.Stock,
		IsInStock:       product.InStock(),
		IsNew:           product.IsNew,
		IsFeatured:      product.IsFeatured,
		Description:     product.Description,
		Unit:            product.Unit,
	}
}
