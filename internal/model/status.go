package model

type OrderStatus string

const (
	OrderPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderPaid           OrderStatus = "PAID"
	OrderProcessing     OrderStatus = "PROCESSING"
	OrderShipped        OrderStatus = "SHIPPED"
	OrderDelivered      OrderStatus = "DELIVERED"
	OrderRejected       OrderStatus = "REJECTED"
	// OrderCanceled exists as a state but nothing transitions into it.
	OrderCanceled OrderStatus = "CANCELED"
)

// orderTransitions is the closed set of legal order status moves. Anything
// absent here is a caller error, not an edit to apply.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPendingPayment: {OrderPaid, OrderRejected},
	OrderPaid:           {OrderProcessing},
	OrderProcessing:     {OrderShipped},
	OrderShipped:        {OrderDelivered},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPendingPayment, OrderPaid, OrderProcessing,
		OrderShipped, OrderDelivered, OrderRejected, OrderCanceled:
		return true
	}
	return false
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition leaves this status.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

type ProofStatus string

const (
	ProofPending  ProofStatus = "PENDING"
	ProofApproved ProofStatus = "APPROVED"
	ProofRejected ProofStatus = "REJECTED"
)

// OrderStatusFor maps a proof decision onto the order status it cascades to.
func (s ProofStatus) OrderStatusFor() (OrderStatus, bool) {
	switch s {
	case ProofApproved:
		return OrderPaid, true
	case ProofRejected:
		return OrderRejected, true
	}
	return "", false
}
