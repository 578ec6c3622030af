package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrProofExists       = errors.New("payment proof already uploaded")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// ValidationError covers missing or out-of-range request fields, detected
// before any mutating step.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

func Validation(format string, args ...interface{}) error {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}

// InsufficientStockError names the product that failed the stock check so
// the buyer knows which line to fix. Raised advisorily on cart mutation and
// authoritatively under lock at checkout.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock: %s", e.ProductName)
}

// TransactionError wraps unexpected store failures inside an atomic unit of
// work. By the time a caller sees one, every write of that unit has been
// rolled back.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}
