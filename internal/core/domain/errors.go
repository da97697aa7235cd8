package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already exists")
)

// ProductNotFoundError reports a requested product that does not exist.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product with ID %d not found", e.ProductID)
}

func (e *ProductNotFoundError) Is(target error) bool { return target == ErrNotFound }

// UserNotFoundError reports an order attributed to a user that does not exist.
type UserNotFoundError struct {
	UserID int64
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("User with ID %d not found", e.UserID)
}

func (e *UserNotFoundError) Is(target error) bool { return target == ErrNotFound }

// InsufficientStockError reports a requested quantity exceeding available stock.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for product %s", e.ProductName)
}
