package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	User      *UserSummary    `json:"user,omitempty"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	Items     []OrderItem     `json:"items"`
	CreatedAt time.Time       `json:"createdAt"`
}

// OrderItem carries the unit price captured at order time; later price
// changes on the product never affect it.
type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"orderId"`
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Product   *Product        `json:"product,omitempty"`
}

// OrderItemRequest is one requested line of an order before validation.
type OrderItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}
