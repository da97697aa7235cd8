package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rl1809/shop-api/internal/core/domain"
	"github.com/rl1809/shop-api/internal/core/service"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type placeOrderRequest struct {
	UserID int64                     `json:"userId"`
	Items  []domain.OrderItemRequest `json:"items"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == 0 || len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "User ID and items are required")
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), req.UserID, req.Items)
	if err != nil {
		if isCallerError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// isCallerError reports whether the placement failure is correctable by the
// caller, as opposed to an infrastructure failure.
func isCallerError(err error) bool {
	var productNotFound *domain.ProductNotFoundError
	var userNotFound *domain.UserNotFoundError
	var insufficientStock *domain.InsufficientStockError
	return errors.As(err, &productNotFound) ||
		errors.As(err, &userNotFound) ||
		errors.As(err, &insufficientStock) ||
		errors.Is(err, service.ErrNoItems) ||
		errors.Is(err, service.ErrInvalidQuantity)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	order, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// ListByUser serves GET /api/users/{id}/orders.
func (h *OrderHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlID(w, r)
	if !ok {
		return
	}

	orders, err := h.orders.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, orders)
}
