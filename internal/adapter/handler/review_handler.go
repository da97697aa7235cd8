package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rl1809/shop-api/internal/core/domain"
	"github.com/rl1809/shop-api/internal/core/service"
)

type ReviewHandler struct {
	reviews *service.ReviewService
}

func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type createReviewRequest struct {
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	UserID    int64  `json:"userId"`
	ProductID int64  `json:"productId"`
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == 0 || req.ProductID == 0 {
		writeError(w, http.StatusBadRequest, "User ID and product ID are required")
		return
	}

	review, err := h.reviews.Create(r.Context(), req.UserID, req.ProductID, req.Rating, req.Comment)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

// ListByProduct serves GET /api/products/{id}/reviews.
func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := urlID(w, r)
	if !ok {
		return
	}

	reviews, err := h.reviews.ListByProduct(r.Context(), productID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := h.reviews.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Review not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
