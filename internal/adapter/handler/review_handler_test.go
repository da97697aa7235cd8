package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReviewAndListByProduct(t *testing.T) {
	srv := newTestServer(t)

	userID := createUser(t, srv, "Alice", "alice@example.com")
	productID := createProduct(t, srv, "Keyboard", "250.50", 10)

	rec := doRequest(t, srv, http.MethodPost, "/api/reviews", map[string]any{
		"rating": 5, "comment": "Great keys", "userId": userID, "productId": productID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	review := decodeBody(t, rec)
	assert.Equal(t, float64(5), review["rating"])
	assert.Equal(t, "Great keys", review["comment"])

	rec = doRequest(t, srv, http.MethodGet, "/api/products/1/reviews", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var reviews []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviews))
	require.Len(t, reviews, 1)

	user, ok := reviews[0]["user"].(map[string]any)
	require.True(t, ok, "expected nested user summary")
	assert.Equal(t, "Alice", user["name"])
}

func TestCreateReview_MissingIDs(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/reviews", map[string]any{
		"rating": 5, "comment": "No target",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User ID and product ID are required", decodeBody(t, rec)["error"])
}

func TestDeleteReview(t *testing.T) {
	srv := newTestServer(t)

	userID := createUser(t, srv, "Alice", "alice@example.com")
	productID := createProduct(t, srv, "Keyboard", "250.50", 10)

	rec := doRequest(t, srv, http.MethodPost, "/api/reviews", map[string]any{
		"rating": 4, "userId": userID, "productId": productID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, srv, http.MethodDelete, "/api/reviews/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, srv, http.MethodDelete, "/api/reviews/1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Review not found", decodeBody(t, rec)["error"])
}
