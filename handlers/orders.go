package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bookcourier/backend/middleware"
	"github.com/bookcourier/backend/models"
	"github.com/bookcourier/backend/store"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultOrdersPageSize = 10

type OrdersHandler struct {
	DB *store.DB
}

type CreateOrderRequest struct {
	BookID   string  `json:"bookId" validate:"required"`
	BookName string  `json:"bookName"`
	Price    float64 `json:"price" validate:"gte=0"`
	Owner    string  `json:"owner" validate:"required,email"`
	UserName string  `json:"userName"`
}

// Create inserts an order for the calling buyer. Order state is forced to
// pending/unpaid with no transaction id regardless of what the client sent.
func (h *OrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.EmailFromContext(r.Context())
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, `{"error":"bookId and owner required"}`, http.StatusBadRequest)
		return
	}
	order := &models.Order{
		UserEmail:     email,
		UserName:      req.UserName,
		BookID:        req.BookID,
		BookName:      req.BookName,
		Price:         req.Price,
		Owner:         req.Owner,
		OrderStatus:   models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
		TransactionID: nil,
		CreatedAt:     time.Now(),
	}
	id, err := h.DB.InsertOrder(r.Context(), order)
	if err != nil {
		http.Error(w, `{"error":"failed to create order"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, InsertResultResponse{InsertedID: id.Hex()})
}

type OwnerOrdersResponse struct {
	Result     []models.Order `json:"result"`
	TotalPages int64          `json:"totalPages"`
}

// Owner pages through the orders placed against the calling librarian's
// books.
func (h *OrdersHandler) Owner(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.EmailFromContext(r.Context())
	q := r.URL.Query()
	page := parsePositive(q.Get("page"), 1)
	limit := parsePositive(q.Get("limit"), defaultOrdersPageSize)
	orders, totalPages, err := h.DB.OrdersByOwner(r.Context(), email, page, limit)
	if err != nil {
		http.Error(w, `{"error":"failed to list orders"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, OwnerOrdersResponse{Result: orders, TotalPages: totalPages})
}

// Mine lists the caller's own orders, newest first.
func (h *OrdersHandler) Mine(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.EmailFromContext(r.Context())
	orders, err := h.DB.OrdersByUser(r.Context(), email)
	if err != nil {
		http.Error(w, `{"error":"failed to list orders"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// Cancel transitions a pending order to cancelled. A second cancel, or a
// cancel after the order left pending, matches zero documents; that is not an
// error and the caller inspects matchedCount.
func (h *OrdersHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid order id"}`, http.StatusBadRequest)
		return
	}
	res, err := h.DB.CancelOrder(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"failed to cancel order"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, UpdateResultResponse{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	})
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus sets the delivery status unconditionally. Librarian only; no
// transition validation.
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid order id"}`, http.StatusBadRequest)
		return
	}
	var req UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, `{"error":"status required"}`, http.StatusBadRequest)
		return
	}
	res, err := h.DB.UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		http.Error(w, `{"error":"failed to update order"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, UpdateResultResponse{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	})
}

// Stats counts orders per calendar month, ascending by month.
func (h *OrdersHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.DB.MonthlyOrderStats(r.Context())
	if err != nil {
		http.Error(w, `{"error":"failed to aggregate orders"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
