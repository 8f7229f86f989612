package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/bookcourier/backend/middleware"
	"github.com/bookcourier/backend/models"
	"github.com/bookcourier/backend/service"
	"github.com/bookcourier/backend/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PaymentsHandler bridges orders to the hosted checkout flow and reconciles
// completed sessions back into the order and invoice collections.
type PaymentsHandler struct {
	DB         *store.DB
	Checkout   service.CheckoutProvider
	Mailer     *service.Mailer // optional; nil disables invoice mail
	SiteDomain string
}

type CreateCheckoutSessionRequest struct {
	OrderID string `json:"orderId" validate:"required"`
}

type CreateCheckoutSessionResponse struct {
	URL string `json:"url"`
}

// CreateCheckoutSession builds a hosted payment session for an order and
// returns its redirect URL. No local state changes at this step.
func (h *PaymentsHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req CreateCheckoutSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, `{"error":"orderId required"}`, http.StatusBadRequest)
		return
	}
	id, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		http.Error(w, `{"error":"order not found"}`, http.StatusNotFound)
		return
	}
	order, err := h.DB.OrderByID(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"failed to read order"}`, http.StatusInternalServerError)
		return
	}
	if order == nil {
		http.Error(w, `{"error":"order not found"}`, http.StatusNotFound)
		return
	}
	item := service.CheckoutItem{
		OrderID:       order.ID.Hex(),
		BookID:        order.BookID,
		UserName:      order.UserName,
		BookName:      order.BookName,
		CustomerEmail: order.UserEmail,
		Price:         order.Price,
	}
	successURL := h.SiteDomain + "/payment-success?session_id={CHECKOUT_SESSION_ID}"
	cancelURL := h.SiteDomain + "/my-orders"
	sess, err := h.Checkout.CreateSession(r.Context(), item, successURL, cancelURL)
	if err != nil {
		log.Printf("create checkout session: %v", err)
		http.Error(w, `{"error":"failed to create checkout session"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, CreateCheckoutSessionResponse{URL: sess.URL})
}

type PaymentSuccessRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

type PaymentSuccessResponse struct {
	Invoice       *models.Invoice      `json:"invoice"`
	OrderUpdate   UpdateResultResponse `json:"orderUpdate"`
	TransactionID string               `json:"transactionId"`
}

// PaymentSuccess exchanges a completed session id for its payment details,
// writes the invoice exactly once per transaction id, then marks the order
// paid. The invoice insert and order update are two independent operations;
// a crash between them is not compensated.
func (h *PaymentsHandler) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	var req PaymentSuccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, `{"error":"sessionId required"}`, http.StatusBadRequest)
		return
	}
	details, err := h.Checkout.SessionDetails(r.Context(), req.SessionID)
	if err != nil {
		log.Printf("retrieve checkout session: %v", err)
		http.Error(w, `{"error":"failed to retrieve checkout session"}`, http.StatusInternalServerError)
		return
	}
	if !details.Paid || details.TransactionID == "" {
		http.Error(w, `{"error":"session is not paid"}`, http.StatusBadRequest)
		return
	}

	invoice, err := h.DB.InvoiceByTransactionID(r.Context(), details.TransactionID)
	if err != nil {
		http.Error(w, `{"error":"failed to record payment"}`, http.StatusInternalServerError)
		return
	}
	if invoice == nil {
		invoice = &models.Invoice{
			TransactionID: details.TransactionID,
			OrderID:       details.Metadata["orderId"],
			BookID:        details.Metadata["bookId"],
			BookName:      details.Metadata["bookName"],
			BuyerEmail:    details.CustomerEmail,
			BuyerName:     buyerName(details),
			Price:         float64(details.AmountTotal) / 100,
			PaidAt:        time.Now(),
		}
		if _, err := h.DB.InsertInvoice(r.Context(), invoice); err != nil {
			// A concurrent confirmation won the insert; reuse its invoice.
			if !mongo.IsDuplicateKeyError(err) {
				http.Error(w, `{"error":"failed to record payment"}`, http.StatusInternalServerError)
				return
			}
			invoice, err = h.DB.InvoiceByTransactionID(r.Context(), details.TransactionID)
			if err != nil {
				http.Error(w, `{"error":"failed to record payment"}`, http.StatusInternalServerError)
				return
			}
		} else if h.Mailer != nil {
			if err := h.Mailer.SendInvoice(invoice); err != nil {
				log.Printf("send invoice mail: %v", err)
			}
		}
	}

	resp := PaymentSuccessResponse{Invoice: invoice, TransactionID: details.TransactionID}
	orderID, err := primitive.ObjectIDFromHex(details.Metadata["orderId"])
	if err != nil {
		http.Error(w, `{"error":"session has no valid order"}`, http.StatusInternalServerError)
		return
	}
	res, err := h.DB.MarkOrderPaid(r.Context(), orderID, details.TransactionID)
	if err != nil {
		http.Error(w, `{"error":"failed to update order"}`, http.StatusInternalServerError)
		return
	}
	resp.OrderUpdate = UpdateResultResponse{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}
	writeJSON(w, http.StatusOK, resp)
}

func buyerName(details *service.SessionDetails) string {
	if details.CustomerName != "" {
		return details.CustomerName
	}
	return details.Metadata["userName"]
}

// MyInvoices lists the caller's invoices, newest first.
func (h *PaymentsHandler) MyInvoices(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.EmailFromContext(r.Context())
	invoices, err := h.DB.InvoicesByBuyer(r.Context(), email)
	if err != nil {
		http.Error(w, `{"error":"failed to list invoices"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}
