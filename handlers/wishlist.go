package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bookcourier/backend/middleware"
	"github.com/bookcourier/backend/models"
	"github.com/bookcourier/backend/store"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type WishlistHandler struct {
	DB *store.DB
}

type AddWishlistRequest struct {
	BookID   string `json:"bookId" validate:"required"`
	BookName string `json:"bookName"`
	Photo    string `json:"photo"`
}

// Add wishes a book for the caller. Wishing the same book twice is a no-op
// that reports the entry already exists.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.EmailFromContext(r.Context())
	var req AddWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, `{"error":"bookId required"}`, http.StatusBadRequest)
		return
	}
	exists, err := h.DB.WishlistEntryExists(r.Context(), email, req.BookID)
	if err != nil {
		http.Error(w, `{"error":"failed to add to wishlist"}`, http.StatusInternalServerError)
		return
	}
	if exists {
		writeMessage(w, "This book is already in your wishlist!")
		return
	}
	entry := &models.WishlistEntry{
		UserEmail: email,
		BookID:    req.BookID,
		BookName:  req.BookName,
		Photo:     req.Photo,
	}
	id, err := h.DB.InsertWishlistEntry(r.Context(), entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			writeMessage(w, "This book is already in your wishlist!")
			return
		}
		http.Error(w, `{"error":"failed to add to wishlist"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, InsertResultResponse{InsertedID: id.Hex()})
}

// Remove deletes a wishlist entry by id.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid wishlist id"}`, http.StatusBadRequest)
		return
	}
	deleted, err := h.DB.DeleteWishlistEntry(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"failed to remove from wishlist"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResultResponse{DeletedCount: deleted})
}

// Mine lists the wishlist for the path email, which must match the verified
// principal.
func (h *WishlistHandler) Mine(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	principal, _ := middleware.EmailFromContext(r.Context())
	if email != principal {
		http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
		return
	}
	entries, err := h.DB.WishlistByEmail(r.Context(), email)
	if err != nil {
		http.Error(w, `{"error":"failed to list wishlist"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
