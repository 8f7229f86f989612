package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bookcourier/backend/middleware"
	"github.com/bookcourier/backend/models"
	"github.com/bookcourier/backend/store"
	"github.com/go-chi/chi/v5"
)

type ReviewsHandler struct {
	DB *store.DB
}

type CreateReviewRequest struct {
	BookID        string `json:"bookId" validate:"required"`
	ReviewerName  string `json:"reviewerName" validate:"required"`
	ReviewerPhoto string `json:"reviewerPhoto"`
	Rating        int    `json:"rating" validate:"min=1,max=5"`
	Comment       string `json:"comment"`
}

// Create inserts a review stamped with the verified caller and the current
// time. Reviews are never mutated or deleted.
func (h *ReviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.EmailFromContext(r.Context())
	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, `{"error":"bookId, reviewerName and a 1-5 rating required"}`, http.StatusBadRequest)
		return
	}
	review := &models.Review{
		BookID:        req.BookID,
		ReviewerName:  req.ReviewerName,
		ReviewerEmail: email,
		ReviewerPhoto: req.ReviewerPhoto,
		Rating:        req.Rating,
		Comment:       req.Comment,
		ReviewedAt:    time.Now(),
	}
	id, err := h.DB.InsertReview(r.Context(), review)
	if err != nil {
		http.Error(w, `{"error":"failed to create review"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, InsertResultResponse{InsertedID: id.Hex()})
}

// ForBook returns the 5 most recent reviews for a book, newest first.
func (h *ReviewsHandler) ForBook(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")
	reviews, err := h.DB.LatestReviewsForBook(r.Context(), bookID)
	if err != nil {
		http.Error(w, `{"error":"failed to list reviews"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}
