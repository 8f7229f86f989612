package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/bookcourier/backend/middleware"
	"github.com/bookcourier/backend/models"
	"github.com/bookcourier/backend/store"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	latestBooksLimit  = 8
	defaultSearchPage = 1
	defaultSearchSize = 9
)

type BooksHandler struct {
	DB *store.DB
}

type CreateBookRequest struct {
	BookName    string  `json:"bookName" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Status      string  `json:"status" validate:"omitempty,oneof=draft published"`
	Photo       string  `json:"photo"`
	Description string  `json:"description"`
}

// Create inserts a book stamped with the calling librarian and the current
// time. Status defaults to draft when the caller omits it.
func (h *BooksHandler) Create(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.EmailFromContext(r.Context())
	var req CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, `{"error":"bookName and category required, price must be non-negative"}`, http.StatusBadRequest)
		return
	}
	if req.Status == "" {
		req.Status = models.BookStatusDraft
	}
	book := &models.Book{
		BookName:    req.BookName,
		Category:    req.Category,
		Price:       req.Price,
		Status:      req.Status,
		Photo:       req.Photo,
		Description: req.Description,
		CreatedBy:   email,
		CreatedAt:   time.Now(),
	}
	id, err := h.DB.InsertBook(r.Context(), book)
	if err != nil {
		http.Error(w, `{"error":"failed to create book"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, InsertResultResponse{InsertedID: id.Hex()})
}

type SearchBooksResponse struct {
	Books      []models.Book `json:"books"`
	TotalPages int64         `json:"totalPages"`
}

// Search is the public storefront listing: published books matching the
// search term case-insensitively, optional category filter, optional price
// sort, paginated.
func (h *BooksHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parsePositive(q.Get("page"), defaultSearchPage)
	limit := parsePositive(q.Get("limit"), defaultSearchSize)
	books, totalPages, err := h.DB.SearchBooks(r.Context(), q.Get("search"), q.Get("filter"), q.Get("sort"), page, limit)
	if err != nil {
		http.Error(w, `{"error":"failed to search books"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, SearchBooksResponse{Books: books, TotalPages: totalPages})
}

func parsePositive(s string, fallback int64) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Related returns up to 4 other published books in the same category as the
// given book, newest first. A malformed or unknown id is a 404.
func (h *BooksHandler) Related(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"book not found"}`, http.StatusNotFound)
		return
	}
	book, err := h.DB.BookByID(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"failed to read book"}`, http.StatusInternalServerError)
		return
	}
	if book == nil {
		http.Error(w, `{"error":"book not found"}`, http.StatusNotFound)
		return
	}
	related, err := h.DB.RelatedBooks(r.Context(), id, book.Category)
	if err != nil {
		http.Error(w, `{"error":"failed to read related books"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, related)
}

// All is the unfiltered catalog listing. Admin only.
func (h *BooksHandler) All(w http.ResponseWriter, r *http.Request) {
	books, err := h.DB.AllBooks(r.Context())
	if err != nil {
		http.Error(w, `{"error":"failed to list books"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

// Mine lists the books the calling librarian published.
func (h *BooksHandler) Mine(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.EmailFromContext(r.Context())
	books, err := h.DB.BooksByCreator(r.Context(), email)
	if err != nil {
		http.Error(w, `{"error":"failed to list books"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus sets a book's status by id. Reachable by any verified user.
func (h *BooksHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid book id"}`, http.StatusBadRequest)
		return
	}
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, `{"error":"status required"}`, http.StatusBadRequest)
		return
	}
	res, err := h.DB.UpdateBookStatus(r.Context(), id, req.Status)
	if err != nil {
		http.Error(w, `{"error":"failed to update status"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, UpdateResultResponse{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	})
}

// UpdateContent merges arbitrary body fields into a book the calling
// librarian owns. The identity, ownership and timestamp fields are stripped
// before the merge.
func (h *BooksHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.EmailFromContext(r.Context())
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid book id"}`, http.StatusBadRequest)
		return
	}
	book, err := h.DB.BookByID(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"failed to read book"}`, http.StatusInternalServerError)
		return
	}
	if book == nil {
		http.Error(w, `{"error":"book not found"}`, http.StatusNotFound)
		return
	}
	if book.CreatedBy != email {
		http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
		return
	}
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	delete(fields, "_id")
	delete(fields, "id")
	delete(fields, "createdBy")
	delete(fields, "createdAt")
	if len(fields) == 0 {
		http.Error(w, `{"error":"no fields to update"}`, http.StatusBadRequest)
		return
	}
	res, err := h.DB.UpdateBookFields(r.Context(), id, bson.M(fields))
	if err != nil {
		http.Error(w, `{"error":"failed to update book"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, UpdateResultResponse{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	})
}

// Get is the public single-book lookup.
func (h *BooksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid book id"}`, http.StatusBadRequest)
		return
	}
	book, err := h.DB.BookByID(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"failed to read book"}`, http.StatusInternalServerError)
		return
	}
	if book == nil {
		http.Error(w, `{"error":"book not found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

// Latest returns the 8 most recently created books regardless of status.
func (h *BooksHandler) Latest(w http.ResponseWriter, r *http.Request) {
	books, err := h.DB.LatestBooks(r.Context(), latestBooksLimit)
	if err != nil {
		http.Error(w, `{"error":"failed to list books"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

type DeleteResultResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// Delete removes the book and cascades to every order referencing it. Admin
// only. The response reflects the book deletion only.
func (h *BooksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid book id"}`, http.StatusBadRequest)
		return
	}
	deleted, err := h.DB.DeleteBookCascade(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"failed to delete book"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResultResponse{DeletedCount: deleted})
}
