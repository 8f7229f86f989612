package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/bookcourier/backend/middleware"
	"github.com/bookcourier/backend/models"
	"github.com/bookcourier/backend/store"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UsersHandler struct {
	DB *store.DB
}

type RegisterRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
	Photo string `json:"photo"`
	Role  string `json:"role" validate:"omitempty,oneof=user librarian admin"`
}

// Register creates a user on first registration. Registering an existing
// email is a no-op that reports the user already exists; identity itself is
// delegated to the external verifier, so no credentials are stored.
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := validate.Struct(req); err != nil {
		http.Error(w, `{"error":"email and name required"}`, http.StatusBadRequest)
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	existing, err := h.DB.UserByEmail(r.Context(), req.Email)
	if err != nil {
		http.Error(w, `{"error":"failed to register"}`, http.StatusInternalServerError)
		return
	}
	if existing != nil {
		writeMessage(w, "User already exists")
		return
	}
	user := &models.User{
		Email:     req.Email,
		Name:      req.Name,
		Photo:     req.Photo,
		Role:      req.Role,
		CreatedAt: time.Now(),
	}
	id, err := h.DB.CreateUser(r.Context(), user)
	if err != nil {
		// Lost the race against a concurrent registration; same outcome.
		if mongo.IsDuplicateKeyError(err) {
			writeMessage(w, "User already exists")
			return
		}
		http.Error(w, `{"error":"failed to register"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, InsertResultResponse{InsertedID: id.Hex()})
}

// List returns all users except the caller's own record. Admin only.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.EmailFromContext(r.Context())
	users, err := h.DB.ListUsersExcept(r.Context(), email)
	if err != nil {
		http.Error(w, `{"error":"failed to list users"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

type RoleResponse struct {
	Role *string `json:"role"`
}

// Role returns the caller's stored role, or null when the principal has no
// user document yet.
func (h *UsersHandler) Role(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.EmailFromContext(r.Context())
	user, err := h.DB.UserByEmail(r.Context(), email)
	if err != nil {
		http.Error(w, `{"error":"failed to read role"}`, http.StatusInternalServerError)
		return
	}
	var resp RoleResponse
	if user != nil {
		resp.Role = &user.Role
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetByEmail returns the full profile for an email. Any verified caller may
// read any profile.
func (h *UsersHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	user, err := h.DB.UserByEmail(r.Context(), email)
	if err != nil {
		http.Error(w, `{"error":"failed to read user"}`, http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, `{"error":"user not found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required"`
	Photo string `json:"photo"`
}

// UpdateProfile sets name and photo on the caller's own record. The path
// email must match the verified principal.
func (h *UsersHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	principal, _ := middleware.EmailFromContext(r.Context())
	if email != principal {
		http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
		return
	}
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, `{"error":"name required"}`, http.StatusBadRequest)
		return
	}
	res, err := h.DB.UpdateProfile(r.Context(), email, req.Name, req.Photo)
	if err != nil {
		http.Error(w, `{"error":"failed to update profile"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, UpdateResultResponse{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	})
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user librarian admin"`
}

// UpdateRole sets a user's role by document id. Admin only.
func (h *UsersHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid user id"}`, http.StatusBadRequest)
		return
	}
	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, `{"error":"role must be user, librarian or admin"}`, http.StatusBadRequest)
		return
	}
	res, err := h.DB.UpdateUserRole(r.Context(), id, req.Role)
	if err != nil {
		http.Error(w, `{"error":"failed to update role"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, UpdateResultResponse{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	})
}
