package handlers

import (
	"net/http"
	"strings"

	"github.com/bookcourier/backend/service"
)

type UploadHandler struct {
	S3       *service.S3Service // nil when object storage is not configured
	MaxBytes int64
}

type UploadResponse struct {
	URL string `json:"url"`
}

// BookCover accepts a multipart image and stores it for use as a book photo.
// Librarian only.
func (h *UploadHandler) BookCover(w http.ResponseWriter, r *http.Request) {
	if h.S3 == nil {
		http.Error(w, `{"error":"uploads not configured"}`, http.StatusServiceUnavailable)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		http.Error(w, `{"error":"file too large or invalid form"}`, http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("cover")
	if err != nil {
		http.Error(w, `{"error":"cover file required"}`, http.StatusBadRequest)
		return
	}
	defer file.Close()
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		http.Error(w, `{"error":"cover must be an image"}`, http.StatusBadRequest)
		return
	}
	key, err := h.S3.Upload(r.Context(), "covers/", header.Filename, file, contentType)
	if err != nil {
		http.Error(w, `{"error":"failed to upload cover"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, UploadResponse{URL: h.S3.ObjectURL(key)})
}
