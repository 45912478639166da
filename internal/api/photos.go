package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/breeders/internal/imaging"
)

// UploadPhoto handles PUT /api/breeders/{id}/photo.
func (h *BreedersHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := breederID(w, r)
	if !ok {
		return
	}

	// Leave room for multipart framing on top of the photo itself.
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+64<<10)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "Photo too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Photo file required")
		return
	}
	defer file.Close()

	photo, err := imaging.NormalizePhoto(file)
	if errors.Is(err, imaging.ErrUnsupported) {
		jsonError(w, http.StatusBadRequest, "Photo must be a JPEG or PNG image")
		return
	}
	if err != nil {
		slog.Warn("rejected breeder photo", "breeder_id", id, "error", err)
		jsonError(w, http.StatusBadRequest, "Could not process photo")
		return
	}

	n, err := h.Store.SetPhoto(r.Context(), id, photo.Data, photo.MIME)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if n == 0 {
		jsonError(w, http.StatusNotFound, msgNotFound)
		return
	}

	jsonResponse(w, http.StatusOK, messageResponse{Message: "Photo uploaded successfully"})
}

// GetPhoto handles GET /api/breeders/{id}/photo.
func (h *BreedersHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := breederID(w, r)
	if !ok {
		return
	}

	data, mime, err := h.Store.Photo(r.Context(), id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "No photo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write photo response", "error", err)
	}
}

// DeletePhoto handles DELETE /api/breeders/{id}/photo.
func (h *BreedersHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := breederID(w, r)
	if !ok {
		return
	}

	n, err := h.Store.DeletePhoto(r.Context(), id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if n == 0 {
		jsonError(w, http.StatusNotFound, msgNotFound)
		return
	}

	jsonResponse(w, http.StatusOK, messageResponse{Message: "Photo removed successfully"})
}
