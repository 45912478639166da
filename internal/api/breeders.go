package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/breeders/internal/model"
	"github.com/erazemk/breeders/internal/store"
)

const (
	msgNotFound    = "Breeder not found"
	msgNameMissing = "Name is required"
	msgBadBody     = "Invalid request body"
	msgBadID       = "Invalid breeder id"
)

// BreedersHandler handles breeder CRUD and search endpoints.
type BreedersHandler struct {
	Store *store.Store
}

// List handles GET /api/breeders.
func (h *BreedersHandler) List(w http.ResponseWriter, r *http.Request) {
	breeders, err := h.Store.List(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, breeders)
}

// Get handles GET /api/breeders/{id}.
func (h *BreedersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := breederID(w, r)
	if !ok {
		return
	}

	b, err := h.Store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, b)
}

// Create handles POST /api/breeders.
func (h *BreedersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.BreederInput
	if err := decodeJSON(r, &in); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, http.StatusBadRequest, msgBadBody)
		return
	}

	if err := in.Validate(); err != nil {
		jsonError(w, http.StatusBadRequest, msgNameMissing)
		return
	}

	id, err := h.Store.Create(r.Context(), in.Normalize())
	if err != nil {
		storeError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusOK, messageResponse{ID: id, Message: "Breeder added successfully"})
}

// Update handles PUT /api/breeders/{id}. Every editable field is replaced;
// fields missing from the body become null.
func (h *BreedersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := breederID(w, r)
	if !ok {
		return
	}

	var in model.BreederInput
	if err := decodeJSON(r, &in); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, http.StatusBadRequest, msgBadBody)
		return
	}

	n, err := h.Store.Update(r.Context(), id, in.Normalize())
	if err != nil {
		storeError(w, r, err)
		return
	}
	if n == 0 {
		jsonError(w, http.StatusNotFound, msgNotFound)
		return
	}

	jsonResponse(w, http.StatusOK, messageResponse{Message: "Breeder updated successfully"})
}

// Patch handles PATCH /api/breeders/{id}. Only keys present in the body
// change; null clears a field.
func (h *BreedersHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := breederID(w, r)
	if !ok {
		return
	}

	var raw map[string]json.RawMessage
	if err := decodeJSON(r, &raw); err != nil {
		jsonError(w, http.StatusBadRequest, msgBadBody)
		return
	}

	patch, err := model.ParsePatch(raw)
	if errors.Is(err, model.ErrNameRequired) {
		jsonError(w, http.StatusBadRequest, msgNameMissing)
		return
	}
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	n, err := h.Store.Patch(r.Context(), id, patch)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if n == 0 {
		jsonError(w, http.StatusNotFound, msgNotFound)
		return
	}

	jsonResponse(w, http.StatusOK, messageResponse{Message: "Breeder updated successfully"})
}

// Delete handles DELETE /api/breeders/{id}.
func (h *BreedersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := breederID(w, r)
	if !ok {
		return
	}

	n, err := h.Store.Delete(r.Context(), id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if n == 0 {
		jsonError(w, http.StatusNotFound, msgNotFound)
		return
	}

	jsonResponse(w, http.StatusOK, messageResponse{Message: "Breeder deleted successfully"})
}

// Search handles GET /api/breeders/search/{query}. An empty query lists
// every breeder.
func (h *BreedersHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := chi.URLParam(r, "query")
	// chi matches on the escaped path when one is present (e.g. %2F), so
	// the parameter may still need decoding.
	if r.URL.RawPath != "" {
		if decoded, err := url.PathUnescape(q); err == nil {
			q = decoded
		}
	}

	if q == "" {
		h.List(w, r)
		return
	}

	breeders, err := h.Store.Search(r.Context(), q)
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, breeders)
}

// breederID parses the {id} path parameter, answering 400 when it is not a
// number.
func breederID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, msgBadID)
		return 0, false
	}
	return id, true
}
