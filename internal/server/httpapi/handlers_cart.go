package httpapi

import (
	"net/http"

	"github.com/dkovalev7/scentshop/internal/server/models"
)

type cartEnvelope struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
}

type cartAddRequest struct {
	PerfumeID int64 `json:"perfume_id"`
	Quantity  int   `json:"quantity"`
}

type cartUpdateRequest struct {
	Quantity int `json:"quantity"`
}

func (s *HTTPServer) handleGetCart(w http.ResponseWriter, r *http.Request) {
	items, total, err := s.carts.Get(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []models.CartItem{}
	}
	writeJSON(w, http.StatusOK, cartEnvelope{Items: items, Total: total})
}

func (s *HTTPServer) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartAddRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.PerfumeID <= 0 || req.Quantity <= 0 {
		writeDetail(w, http.StatusBadRequest, "perfume_id and a positive quantity are required")
		return
	}

	if err := s.carts.Add(r.Context(), userIDFromContext(r.Context()), req.PerfumeID, req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleUpdateCartLine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "perfume_id")
	if !ok {
		writeDetail(w, http.StatusBadRequest, "invalid perfume id")
		return
	}

	var req cartUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Quantity < 0 {
		writeDetail(w, http.StatusBadRequest, "quantity must not be negative")
		return
	}

	if err := s.carts.UpdateQuantity(r.Context(), userIDFromContext(r.Context()), id, req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleRemoveCartLine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "perfume_id")
	if !ok {
		writeDetail(w, http.StatusBadRequest, "invalid perfume id")
		return
	}

	if err := s.carts.Remove(r.Context(), userIDFromContext(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleClearCart(w http.ResponseWriter, r *http.Request) {
	if err := s.carts.Clear(r.Context(), userIDFromContext(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
