package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dkovalev7/scentshop/internal/server/models"
)

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	return id, err == nil && id > 0
}

func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func (s *HTTPServer) handleListPerfumes(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 50)

	perfumes, err := s.catalog.List(r.Context(), skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if perfumes == nil {
		perfumes = []models.Perfume{}
	}
	writeJSON(w, http.StatusOK, perfumes)
}

func (s *HTTPServer) handleGetPerfume(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusBadRequest, "invalid perfume id")
		return
	}

	p, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *HTTPServer) handleCreatePerfume(w http.ResponseWriter, r *http.Request) {
	var p models.Perfume
	if err := decodeJSON(r, &p); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid body")
		return
	}
	if p.Name == "" || p.Price < 0 {
		writeDetail(w, http.StatusBadRequest, "name is required and price must not be negative")
		return
	}

	created, err := s.catalog.Create(r.Context(), &p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *HTTPServer) handleUpdatePerfume(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusBadRequest, "invalid perfume id")
		return
	}

	var p models.Perfume
	if err := decodeJSON(r, &p); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid body")
		return
	}
	p.ID = id

	updated, err := s.catalog.Update(r.Context(), &p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *HTTPServer) handleDeletePerfume(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusBadRequest, "invalid perfume id")
		return
	}

	if err := s.catalog.Deactivate(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
