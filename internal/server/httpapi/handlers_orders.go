package httpapi

import (
	"net/http"

	"github.com/dkovalev7/scentshop/internal/server/models"
)

type orderRequest struct {
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
	UserPhone string `json:"user_phone"`
}

func (s *HTTPServer) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid body")
		return
	}

	order, err := s.orders.Create(r.Context(), userIDFromContext(r.Context()),
		req.UserEmail, req.UserName, req.UserPhone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (s *HTTPServer) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.List(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}
