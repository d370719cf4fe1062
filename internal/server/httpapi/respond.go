package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dkovalev7/scentshop/internal/common"
	"github.com/dkovalev7/scentshop/internal/server/services"
)

type errorEnvelope struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorEnvelope{Detail: detail})
}

// writeError maps service errors onto the REST error contract. The cart
// conflict string is load-bearing: clients match on "OUT_OF_STOCK".
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrOutOfStock):
		writeDetail(w, http.StatusConflict, "OUT_OF_STOCK")
	case errors.Is(err, common.ErrorNotFound):
		writeDetail(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeDetail(w, http.StatusBadRequest, "already exists")
	case errors.Is(err, services.ErrEmptyCart):
		writeDetail(w, http.StatusBadRequest, "cart is empty")
	case errors.Is(err, services.ErrBadImageExtension):
		writeDetail(w, http.StatusBadRequest, "unsupported image extension")
	case errors.Is(err, common.ErrTokenExpired):
		writeDetail(w, http.StatusUnauthorized, "token expired")
	case errors.Is(err, common.ErrRefreshTokenExpired):
		writeDetail(w, http.StatusUnauthorized, "refresh token expired")
	case errors.Is(err, common.ErrInvalidToken):
		writeDetail(w, http.StatusUnauthorized, "invalid token")
	case errors.Is(err, common.ErrorUnauthorized):
		writeDetail(w, http.StatusUnauthorized, "invalid credentials")
	default:
		writeDetail(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
