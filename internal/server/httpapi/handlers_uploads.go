package httpapi

import (
	"net/http"
)

type uploadRequest struct {
	Filename string `json:"filename"`
}

func (s *HTTPServer) handleImageUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Filename == "" {
		writeDetail(w, http.StatusBadRequest, "filename is required")
		return
	}

	ticket, err := s.uploads.CreateImageUploadTicket(r.Context(), req.Filename)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}
