package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/docnotify-api/internal/domain"
)

// DataEnvelope wraps single-object responses.
type DataEnvelope struct {
	Data interface{} `json:"data"`
}

// Pagination echoes the window a list response was sliced with.
type Pagination struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ListEnvelope wraps list responses.
type ListEnvelope struct {
	Pagination Pagination  `json:"pagination"`
	Data       interface{} `json:"data"`
}

// SuccessEnvelope wraps responses with no payload.
type SuccessEnvelope struct {
	Success bool `json:"success"`
}

// MessageEnvelope is the generic error wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps domain sentinels onto HTTP status codes and writes the
// error envelope. Unrecognized errors become a 500 with a generic message
// so storage details never leak to clients.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
