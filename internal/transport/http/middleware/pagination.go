package middleware

import (
	"context"
	"net/http"
	"strconv"
)

const paginationKey contextKey = "pagination"

const (
	// DefaultLimit is the page size when the client sends none.
	DefaultLimit = 15
	// MaxLimit caps client-supplied page sizes.
	MaxLimit = 100
)

// Page is a validated offset/limit pair. Downstream code trusts the bounds:
// offset is non-negative and limit sits in (0, MaxLimit].
type Page struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Pagination parses offset/limit query parameters, clamps them, and injects
// the result into the request context.
func Pagination(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := Page{Offset: 0, Limit: DefaultLimit}
		if v := r.URL.Query().Get("offset"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeJSONError(w, http.StatusBadRequest, "offset must be a non-negative integer")
				return
			}
			page.Offset = n
		}
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				writeJSONError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			if n > MaxLimit {
				n = MaxLimit
			}
			page.Limit = n
		}
		ctx := context.WithValue(r.Context(), paginationKey, page)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PageFromContext returns the parsed pagination, defaulting when the route
// skipped the middleware.
func PageFromContext(ctx context.Context) Page {
	if p, ok := ctx.Value(paginationKey).(Page); ok {
		return p
	}
	return Page{Offset: 0, Limit: DefaultLimit}
}
