package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runPagination(t *testing.T, url string) (Page, *httptest.ResponseRecorder) {
	t.Helper()
	var got Page
	h := Pagination(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = PageFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, url, nil))
	return got, rec
}

func TestPagination_Defaults(t *testing.T) {
	page, rec := runPagination(t, "/v1/subscriptions.list")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, page.Offset)
	assert.Equal(t, DefaultLimit, page.Limit)
}

func TestPagination_Explicit(t *testing.T) {
	page, rec := runPagination(t, "/v1/subscriptions.list?offset=30&limit=10")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 30, page.Offset)
	assert.Equal(t, 10, page.Limit)
}

func TestPagination_LimitCapped(t *testing.T) {
	page, rec := runPagination(t, "/v1/subscriptions.list?limit=5000")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, MaxLimit, page.Limit)
}

func TestPagination_NegativeOffsetRejected(t *testing.T) {
	_, rec := runPagination(t, "/v1/subscriptions.list?offset=-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPagination_BadLimitRejected(t *testing.T) {
	_, rec := runPagination(t, "/v1/subscriptions.list?limit=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPageFromContext_WithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/subscriptions.info", nil)
	page := PageFromContext(req.Context())
	assert.Equal(t, DefaultLimit, page.Limit)
}
