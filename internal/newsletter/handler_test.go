package newsletter

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newsletterRouter(t *testing.T, repo Repository) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, testNewsletter(repo, nil))

	r := chi.NewRouter()
	h.MountRoutes(r, func(next http.Handler) http.Handler { return next })
	return r
}

func postEmail(h http.Handler, path, email string) *httptest.ResponseRecorder {
	body := `{"email":"` + email + `"}`
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSubscribeEndpoint(t *testing.T) {
	h := newsletterRouter(t, newMemRepo())

	rec := postEmail(h, "/newsletter/subscribe", "priya@example.com")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), "Thank you for subscribing")

	rec = postEmail(h, "/newsletter/subscribe", "priya@example.com")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "already subscribed")

	rec = postEmail(h, "/newsletter/subscribe", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Email is required")

	rec = postEmail(h, "/newsletter/subscribe", "nope")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "valid email")
}

func TestSubscribeEndpointReactivation(t *testing.T) {
	repo := newMemRepo()
	h := newsletterRouter(t, repo)

	rec := postEmail(h, "/newsletter/subscribe", "priya@example.com")
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = postEmail(h, "/newsletter/unsubscribe", "priya@example.com")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "unsubscribed from our newsletter")

	rec = postEmail(h, "/newsletter/subscribe", "priya@example.com")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Welcome back")
}

func TestUnsubscribeEndpointUnknownAddress(t *testing.T) {
	h := newsletterRouter(t, newMemRepo())

	rec := postEmail(h, "/newsletter/unsubscribe", "ghost@example.com")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "not found in our subscriber list")
}

func TestSubscribersEndpoint(t *testing.T) {
	repo := newMemRepo()
	h := newsletterRouter(t, repo)

	svc := testNewsletter(repo, nil)
	_, err := svc.Subscribe(context.Background(), "a@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/newsletter/subscribers", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"count":1`)
	require.Contains(t, rec.Body.String(), "a@example.com")
}
