package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	cnserrors "github.com/NVIDIA/pipeline-preflight/pkg/errors"
)

func newTestServer(t *testing.T, cfg *Config, h http.HandlerFunc) *Server {
	t.Helper()
	return New(
		WithName("test"),
		WithVersion("v0.0.1"),
		WithConfig(cfg),
		WithHandler(map[string]http.HandlerFunc{"/v1/echo": h}),
	)
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestServer_DefaultRoute(t *testing.T) {
	s := newTestServer(t, nil, okHandler)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Name    string   `json:"name"`
		Version string   `json:"version"`
		Ready   bool     `json:"ready"`
		Routes  []string `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "test", resp.Name)
	assert.Equal(t, "v0.0.1", resp.Version)
	assert.False(t, resp.Ready)
	assert.Contains(t, resp.Routes, "/v1/echo")
}

func TestServer_UnknownRoute(t *testing.T) {
	s := newTestServer(t, nil, okHandler)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_HealthAndReady(t *testing.T) {
	s := newTestServer(t, nil, okHandler)
	h := s.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	s.SetReady(true)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodGet, w.Header().Get("Allow"))
}

func TestServer_ReadinessChecks(t *testing.T) {
	failing := errors.New("no success matchers registered")
	s := New(
		WithName("preflightd"),
		WithVersion("v0.3.0"),
		WithReadinessCheck("validator", func() error { return nil }),
		WithReadinessCheck("matchers", func() error { return failing }),
		WithReadinessCheck("skipped", nil),
	)
	s.SetReady(true)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, "preflightd", resp.Name)
	assert.Equal(t, "v0.3.0", resp.Version)
	assert.Equal(t, "matchers: no success matchers registered", resp.Reason)
	assert.Equal(t, map[string]string{"validator": "ok", "matchers": failing.Error()}, resp.Checks)
}

func TestServer_HealthReportsService(t *testing.T) {
	s := newTestServer(t, nil, okHandler)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "test", resp.Name)
	assert.Equal(t, "v0.0.1", resp.Version)
	assert.Nil(t, resp.Checks)
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer(t, nil, okHandler)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddleware_RequestID(t *testing.T) {
	var seen string
	s := newTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := s.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/echo", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(HeaderRequestID))
	assert.Equal(t, DefaultAPIVersion, w.Header().Get(HeaderAPIVersion))

	const id = "0b5c8a38-4d1f-4b36-9d4c-3f1f1c7b2a11"
	req := httptest.NewRequest(http.MethodGet, "/v1/echo", nil)
	req.Header.Set(HeaderRequestID, id)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, id, seen, "a valid client request ID is kept")
}

func TestMiddleware_RateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit = rate.Limit(0)
	cfg.RateLimitBurst = 1
	s := newTestServer(t, cfg, okHandler)
	h := s.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/echo", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/echo", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(cnserrors.ErrCodeRateLimitExceeded), resp.Code)
	assert.True(t, resp.Retryable)
}

func TestMiddleware_RecoversPanic(t *testing.T) {
	s := newTestServer(t, nil, func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/echo", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDefaultConfig_PortFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	cfg := DefaultConfig()
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, ":9090", cfg.Addr())
}
