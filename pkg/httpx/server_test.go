package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unrolled/secure"

	"github.com/ghuser/wardrobe/pkg/httpx"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// TestSecurityHeaders verifies unrolled/secure sets the expected headers.
// HSTS is only sent over TLS, so plain requests do not carry it.
func TestSecurityHeaders(t *testing.T) {
	sm := secure.New(secure.Options{
		STSSeconds:            63072000,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
		IsDevelopment:         false,
	})
	h := sm.Handler(http.HandlerFunc(okHandler))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	checks := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": "default-src 'self'",
	}
	for header, expected := range checks {
		assert.Equal(t, expected, rr.Header().Get(header), header)
	}
}

// TestRequestBodyLimit_WithinLimit verifies requests under the cap pass through.
func TestRequestBodyLimit_WithinLimit(t *testing.T) {
	const limit = 100

	var gotBody []byte
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, limit+1)
		n, _ := r.Body.Read(buf)
		gotBody = buf[:n]
		w.WriteHeader(http.StatusOK)
	})

	h := httpx.RequestBodyLimit(limit)(inner)
	body := strings.NewReader(strings.Repeat("a", 50))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", body))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, gotBody, 50)
}

// TestRequestBodyLimit_ExceedsLimit verifies that reading beyond the cap returns an error.
func TestRequestBodyLimit_ExceedsLimit(t *testing.T) {
	const limit int64 = 10

	var readErr error
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, limit+5)
		_, readErr = r.Body.Read(buf)
		if readErr != nil {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	h := httpx.RequestBodyLimit(limit)(inner)
	body := strings.NewReader(strings.Repeat("x", int(limit)+1))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", body))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func passthrough(next http.Handler) http.Handler { return next }

// TestNewRouter_AllowsInlineImages verifies the router CSP permits data: image URIs.
func TestNewRouter_AllowsInlineImages(t *testing.T) {
	r := httpx.NewRouter(httpx.ServerConfig{ServiceName: "wardrobe", CORSAllowedOrigins: "*"},
		passthrough, passthrough, passthrough, passthrough)
	r.Get("/", okHandler)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "img-src 'self' data:")
}

// TestNewRouter_BodyLimit verifies bodies over MaxBodyBytes are rejected.
func TestNewRouter_BodyLimit(t *testing.T) {
	r := httpx.NewRouter(httpx.ServerConfig{MaxBodyBytes: 8},
		passthrough, passthrough, passthrough, passthrough)
	r.Post("/", func(w http.ResponseWriter, req *http.Request) {
		buf := make([]byte, 64)
		if _, err := req.Body.Read(buf); err != nil && err.Error() == "http: request body too large" {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 32))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

// TestNewRouter_RateLimit verifies the per-IP budget from ServerConfig applies.
func TestNewRouter_RateLimit(t *testing.T) {
	r := httpx.NewRouter(httpx.ServerConfig{RateLimit: 2},
		passthrough, passthrough, passthrough, passthrough)
	r.Get("/", okHandler)

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		req.RemoteAddr = "10.0.0.7:5555"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewServer_WriteTimeoutExceedsHandlerTimeout(t *testing.T) {
	srv := httpx.NewServer(":0", http.NotFoundHandler(), 10*time.Second)
	assert.Greater(t, srv.WriteTimeout, 10*time.Second)

	def := httpx.NewServer(":0", http.NotFoundHandler(), 0)
	assert.Greater(t, def.WriteTimeout, httpx.DefaultHandlerTimeout)
}
