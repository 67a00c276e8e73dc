package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeRateLimitStore struct {
	counts  map[string]int64
	expired []string
	fail    bool
}

func newFakeRateLimitStore() *fakeRateLimitStore {
	return &fakeRateLimitStore{counts: make(map[string]int64)}
}

func (f *fakeRateLimitStore) Increment(_ context.Context, key string) (int64, error) {
	if f.fail {
		return 0, context.DeadlineExceeded
	}
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeRateLimitStore) Expire(_ context.Context, key string, _ time.Duration) error {
	f.expired = append(f.expired, key)
	return nil
}

func rateLimitedRouter(store *fakeRateLimitStore, limit int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimitMiddleware(store, limit))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestRateLimitAllowsUpToLimit(t *testing.T) {
	store := newFakeRateLimitStore()
	router := rateLimitedRouter(store, 3)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimitKeysByClientIP(t *testing.T) {
	store := newFakeRateLimitStore()
	router := rateLimitedRouter(store, 1)

	first := httptest.NewRequest(http.MethodGet, "/ping", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	second := httptest.NewRequest(http.MethodGet, "/ping", nil)
	second.RemoteAddr = "10.0.0.2:1234"

	w := httptest.NewRecorder()
	router.ServeHTTP(w, first)
	assert.Equal(t, http.StatusOK, w.Code)

	// A different caller gets its own window.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, second)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Len(t, store.counts, 2)
}

func TestRateLimitFailsOpenWhenStoreIsDown(t *testing.T) {
	store := newFakeRateLimitStore()
	store.fail = true
	router := rateLimitedRouter(store, 1)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitSetsWindowExpiry(t *testing.T) {
	store := newFakeRateLimitStore()
	router := rateLimitedRouter(store, 5)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Only the first hit of a window sets the TTL.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, store.expired, 1)
}
