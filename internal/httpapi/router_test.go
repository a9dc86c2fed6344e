package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/bengobox/starter-service/internal/httpapi"
	"github.com/bengobox/starter-service/internal/httpapi/handlers"
	"github.com/bengobox/starter-service/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steppingClock advances one second per reading.
type steppingClock struct {
	mu  sync.Mutex
	cur time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

func newTestRouter(t *testing.T, deps httpapi.RouterDeps) http.Handler {
	t.Helper()
	clock := &steppingClock{cur: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)}
	svc := status.New(status.Identity{Message: "Welcome to Go!", Status: "running", Framework: "chi"}, status.WithClock(clock.Now))
	deps.StatusHandler = handlers.NewStatusHandler(svc).Status
	deps.HealthHandler = handlers.Health
	return httpapi.NewRouter(deps)
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestStatusEndpointContract(t *testing.T) {
	router := newTestRouter(t, httpapi.RouterDeps{})

	var previous string
	for i := 0; i < 3; i++ {
		rec := get(router, "/")
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body, 4)
		assert.Equal(t, "Welcome to Go!", body["message"])
		assert.Equal(t, "running", body["status"])
		assert.Equal(t, "chi", body["framework"])

		ts, ok := body["timestamp"].(string)
		require.True(t, ok)
		_, err := time.Parse(time.RFC3339Nano, ts)
		require.NoError(t, err)
		assert.Greater(t, ts, previous, "timestamps must advance")
		previous = ts
	}
}

func TestVersionedStatusPath(t *testing.T) {
	router := newTestRouter(t, httpapi.RouterDeps{})
	rec := get(router, "/api/v1/status")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"framework":"chi"`)
}

func TestUnknownRouteUsesErrorEnvelope(t *testing.T) {
	router := newTestRouter(t, httpapi.RouterDeps{})
	rec := get(router, "/admin/")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body httpapi.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body.Code)
	assert.Equal(t, "/admin/", body.Details["path"])
}

func TestWrongMethodUsesErrorEnvelope(t *testing.T) {
	router := newTestRouter(t, httpapi.RouterDeps{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "method_not_allowed")
}

func TestOptionalRoutesAbsentWhenNil(t *testing.T) {
	router := newTestRouter(t, httpapi.RouterDeps{})
	assert.Equal(t, http.StatusNotFound, get(router, "/metrics").Code)
	assert.Equal(t, http.StatusNotFound, get(router, "/readyz").Code)
	assert.Equal(t, http.StatusOK, get(router, "/healthz").Code)
}

func TestRateLimitAppliesOnlyToAPIGroup(t *testing.T) {
	blocked := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			httpapi.Error(w, http.StatusTooManyRequests, "rate_limited", "too many requests", nil)
		})
	}
	router := newTestRouter(t, httpapi.RouterDeps{RateLimitAPI: blocked})

	assert.Equal(t, http.StatusOK, get(router, "/").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(router, "/api/v1/status").Code)
	assert.Equal(t, http.StatusOK, get(router, "/healthz").Code)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t, httpapi.RouterDeps{AllowedOrigins: []string{"https://app.example"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/status", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
