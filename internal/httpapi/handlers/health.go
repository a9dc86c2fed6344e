package handlers

import (
	"net/http"
	"time"

	"github.com/bengobox/starter-service/internal/health"
	"github.com/bengobox/starter-service/internal/httpapi"
	"github.com/bengobox/starter-service/internal/status"
)

// Health responds with basic service status.
func Health(w http.ResponseWriter, r *http.Request) {
	httpapi.JSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(status.TimestampLayout),
	})
}

// Ready reports dependency readiness, 503 when any check fails.
func Ready(readiness *health.Readiness) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := readiness.Evaluate(r.Context())
		code := http.StatusOK
		if !report.Ready {
			code = http.StatusServiceUnavailable
		}
		httpapi.JSON(w, code, report)
	}
}
