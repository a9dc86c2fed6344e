package handlers

import (
	"context"
	"net/http"

	"github.com/bengobox/starter-service/internal/httpapi"
	"github.com/bengobox/starter-service/internal/status"
)

// StatusProvider produces the status payload.
type StatusProvider interface {
	Status(ctx context.Context) status.Payload
}

// StatusHandler serves the service status payload.
type StatusHandler struct {
	provider StatusProvider
}

// NewStatusHandler creates a StatusHandler.
func NewStatusHandler(provider StatusProvider) *StatusHandler {
	return &StatusHandler{provider: provider}
}

// Status responds 200 with the current payload. The request is not inspected.
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	httpapi.JSON(w, http.StatusOK, h.provider.Status(r.Context()))
}
