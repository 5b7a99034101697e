package handlers

import (
	"context"
	"net/http"
	"time"

	"studyaid/internal/logger"
	"studyaid/internal/service"
)

const healthPingTimeout = 2 * time.Second

// Pinger reports whether the preference store's database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports process health. Store failures degrade the
// report but never fail it, since the page works without persistence.
type HealthHandler struct {
	store   Pinger
	backend *service.BackendClient
	pages   *service.PageService
	logger  *logger.Logger
}

// NewHealthHandler creates a health handler. store is nil when persistence is disabled.
func NewHealthHandler(store Pinger, backend *service.BackendClient, pages *service.PageService, log *logger.Logger) *HealthHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &HealthHandler{store: store, backend: backend, pages: pages, logger: log}
}

type healthJSON struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Backend  string `json:"backend"`
	Pages    int    `json:"pages"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthJSON{Status: "ok", Database: "disabled", Backend: "offline"}

	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			h.logger.Warn("Preference store unreachable", "error", err)
			resp.Status = "degraded"
			resp.Database = "unreachable"
		} else {
			resp.Database = "ok"
		}
	}
	if h.backend.Configured() {
		resp.Backend = "configured"
	}
	if h.pages != nil {
		resp.Pages = h.pages.Len()
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}
