package http

import (
	"context"
	"net/http"

	"github.com/light-bringer/inventory-service/internal/pkg/cache"
)

// CacheHealth is the part of the entity cache reported by /healthz.
type CacheHealth interface {
	Ping(ctx context.Context) error
	GetStats() cache.Stats
}

type healthResponse struct {
	Status string       `json:"status"`
	Cache  *cacheReport `json:"cache,omitempty"`
}

type cacheReport struct {
	Status string      `json:"status"`
	Stats  cache.Stats `json:"stats"`
}

// health reports 503 while a configured cache is unreachable, since writes
// cannot invalidate it.
func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	body := healthResponse{Status: "ok"}
	status := http.StatusOK

	if h.svc.Cache != nil {
		body.Cache = &cacheReport{Status: "ok", Stats: h.svc.Cache.GetStats()}
		if err := h.svc.Cache.Ping(r.Context()); err != nil {
			h.log.Warn().Err(err).Msg("Cache ping failed")
			body.Status = "degraded"
			body.Cache.Status = "down"
			status = http.StatusServiceUnavailable
		}
	}
	writeJSON(w, status, body)
}
