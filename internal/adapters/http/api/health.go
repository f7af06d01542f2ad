// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"time"
)

// HealthDependencies defines the service datapoints behind the health
// endpoint.
type HealthDependencies interface {
	Uptime() time.Duration
	PostCount(ctx context.Context) int
}

// ClientCounter reports how many live feed clients are connected.
type ClientCounter interface {
	ClientCount() int
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps    HealthDependencies
	clients ClientCounter
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps HealthDependencies, clients ClientCounter) *HealthHandler {
	return &HealthHandler{deps: deps, clients: clients}
}

type healthResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Posts         int     `json:"posts"`
	FeedClients   int     `json:"feed_clients"`
}

// HandleHealth handles GET /healthz requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		UptimeSeconds: h.deps.Uptime().Seconds(),
		Posts:         h.deps.PostCount(r.Context()),
		FeedClients:   h.clients.ClientCount(),
	})
}
