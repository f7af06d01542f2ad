// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]any
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	provider StatsProvider
	clients  ClientCounter
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(provider StatsProvider, clients ClientCounter) *StatsHandler {
	return &StatsHandler{provider: provider, clients: clients}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	// GetStats builds a fresh map per call.
	stats := h.provider.GetStats()
	stats["feed_clients"] = h.clients.ClientCount()
	writeJSON(w, http.StatusOK, stats)
}
