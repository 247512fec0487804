// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/winedex/pkg/metrics"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests. The service counters are
// returned together with a flat snapshot of the metrics registry.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats := map[string]interface{}{}
	if h.statsProvider != nil {
		stats = h.statsProvider.GetStats()
	}
	if snap, err := metrics.Snapshot(); err == nil {
		stats["metrics"] = snap
	}
	writeJSON(w, http.StatusOK, stats)
}
