package handlers

import (
	"net/http"
	"time"

	"github.com/benvon/wifi-api/internal/models"
	"github.com/benvon/wifi-api/internal/version"
)

// HealthChecker handles health check requests
type HealthChecker struct {
	startedAt     time.Time
	reloadEnabled bool
	now           func() time.Time
}

// NewHealthChecker creates a new health checker for a server started at startedAt
func NewHealthChecker(startedAt time.Time, reloadEnabled bool) *HealthChecker {
	return &HealthChecker{
		startedAt:     startedAt,
		reloadEnabled: reloadEnabled,
		now:           time.Now,
	}
}

// HealthCheck handles the /healthz endpoint. With ?mode=extended the
// response also carries process checks.
func (h *HealthChecker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: now.UTC().Format(time.RFC3339),
	}

	if r.URL.Query().Get("mode") == "extended" {
		reload := "disabled"
		if h.reloadEnabled {
			reload = "enabled"
		}
		response.Checks = map[string]string{
			"uptime": now.Sub(h.startedAt).Truncate(time.Second).String(),
			"reload": reload,
		}
	}

	respondJSON(w, http.StatusOK, response)
}

// VersionInfo handles the /version endpoint
func VersionInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, version.Info())
}
