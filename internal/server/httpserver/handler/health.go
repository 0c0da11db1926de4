package handler

import (
	"net/http"
	"time"
)

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:   "healthy",
		Time:     time.Now().UTC().Format(time.RFC3339),
		Uptime:   time.Since(h.started).Truncate(time.Second).String(),
		Users:    h.authSvc.UserCount(),
		Vehicles: h.vehicleSvc.Count(),
	})
}
