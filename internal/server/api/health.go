package api

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HealthResponse — ответ health-check.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health — liveness: процесс жив и отвечает.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready — readiness: база доступна.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Failure      503 {object} api.HealthResponse
// @Router       /health/ready [get]
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.Svc.Health == nil {
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.Svc.Health.Ping(ctx); err != nil {
		h.Log.Warn("readiness check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
