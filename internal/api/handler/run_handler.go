package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// ListRuns retrieves recent pipeline runs
// @Summary List runs
// @Description Get the most recent pipeline runs with their status
// @Tags runs
// @Produce json
// @Param limit query int false "Maximum number of runs" default(20)
// @Success 200 {array} model.Run "List of runs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [get]
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	runs, err := h.store.Runs(r.Context(), limit)
	if err != nil {
		h.log.Error("read runs", zap.Error(err))
		http.Error(w, "Failed to read runs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

// Health reports service liveness
// @Summary Health check
// @Description Liveness probe for the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok"})
}
