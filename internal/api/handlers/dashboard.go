package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"

	"github.com/elcap/swingdash/internal/job"
	"github.com/elcap/swingdash/pkg/logger"
)

// DashboardService is the slice of the job runner the handlers consume:
// the published read-only projection plus the on-demand trigger.
type DashboardService interface {
	LatestSummary() job.Summary
	ArtifactPath() string
	Trigger(ctx context.Context) (job.Outcome, error)
}

// DashboardHandler handles dashboard API endpoints
type DashboardHandler struct {
	service DashboardService
	logger  *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  log,
	}
}

// GetSummary returns the latest published dashboard summary
// GET /api/summary
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary := h.service.LatestSummary()

	// A zero GeneratedAt means no run has ever succeeded: either nothing
	// has run yet, or every run so far failed before producing data.
	// Both get the no-data-yet shape, with the failure cause when known.
	if summary.GeneratedAt.IsZero() {
		resp := map[string]string{
			"status":  string(summary.Status),
			"message": "No dashboard has been generated yet",
		}
		if summary.LastError != "" {
			resp["last_error"] = summary.LastError
		}
		respondJSON(w, http.StatusOK, resp)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// RefreshResponse represents the outcome of an on-demand refresh
type RefreshResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Refresh triggers an on-demand dashboard run
// POST /api/refresh
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.service.Trigger(r.Context())

	switch outcome {
	case job.OutcomeBusy:
		respondJSON(w, http.StatusConflict, RefreshResponse{
			Status: outcome.String(),
			Reason: "a refresh run is already in progress",
		})

	case job.OutcomeFailed:
		h.logger.WithError(err).Error("On-demand refresh failed")
		reason := "refresh failed"
		if err != nil {
			reason = err.Error()
		}
		respondJSON(w, http.StatusBadGateway, RefreshResponse{
			Status: outcome.String(),
			Reason: reason,
		})

	default:
		respondJSON(w, http.StatusOK, RefreshResponse{Status: outcome.String()})
	}
}

// Download streams the most recent artifact as an attachment
// GET /download
func (h *DashboardHandler) Download(w http.ResponseWriter, r *http.Request) {
	path := h.service.ArtifactPath()
	if path == "" {
		respondError(w, http.StatusNotFound, "No dashboard artifact available yet")
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(path))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	http.ServeFile(w, r, path)
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
