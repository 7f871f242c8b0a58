package handlers

import (
	"net/http"

	"github.com/elcap/swingdash/internal/scheduler"
	"github.com/elcap/swingdash/pkg/logger"
)

// JobStatsProvider exposes per-job scheduling statistics.
type JobStatsProvider interface {
	GetJobStats() map[string]scheduler.JobStats
}

// JobsHandler serves scheduler statistics
type JobsHandler struct {
	stats  JobStatsProvider
	logger *logger.Logger
}

func NewJobsHandler(stats JobStatsProvider, log *logger.Logger) *JobsHandler {
	return &JobsHandler{stats: stats, logger: log}
}

// GetStats returns run statistics for every registered job
// GET /api/jobs
func (h *JobsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.stats.GetJobStats())
}
