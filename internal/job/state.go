package job

import (
	"time"

	"github.com/elcap/swingdash/internal/contracts"
)

// Status is the lifecycle state of the published snapshot.
type Status string

const (
	StatusNeverRun Status = "never_run"
	StatusRunning  Status = "running"
	StatusReady    Status = "ready"
	StatusFailed   Status = "failed"
)

// Snapshot is one immutable published run result. A Failed snapshot keeps
// the data of the last Ready run so readers never lose the dashboard over
// a transient failure.
type Snapshot struct {
	Status        Status                       `json:"status"`
	GeneratedAt   time.Time                    `json:"generated_at"`
	LastError     string                       `json:"last_error,omitempty"`
	Verdict       string                       `json:"verdict,omitempty"`
	PositiveCount int                          `json:"positive_count"`
	Readings      []contracts.IndicatorReading `json:"readings,omitempty"`
	Records       []contracts.RankedRecord     `json:"records,omitempty"`
	Macro         contracts.MacroContext       `json:"macro"`
	ArtifactPath  string                       `json:"artifact_path,omitempty"`
	LatestPath    string                       `json:"-"`
}

// Summary is the read-only projection served to API clients.
type Summary struct {
	Status        Status                       `json:"status"`
	GeneratedAt   time.Time                    `json:"generated_at,omitempty"`
	LastError     string                       `json:"last_error,omitempty"`
	Verdict       string                       `json:"verdict,omitempty"`
	PositiveCount int                          `json:"positive_count"`
	Readings      []contracts.IndicatorReading `json:"readings,omitempty"`
	TopPicks      []contracts.RankedRecord     `json:"top_picks,omitempty"`
	Records       []contracts.RankedRecord     `json:"records,omitempty"`
	Macro         contracts.MacroContext       `json:"macro"`
}

// State returns the current snapshot. While a run is in flight the status
// reads Running, with the previously published data still attached. Never
// fetches, never blocks on a run.
func (r *Runner) State() Snapshot {
	snap := *r.state.Load()
	if r.running.Load() {
		snap.Status = StatusRunning
	}
	return snap
}

// LatestSummary projects the published snapshot for serving. StatusNeverRun
// tells the caller no run has ever succeeded, which is distinct from a
// Failed snapshot carrying stale-but-valid data.
func (r *Runner) LatestSummary() Summary {
	snap := r.State()

	top := snap.Records
	if len(top) > 3 {
		top = top[:3]
	}

	return Summary{
		Status:        snap.Status,
		GeneratedAt:   snap.GeneratedAt,
		LastError:     snap.LastError,
		Verdict:       snap.Verdict,
		PositiveCount: snap.PositiveCount,
		Readings:      snap.Readings,
		TopPicks:      top,
		Records:       snap.Records,
		Macro:         snap.Macro,
	}
}

// ArtifactPath returns the timestamped artifact of the last successful run,
// or empty when none exists yet.
func (r *Runner) ArtifactPath() string {
	return r.state.Load().ArtifactPath
}
