// Package job orchestrates one dashboard refresh: fetch, normalize, score,
// assemble, notify, publish. It owns the single-flight guard and the
// atomically published run state that the serving layer reads.
package job

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/elcap/swingdash/internal/contracts"
	"github.com/elcap/swingdash/internal/market"
	"github.com/elcap/swingdash/internal/normalize"
	"github.com/elcap/swingdash/internal/report"
	"github.com/elcap/swingdash/internal/scoring"
	"github.com/elcap/swingdash/internal/universe"
	"github.com/elcap/swingdash/pkg/logger"
)

// Outcome is the result of one trigger attempt. Busy is a rejection, not a
// queue: the caller retries later or waits for the next scheduled run.
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeBusy
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeBusy:
		return "busy"
	default:
		return "failed"
	}
}

// Fetcher is the market data surface the runner depends on.
type Fetcher interface {
	FetchQuotes(ctx context.Context, symbols []string) []market.QuoteResult
	FetchBenchmarks(ctx context.Context, benchmarks []contracts.Benchmark) []contracts.IndicatorReading
}

// Assembler produces the report artifact for one run.
type Assembler interface {
	Build(records []contracts.RankedRecord, readings []contracts.IndicatorReading, macro contracts.MacroContext) (*report.Artifact, error)
}

// Notifier delivers a finished artifact. Failures are logged, never fatal.
type Notifier interface {
	Send(path string, generatedAt time.Time, verdict string, records []contracts.RankedRecord) error
}

// Runner drives refresh runs and publishes their results.
type Runner struct {
	fetcher   Fetcher
	universe  *universe.Universe
	assembler Assembler
	notifier  Notifier
	logger    *logger.Logger
	now       func() time.Time

	// mu enforces at most one active run. TryLock keeps triggers
	// non-blocking: a concurrent caller gets Busy instead of a queue slot.
	mu      sync.Mutex
	running atomic.Bool

	// state holds the last published snapshot. Swapped whole so readers
	// never observe a half-updated run.
	state atomic.Pointer[Snapshot]
}

func NewRunner(fetcher Fetcher, uni *universe.Universe, assembler Assembler, notifier Notifier, log *logger.Logger) *Runner {
	r := &Runner{
		fetcher:   fetcher,
		universe:  uni,
		assembler: assembler,
		notifier:  notifier,
		logger:    log.WithField("component", "job"),
		now:       time.Now,
	}
	r.state.Store(&Snapshot{Status: StatusNeverRun})
	return r
}

// WithClock overrides the run timestamp source. Used by tests.
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

// Trigger executes one refresh run. It returns OutcomeBusy immediately if
// a run is already in flight, OutcomeFailed (with the cause) when the run
// could not produce an artifact, and OutcomeCompleted otherwise.
func (r *Runner) Trigger(ctx context.Context) (Outcome, error) {
	if !r.mu.TryLock() {
		r.logger.Warn("Refresh rejected, run already in progress")
		return OutcomeBusy, nil
	}
	defer r.mu.Unlock()

	r.running.Store(true)
	defer r.running.Store(false)

	start := r.now()
	r.logger.Info("Refresh run started")

	records := r.collectRecords(ctx)
	readings := r.fetcher.FetchBenchmarks(ctx, r.universe.Benchmarks)
	verdict, positive := report.Verdict(readings)

	artifact, err := r.assembler.Build(records, readings, r.universe.Macro)
	if err != nil {
		r.logger.WithError(err).Error("Refresh run failed before artifact assembly completed")
		r.publishFailure(err)
		return OutcomeFailed, err
	}

	if err := r.notifier.Send(artifact.Path, artifact.GeneratedAt, verdict, records); err != nil {
		// Delivery is best-effort; the run already produced its artifact.
		r.logger.WithError(err).Warn("Dashboard notification failed")
	}

	r.state.Store(&Snapshot{
		Status:        StatusReady,
		GeneratedAt:   artifact.GeneratedAt,
		Verdict:       verdict,
		PositiveCount: positive,
		Readings:      readings,
		Records:       records,
		Macro:         r.universe.Macro,
		ArtifactPath:  artifact.Path,
		LatestPath:    artifact.LatestPath,
	})

	r.logger.WithFields(map[string]interface{}{
		"verdict":  verdict,
		"records":  len(records),
		"duration": r.now().Sub(start).String(),
	}).Info("Refresh run completed")

	return OutcomeCompleted, nil
}

// collectRecords fetches and scores every configured instrument. A failed
// fetch degrades that instrument to an all-zero record; the batch never
// shrinks.
func (r *Runner) collectRecords(ctx context.Context) []contracts.RankedRecord {
	results := r.fetcher.FetchQuotes(ctx, r.universe.Symbols())

	bySymbol := make(map[string]market.QuoteResult, len(results))
	for _, res := range results {
		bySymbol[res.Symbol] = res
	}

	records := make([]contracts.RankedRecord, 0, len(r.universe.Instruments))
	for _, inst := range r.universe.Instruments {
		res, ok := bySymbol[inst.Symbol]

		var snap contracts.MarketSnapshot
		if !ok || res.Err != nil || res.Quote == nil {
			snap = normalize.Degraded()
			r.logger.WithField("symbol", inst.Symbol).Warn("Instrument degraded for this run")
		} else {
			snap = normalize.Resolve(res.Quote)
			// universe override files may omit display names; fall back
			// to the upstream short name
			if inst.Name == "" && res.Quote.Name != nil {
				inst.Name = *res.Quote.Name
			}
		}

		records = append(records, contracts.RankedRecord{
			Instrument: inst,
			Snapshot:   snap,
			Scores:     scoring.Score(snap),
		})
	}

	return scoring.Rank(records)
}

// publishFailure records the failure while keeping the previous Ready
// snapshot's data visible to readers.
func (r *Runner) publishFailure(cause error) {
	prev := r.state.Load()
	next := *prev
	next.Status = StatusFailed
	next.LastError = cause.Error()
	r.state.Store(&next)
}
