package market

import (
	"context"
	"math"
	"time"

	"github.com/elcap/swingdash/internal/contracts"
	"github.com/elcap/swingdash/pkg/logger"
)

const (
	// lookBack is the nominal distance of the historical reference close.
	lookBack = 90 * 24 * time.Hour
	// lookBackWindow tolerates weekends/holidays around the look-back date.
	lookBackWindow = 5 * 24 * time.Hour
)

// Client fetches quotes and benchmark readings as partial-failure-tolerant
// batches: the output always carries one entry per requested symbol.
type Client struct {
	provider Provider
	logger   *logger.Logger
	timeout  time.Duration
	now      func() time.Time
}

// NewClient creates a new batch client. timeout bounds each per-symbol
// fetch so one unreachable endpoint degrades one record, not the run.
func NewClient(provider Provider, log *logger.Logger, timeout time.Duration) *Client {
	return &Client{
		provider: provider,
		logger:   log,
		timeout:  timeout,
		now:      time.Now,
	}
}

// WithClock sets a custom clock, used by tests.
func (c *Client) WithClock(now func() time.Time) *Client {
	c.now = now
	return c
}

// FetchQuotes fetches quotes for all symbols. Per-symbol errors are
// captured in the result and never abort the batch.
func (c *Client) FetchQuotes(ctx context.Context, symbols []string) []QuoteResult {
	results := make([]QuoteResult, 0, len(symbols))

	for _, symbol := range symbols {
		results = append(results, c.fetchOne(ctx, symbol))
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	c.logger.WithFields(map[string]interface{}{
		"symbols": len(symbols),
		"failed":  failed,
	}).Info("Quote batch fetched")

	return results
}

func (c *Client) fetchOne(ctx context.Context, symbol string) QuoteResult {
	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	quote, err := c.provider.Quote(cctx, symbol)
	if err != nil {
		c.logger.WithError(err).WithField("symbol", symbol).Warn("Quote fetch failed")
		return QuoteResult{Symbol: symbol, Err: err}
	}

	// Historical close is best-effort: without it the normalizer falls
	// back to its synthetic baseline, so a miss here is not a failure.
	around := c.now().Add(-lookBack)
	hist, err := c.provider.HistoricalClose(cctx, symbol, around, lookBackWindow)
	if err != nil {
		c.logger.WithError(err).WithField("symbol", symbol).Warn("Historical close fetch failed")
	} else {
		quote.HistoricalClose = hist
	}

	return QuoteResult{Symbol: symbol, Quote: quote}
}

// FetchBenchmarks fetches one reading per configured benchmark. Errors
// yield a placeholder reading with an unavailable signal.
func (c *Client) FetchBenchmarks(ctx context.Context, benchmarks []contracts.Benchmark) []contracts.IndicatorReading {
	readings := make([]contracts.IndicatorReading, 0, len(benchmarks))

	for _, bench := range benchmarks {
		cctx, cancel := context.WithTimeout(ctx, c.timeout)
		quote, err := c.provider.Quote(cctx, bench.Symbol)
		cancel()

		if err != nil {
			c.logger.WithError(err).WithField("symbol", bench.Symbol).Warn("Benchmark fetch failed")
			readings = append(readings, contracts.IndicatorReading{
				Symbol: bench.Symbol,
				Name:   bench.Name,
				Signal: contracts.SignalUnavailable,
			})
			continue
		}

		readings = append(readings, classify(bench, quote))
	}

	return readings
}

// classify derives the categorical signal for one benchmark reading.
func classify(bench contracts.Benchmark, quote *RawQuote) contracts.IndicatorReading {
	level := orElse(quote.Price, orElse(quote.PrevClose, 0))
	prev := orElse(quote.PrevClose, level)

	change := level - prev
	pct := 0.0
	if prev != 0 {
		pct = change / prev * 100
	}

	var signal contracts.Signal
	switch {
	case bench.Volatility:
		// fear gauge: direction matters, not magnitude
		if change < 0 {
			signal = contracts.SignalDecreasingFear
		} else {
			signal = contracts.SignalIncreasingFear
		}
	case pct > 0.3:
		signal = contracts.SignalBullish
	case pct > 0:
		signal = contracts.SignalSlightlyBullish
	case pct > -0.3:
		signal = contracts.SignalNeutral
	default:
		signal = contracts.SignalBearish
	}

	return contracts.IndicatorReading{
		Symbol:    bench.Symbol,
		Name:      bench.Name,
		Level:     round2(level),
		Change:    round2(change),
		ChangePct: round2(pct),
		Signal:    signal,
	}
}

func orElse(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
