package market

import (
	"context"
	"time"
)

// RawQuote is the loosely-populated upstream view of one symbol. Every
// numeric field is optional; the normalizer resolves them through ordered
// fallback chains, so nil here never propagates past normalization.
type RawQuote struct {
	Symbol string
	Name   *string

	Price     *float64 // last trade price
	PrevClose *float64

	DayHigh *float64
	DayLow  *float64
	High52  *float64
	Low52   *float64

	AvgVolume *float64 // shares
	MarketCap *float64 // dollars
	Beta      *float64

	// HistoricalClose is the first close found within the look-back
	// window (~90 days back, 5-day tolerance). Nil when no trade exists
	// in the window.
	HistoricalClose *float64
}

// QuoteResult pairs a symbol with either its quote or the error that
// prevented fetching it. A batch always yields one result per symbol.
type QuoteResult struct {
	Symbol string
	Quote  *RawQuote
	Err    error
}

// Provider fetches raw market data for a single symbol.
type Provider interface {
	// Quote returns the current quote for a symbol.
	Quote(ctx context.Context, symbol string) (*RawQuote, error)

	// HistoricalClose returns the first close traded within [around,
	// around+window), or nil when the window holds no trades.
	HistoricalClose(ctx context.Context, symbol string, around time.Time, window time.Duration) (*float64, error)
}
