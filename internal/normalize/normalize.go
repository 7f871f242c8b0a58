// Package normalize resolves raw, partially-missing quote payloads into
// fully concrete market snapshots. Every field goes through an ordered
// fallback chain, so no missing-value condition ever surfaces upward.
package normalize

import (
	"github.com/elcap/swingdash/internal/contracts"
	"github.com/elcap/swingdash/internal/market"
)

// historicalFallbackRatio synthesizes a conservative baseline when no
// close exists in the look-back window, keeping momentum computable.
const historicalFallbackRatio = 0.85

// Resolve converts a raw quote into a concrete snapshot.
//
// Fallback chains:
//
//	current    = price, else prev close, else 0
//	prev close = prev close, else current
//	historical = historical close, else current x 0.85
//	day/52wk range bounds = field, else current
//	beta       = beta, else 1.0
//	cap/volume = field, else 0
//
// Percentage derivations guard the denominator: a zero reference price
// yields 0, never an error.
func Resolve(raw *market.RawQuote) contracts.MarketSnapshot {
	current := orElse(raw.Price, orElse(raw.PrevClose, 0))
	prevClose := orElse(raw.PrevClose, current)
	historical := orElse(raw.HistoricalClose, current*historicalFallbackRatio)

	snap := contracts.MarketSnapshot{
		Current:    current,
		PrevClose:  prevClose,
		Historical: historical,

		DayHigh: orElse(raw.DayHigh, current),
		DayLow:  orElse(raw.DayLow, current),
		High52:  orElse(raw.High52, current),
		Low52:   orElse(raw.Low52, current),

		AvgVolumeM: orElse(raw.AvgVolume, 0) / 1e6,
		MarketCapB: orElse(raw.MarketCap, 0) / 1e9,
		Beta:       orElse(raw.Beta, 1.0),

		DailyPct:      pctChange(current, prevClose),
		ThreeMonthPct: pctChange(current, historical),
	}

	return snap
}

// Degraded builds the snapshot for an instrument whose fetch failed: all
// prices zero, beta 1, marked so scoring zeroes the breakdown. The record
// stays in the run output rather than leaving a gap.
func Degraded() contracts.MarketSnapshot {
	return contracts.MarketSnapshot{
		Beta:     1.0,
		Degraded: true,
	}
}

// pctChange returns (current-reference)/reference as a fraction, or 0
// when the reference is 0.
func pctChange(current, reference float64) float64 {
	if reference == 0 {
		return 0
	}
	return (current - reference) / reference
}

func orElse(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}
