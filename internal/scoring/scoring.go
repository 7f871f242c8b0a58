// Package scoring turns normalized market snapshots into bounded composite
// scores and ranks instruments by opportunity. Every function here is pure:
// same snapshot in, same breakdown out.
package scoring

import (
	"math"
	"sort"

	"github.com/elcap/swingdash/internal/contracts"
)

// Subscore caps. Each dimension is bounded independently so one noisy
// input (an extreme beta, a split-distorted volume) cannot dominate the
// composite.
const (
	maxVolatility = 35
	maxMomentum   = 35
	maxLiquidity  = 30
	maxComposite  = 100

	// liquidityFloor is assigned when average volume is unknown or zero:
	// the instrument still trades, we just could not measure how much.
	liquidityFloor = 5

	// highlightRanks marks the top rows of the ranked section.
	highlightRanks = 3
)

// Score computes the breakdown for one snapshot. Degraded snapshots score
// zero everywhere so fetch failures sort to the bottom without being
// dropped from the report.
func Score(snap contracts.MarketSnapshot) contracts.ScoreBreakdown {
	if snap.Degraded {
		return contracts.ScoreBreakdown{}
	}

	rangePct := safeRatio(snap.High52-snap.Low52, snap.Low52)
	intradayPct := safeRatio(snap.DayHigh-snap.DayLow, snap.DayLow)

	vol := clamp(int(snap.Beta*8+rangePct*10+intradayPct*200), maxVolatility)
	mom := clamp(int(math.Abs(snap.ThreeMonthPct)*40+math.Abs(snap.DailyPct)*150), maxMomentum)

	liq := liquidityFloor
	if snap.AvgVolumeM > 0 {
		liq = clamp(int(snap.AvgVolumeM*0.3+5), maxLiquidity)
	}

	composite := vol + mom + liq
	if composite > maxComposite {
		composite = maxComposite
	}

	return contracts.ScoreBreakdown{
		Volatility: vol,
		Momentum:   mom,
		Liquidity:  liq,
		Composite:  composite,
	}
}

// Rank orders records by composite score descending and assigns 1-based
// ranks. The sort is stable: instruments with equal composites keep their
// configured order, which makes the ranking reproducible run to run.
func Rank(records []contracts.RankedRecord) []contracts.RankedRecord {
	ranked := make([]contracts.RankedRecord, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Scores.Composite > ranked[j].Scores.Composite
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].Highlight = ranked[i].Rank <= highlightRanks
	}
	return ranked
}

// clamp truncates toward zero via the int conversion at the call site and
// bounds the result to [0, max].
func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func safeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
