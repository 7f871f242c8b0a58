package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elcap/swingdash/internal/contracts"
)

func TestScoreKnownBreakdown(t *testing.T) {
	// beta 1.5 -> 12, 52wk range 50% -> 5, intraday 5% -> 10: volatility 27
	// |3mo| 0.10 -> 4, |daily| 0.02 -> 3: momentum 7
	// 20M avg volume -> 6 + 5: liquidity 11
	snap := contracts.MarketSnapshot{
		Beta:          1.5,
		High52:        120,
		Low52:         80,
		DayHigh:       105,
		DayLow:        100,
		ThreeMonthPct: 0.10,
		DailyPct:      0.02,
		AvgVolumeM:    20,
	}

	got := Score(snap)

	assert.Equal(t, 27, got.Volatility)
	assert.Equal(t, 7, got.Momentum)
	assert.Equal(t, 11, got.Liquidity)
	assert.Equal(t, 45, got.Composite)
}

func TestScoreDegraded(t *testing.T) {
	snap := contracts.MarketSnapshot{
		Beta:       1.5,
		AvgVolumeM: 50,
		Degraded:   true,
	}

	assert.Equal(t, contracts.ScoreBreakdown{}, Score(snap))
}

func TestScoreCaps(t *testing.T) {
	snap := contracts.MarketSnapshot{
		Beta:          10,   // 80 raw, capped at 35
		High52:        400,  // +range
		Low52:         100,  // range_pct 3.0 -> 30 raw
		DayHigh:       110,  //
		DayLow:        100,  // intraday 10% -> 20 raw
		ThreeMonthPct: 2.0,  // 80 raw, capped at 35
		DailyPct:      1.0,  // +150 raw
		AvgVolumeM:    1000, // 305 raw, capped at 30
	}

	got := Score(snap)

	assert.Equal(t, 35, got.Volatility)
	assert.Equal(t, 35, got.Momentum)
	assert.Equal(t, 30, got.Liquidity)
	assert.Equal(t, 100, got.Composite)
}

func TestScoreLiquidityFloor(t *testing.T) {
	got := Score(contracts.MarketSnapshot{AvgVolumeM: 0, Beta: 1})
	assert.Equal(t, 5, got.Liquidity)
}

func TestScoreNegativeSubscoreClamped(t *testing.T) {
	got := Score(contracts.MarketSnapshot{Beta: -3})
	assert.Equal(t, 0, got.Volatility, "negative beta must not drive the subscore below zero")
}

func TestScoreZeroLowGuards(t *testing.T) {
	snap := contracts.MarketSnapshot{Beta: 1, Low52: 0, High52: 100, DayLow: 0, DayHigh: 50}
	got := Score(snap)
	assert.Equal(t, 8, got.Volatility, "zero range lows contribute nothing")
}

func TestScoreMomentumUsesAbsoluteValues(t *testing.T) {
	up := Score(contracts.MarketSnapshot{ThreeMonthPct: 0.5, DailyPct: 0.05})
	down := Score(contracts.MarketSnapshot{ThreeMonthPct: -0.5, DailyPct: -0.05})
	assert.Equal(t, up.Momentum, down.Momentum)
}

func TestScoreTruncatesTowardZero(t *testing.T) {
	// raw volatility 1.9*8 = 15.2 -> 15, not 16
	got := Score(contracts.MarketSnapshot{Beta: 1.9})
	assert.Equal(t, 15, got.Volatility)
}

func rec(symbol string, composite int) contracts.RankedRecord {
	return contracts.RankedRecord{
		Instrument: contracts.Instrument{Symbol: symbol},
		Scores:     contracts.ScoreBreakdown{Composite: composite},
	}
}

func TestRankOrdersByCompositeDescending(t *testing.T) {
	records := []contracts.RankedRecord{
		rec("AAA", 40),
		rec("BBB", 90),
		rec("CCC", 10),
		rec("DDD", 65),
	}

	ranked := Rank(records)

	want := []string{"BBB", "DDD", "AAA", "CCC"}
	for i, r := range ranked {
		assert.Equal(t, want[i], r.Instrument.Symbol)
		assert.Equal(t, i+1, r.Rank)
	}
}

func TestRankTiesKeepConfiguredOrder(t *testing.T) {
	records := []contracts.RankedRecord{
		rec("AAA", 50),
		rec("BBB", 50),
		rec("CCC", 80),
		rec("DDD", 50),
	}

	ranked := Rank(records)

	want := []string{"CCC", "AAA", "BBB", "DDD"}
	for i, r := range ranked {
		assert.Equal(t, want[i], r.Instrument.Symbol, "tied composites keep input order")
	}
}

func TestRankHighlightsTopThree(t *testing.T) {
	records := []contracts.RankedRecord{
		rec("AAA", 10), rec("BBB", 20), rec("CCC", 30), rec("DDD", 40), rec("EEE", 50),
	}

	ranked := Rank(records)

	for _, r := range ranked {
		assert.Equal(t, r.Rank <= 3, r.Highlight, "symbol %s", r.Instrument.Symbol)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	records := []contracts.RankedRecord{rec("AAA", 10), rec("BBB", 20)}

	_ = Rank(records)

	assert.Equal(t, "AAA", records[0].Instrument.Symbol)
	assert.Zero(t, records[0].Rank)
}

func TestRankDegradedSortsToBottom(t *testing.T) {
	records := []contracts.RankedRecord{
		{Instrument: contracts.Instrument{Symbol: "DEAD"}, Snapshot: contracts.MarketSnapshot{Degraded: true}},
		rec("LIVE", 12),
	}
	records[0].Scores = Score(records[0].Snapshot)

	ranked := Rank(records)

	assert.Equal(t, "LIVE", ranked[0].Instrument.Symbol)
	assert.Equal(t, "DEAD", ranked[1].Instrument.Symbol)
	assert.Zero(t, ranked[1].Scores.Composite)
}
