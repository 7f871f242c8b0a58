package contracts

// MarketSnapshot is the fully resolved per-instrument view for one run.
// Every field is concrete; the normalizer has already applied the
// fallback chains, so consumers never see a missing value.
type MarketSnapshot struct {
	Current    float64 `json:"current"`
	PrevClose  float64 `json:"prev_close"`
	Historical float64 `json:"historical"` // close ~90 days back

	DayHigh float64 `json:"day_high"`
	DayLow  float64 `json:"day_low"`
	High52  float64 `json:"high_52wk"`
	Low52   float64 `json:"low_52wk"`

	AvgVolumeM float64 `json:"avg_volume_m"` // millions of shares
	MarketCapB float64 `json:"market_cap_b"` // billions of dollars
	Beta       float64 `json:"beta"`

	DailyPct      float64 `json:"daily_pct"`       // fraction, not percent
	ThreeMonthPct float64 `json:"three_month_pct"` // fraction, not percent

	// Degraded marks a snapshot synthesized after a failed fetch. Degraded
	// records score zero across the board but are never dropped.
	Degraded bool `json:"degraded"`
}

// ScoreBreakdown is the bounded composite score for one instrument.
type ScoreBreakdown struct {
	Volatility int `json:"volatility"` // capped at 35
	Momentum   int `json:"momentum"`   // capped at 35
	Liquidity  int `json:"liquidity"`  // capped at 30
	Composite  int `json:"composite"`  // sum, capped at 100
}

// RankedRecord is one row of the ranked section.
type RankedRecord struct {
	Rank       int            `json:"rank"` // 1-based, dense
	Instrument Instrument     `json:"instrument"`
	Snapshot   MarketSnapshot `json:"snapshot"`
	Scores     ScoreBreakdown `json:"scores"`

	// Highlight flags the top-3 rows. Part of the row contract: report
	// consumers branch on it, it is not cosmetic.
	Highlight bool `json:"highlight"`
}

// IsTopRanked checks if the record is in the top N ranks.
func (r *RankedRecord) IsTopRanked(n int) bool {
	return r.Rank <= n && r.Rank > 0
}
