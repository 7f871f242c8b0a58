package contracts

// Signal is the categorical classification of one benchmark reading.
type Signal string

const (
	SignalBullish         Signal = "BULLISH"
	SignalSlightlyBullish Signal = "SLIGHTLY BULLISH"
	SignalNeutral         Signal = "NEUTRAL"
	SignalBearish         Signal = "BEARISH"
	SignalDecreasingFear  Signal = "DECREASING FEAR"
	SignalIncreasingFear  Signal = "INCREASING FEAR"
	SignalUnavailable     Signal = "N/A"
)

// PositiveLeaning reports whether the signal counts toward the bullish
// side of the overview verdict.
func (s Signal) PositiveLeaning() bool {
	return s == SignalBullish || s == SignalSlightlyBullish || s == SignalDecreasingFear
}

// IndicatorReading is one benchmark row of the overview section.
type IndicatorReading struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Level     float64 `json:"level"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"pct"` // percent, not fraction
	Signal    Signal  `json:"signal"`
}
