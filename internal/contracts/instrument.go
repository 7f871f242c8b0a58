package contracts

// Instrument is static reference data for one tracked symbol.
type Instrument struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	Name   string `json:"name" yaml:"name"`
	Sector string `json:"sector" yaml:"sector"`
}

// Benchmark is one index/future tracked for the overview section.
// Volatility marks fear-gauge style instruments, which classify on the
// direction of the level change rather than on percentage thresholds.
type Benchmark struct {
	Symbol     string `json:"symbol" yaml:"symbol"`
	Name       string `json:"name" yaml:"name"`
	Volatility bool   `json:"volatility" yaml:"volatility"`
}

// MacroContext is a static macro/policy block rendered into the overview
// section as-is. The report never interprets these values.
type MacroContext struct {
	FedRate       string `json:"fed_rate" yaml:"fed_rate"`
	FedStatus     string `json:"fed_status" yaml:"fed_status"`
	NextFOMC      string `json:"next_fomc" yaml:"next_fomc"`
	MarketExpects string `json:"market_expects" yaml:"market_expects"`
	OverallMarket string `json:"overall_market" yaml:"overall_market"`
}
