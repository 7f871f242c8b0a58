package universe

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/elcap/swingdash/internal/contracts"
)

// Universe is the full set of tracked instruments and benchmarks plus the
// static macro-context block rendered into every report.
type Universe struct {
	Instruments []contracts.Instrument `yaml:"instruments"`
	Benchmarks  []contracts.Benchmark  `yaml:"benchmarks"`
	Macro       contracts.MacroContext `yaml:"macro"`
}

// Symbols returns the instrument symbols in configured order. Ranking
// tie-breaks depend on this order being stable.
func (u *Universe) Symbols() []string {
	symbols := make([]string, 0, len(u.Instruments))
	for _, inst := range u.Instruments {
		symbols = append(symbols, inst.Symbol)
	}
	return symbols
}

// Default returns the built-in universe: ten NASDAQ large caps with high
// swing potential plus seven index/futures benchmarks.
func Default() *Universe {
	return &Universe{
		Instruments: []contracts.Instrument{
			{Symbol: "NVDA", Name: "NVIDIA Corporation", Sector: "Semiconductors"},
			{Symbol: "MSTR", Name: "MicroStrategy Incorporated", Sector: "Crypto / Software"},
			{Symbol: "PLTR", Name: "Palantir Technologies Inc.", Sector: "AI / Software"},
			{Symbol: "TSLA", Name: "Tesla, Inc.", Sector: "EV / Automotive"},
			{Symbol: "AMD", Name: "Advanced Micro Devices, Inc.", Sector: "Semiconductors"},
			{Symbol: "AVGO", Name: "Broadcom Inc.", Sector: "Semiconductors"},
			{Symbol: "PANW", Name: "Palo Alto Networks, Inc.", Sector: "Cybersecurity"},
			{Symbol: "CRWD", Name: "CrowdStrike Holdings, Inc.", Sector: "Cybersecurity"},
			{Symbol: "MU", Name: "Micron Technology, Inc.", Sector: "Semiconductors"},
			{Symbol: "NFLX", Name: "Netflix, Inc.", Sector: "Streaming / Media"},
		},
		Benchmarks: []contracts.Benchmark{
			{Symbol: "ES=F", Name: "S&P 500 Futures"},
			{Symbol: "NQ=F", Name: "Nasdaq 100 Futures"},
			{Symbol: "YM=F", Name: "Dow Futures"},
			{Symbol: "RTY=F", Name: "Russell 2000 Futures"},
			{Symbol: "^VIX", Name: "VIX (Fear Index)", Volatility: true},
			{Symbol: "^TNX", Name: "10-Year Treasury Yield"},
			{Symbol: "DX-Y.NYB", Name: "US Dollar Index (DXY)"},
		},
		Macro: contracts.MacroContext{
			FedRate:       "3.50% - 3.75%",
			FedStatus:     "Rates held steady at Jan 27-28 meeting. 2 dissents favored a cut.",
			NextFOMC:      "March 17-18, 2026",
			MarketExpects: "93% probability rates held in March; ~65bps of cuts priced for 2026",
			OverallMarket: "BULL MARKET — S&P 500 near all-time highs",
		},
	}
}

// Load reads a YAML universe file, falling back to the built-in default
// when the path is empty or the file does not exist. A partial file only
// overrides the sections it provides.
func Load(path string) (*Universe, error) {
	uni := Default()
	if path == "" {
		return uni, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return uni, nil
		}
		return nil, fmt.Errorf("read universe file: %w", err)
	}

	var override Universe
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse universe file: %w", err)
	}

	if len(override.Instruments) > 0 {
		uni.Instruments = override.Instruments
	}
	if len(override.Benchmarks) > 0 {
		uni.Benchmarks = override.Benchmarks
	}
	if override.Macro != (contracts.MacroContext{}) {
		uni.Macro = override.Macro
	}

	if err := uni.validate(); err != nil {
		return nil, fmt.Errorf("universe file %s: %w", path, err)
	}

	return uni, nil
}

func (u *Universe) validate() error {
	if len(u.Instruments) == 0 {
		return fmt.Errorf("no instruments configured")
	}

	seen := make(map[string]bool, len(u.Instruments))
	for _, inst := range u.Instruments {
		if inst.Symbol == "" {
			return fmt.Errorf("instrument with empty symbol")
		}
		if seen[inst.Symbol] {
			return fmt.Errorf("duplicate instrument symbol %s", inst.Symbol)
		}
		seen[inst.Symbol] = true
	}

	for _, b := range u.Benchmarks {
		if b.Symbol == "" {
			return fmt.Errorf("benchmark with empty symbol")
		}
	}

	return nil
}
