// Package report assembles the two-sheet xlsx dashboard artifact: a market
// overview (benchmark readings, verdict, macro block) and the ranked swing
// trade table.
package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/elcap/swingdash/internal/contracts"
	"github.com/elcap/swingdash/pkg/logger"
)

const (
	sheetOverview = "Market Overview"
	sheetRanked   = "Top 10 Swing Trades"

	// latestName is the stable alias rewritten after every successful
	// assembly. Timestamped artifacts from prior runs are never touched.
	latestName = "latest.xlsx"
)

// Verdict labels for the overview section.
const (
	VerdictBullish = "BULLISH"
	VerdictMixed   = "MIXED"
	VerdictBearish = "BEARISH"
)

// Artifact identifies one assembled workbook on disk.
type Artifact struct {
	Path        string    `json:"path"`
	LatestPath  string    `json:"latest_path"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Assembler writes dashboard workbooks into a fixed output directory.
type Assembler struct {
	outputDir string
	logger    *logger.Logger
	now       func() time.Time
}

func NewAssembler(outputDir string, log *logger.Logger) *Assembler {
	return &Assembler{
		outputDir: outputDir,
		logger:    log.WithField("component", "report"),
		now:       time.Now,
	}
}

// WithClock overrides the timestamp source. Used by tests.
func (a *Assembler) WithClock(now func() time.Time) *Assembler {
	a.now = now
	return a
}

// Verdict counts positive-leaning signals and derives the overview label:
// at least 4 of the configured indicators leaning positive reads bullish,
// at least 2 mixed, fewer bearish.
func Verdict(readings []contracts.IndicatorReading) (string, int) {
	positive := 0
	for _, r := range readings {
		if r.Signal.PositiveLeaning() {
			positive++
		}
	}
	switch {
	case positive >= 4:
		return VerdictBullish, positive
	case positive >= 2:
		return VerdictMixed, positive
	default:
		return VerdictBearish, positive
	}
}

// Build assembles the workbook and writes both the timestamped artifact and
// the latest alias. The timestamped file is written first so the alias
// never points at a name that does not exist.
func (a *Assembler) Build(records []contracts.RankedRecord, readings []contracts.IndicatorReading, macro contracts.MacroContext) (*Artifact, error) {
	generatedAt := a.now()

	if err := os.MkdirAll(a.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyleSet(f)
	if err != nil {
		return nil, fmt.Errorf("build styles: %w", err)
	}

	if err := f.SetSheetName("Sheet1", sheetOverview); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetRanked); err != nil {
		return nil, err
	}

	if err := a.writeOverview(f, st, readings, macro, generatedAt); err != nil {
		return nil, fmt.Errorf("overview sheet: %w", err)
	}
	if err := a.writeRanked(f, st, records); err != nil {
		return nil, fmt.Errorf("ranked sheet: %w", err)
	}

	name := fmt.Sprintf("swing_dashboard_%s.xlsx", generatedAt.Format("20060102_1504"))
	path := filepath.Join(a.outputDir, name)
	latest := filepath.Join(a.outputDir, latestName)

	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("save artifact: %w", err)
	}
	if err := f.SaveAs(latest); err != nil {
		return nil, fmt.Errorf("save latest alias: %w", err)
	}

	a.logger.WithFields(map[string]interface{}{
		"artifact": path,
		"rows":     len(records),
	}).Info("Dashboard artifact written")

	return &Artifact{Path: path, LatestPath: latest, GeneratedAt: generatedAt}, nil
}

func (a *Assembler) writeOverview(f *excelize.File, st *styleSet, readings []contracts.IndicatorReading, macro contracts.MacroContext, generatedAt time.Time) error {
	set := func(col, row int, v interface{}, style int) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetOverview, cell, v); err != nil {
			return err
		}
		if style != 0 {
			return f.SetCellStyle(sheetOverview, cell, cell, style)
		}
		return nil
	}

	if err := f.MergeCell(sheetOverview, "A1", "E1"); err != nil {
		return err
	}
	if err := set(1, 1, "MARKET OVERVIEW", st.title); err != nil {
		return err
	}
	if err := set(1, 2, "Generated: "+generatedAt.Format("Jan 2, 2006 3:04 PM MST"), 0); err != nil {
		return err
	}

	row := 4
	for col, h := range []string{"Index/Future", "Level", "Change", "% Change", "Signal"} {
		if err := set(col+1, row, h, st.header); err != nil {
			return err
		}
	}

	for _, r := range readings {
		row++
		if err := set(1, row, r.Name, 0); err != nil {
			return err
		}
		if err := set(2, row, r.Level, st.number); err != nil {
			return err
		}
		if err := set(3, row, r.Change, st.number); err != nil {
			return err
		}
		if err := set(4, row, fmt.Sprintf("%+.2f%%", r.ChangePct), 0); err != nil {
			return err
		}
		if err := set(5, row, string(r.Signal), 0); err != nil {
			return err
		}
	}

	verdict, positive := Verdict(readings)
	row += 2
	if err := set(1, row, fmt.Sprintf("MARKET VERDICT: %s (%d/%d positive)", verdict, positive, len(readings)), st.verdict); err != nil {
		return err
	}

	row += 2
	if err := set(1, row, "MACRO CONTEXT", st.header); err != nil {
		return err
	}
	for _, kv := range [][2]string{
		{"Fed Rate", macro.FedRate},
		{"Fed Status", macro.FedStatus},
		{"Next FOMC", macro.NextFOMC},
		{"Market Expects", macro.MarketExpects},
		{"Overall Market", macro.OverallMarket},
	} {
		row++
		if err := set(1, row, kv[0], 0); err != nil {
			return err
		}
		if err := set(2, row, kv[1], 0); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheetOverview, "A", "A", 24)
}

// rankedHeaders is the contractual column set of the ranked sheet. Order
// matters: downstream consumers parse the artifact positionally.
var rankedHeaders = []string{
	"Rank", "Ticker", "Company", "Sector",
	"Current Price", "Prev Close", "3-Mo Ago Price",
	"Daily % Chg", "3-Month % Chg",
	"Market Cap ($B)", "Avg Vol (M)",
	"Swing Score", "Vol Score", "Mom Score", "Liq Score",
	"52wk Range",
}

func (a *Assembler) writeRanked(f *excelize.File, st *styleSet, records []contracts.RankedRecord) error {
	for col, h := range rankedHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetRanked, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetRanked, cell, cell, st.header); err != nil {
			return err
		}
	}

	for i, r := range records {
		row := i + 2
		s := r.Snapshot

		values := []interface{}{
			r.Rank,
			r.Instrument.Symbol,
			r.Instrument.Name,
			r.Instrument.Sector,
			round2(s.Current),
			round2(s.PrevClose),
			round2(s.Historical),
			round4(s.DailyPct),
			round4(s.ThreeMonthPct),
			round2(s.MarketCapB),
			round2(s.AvgVolumeM),
			r.Scores.Composite,
			r.Scores.Volatility,
			r.Scores.Momentum,
			r.Scores.Liquidity,
			fmt.Sprintf("$%.2f – $%.2f", s.Low52, s.High52),
		}
		styles := []int{
			st.pick(0, r.Highlight),
			st.pick(0, r.Highlight),
			st.pick(0, r.Highlight),
			st.pick(0, r.Highlight),
			st.pick(st.price, r.Highlight),
			st.pick(st.price, r.Highlight),
			st.pick(st.price, r.Highlight),
			st.pick(st.percent, r.Highlight),
			st.pick(st.percent, r.Highlight),
			st.pick(st.number, r.Highlight),
			st.pick(st.number, r.Highlight),
			st.pick(0, r.Highlight),
			st.pick(0, r.Highlight),
			st.pick(0, r.Highlight),
			st.pick(0, r.Highlight),
			st.pick(0, r.Highlight),
		}

		for col := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetRanked, cell, values[col]); err != nil {
				return err
			}
			if styles[col] != 0 {
				if err := f.SetCellStyle(sheetRanked, cell, cell, styles[col]); err != nil {
					return err
				}
			}
		}
	}

	return f.SetColWidth(sheetRanked, "C", "C", 26)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
