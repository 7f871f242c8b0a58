package market

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elcap/swingdash/internal/contracts"
	"github.com/elcap/swingdash/pkg/logger"
)

// fakeProvider returns canned quotes per symbol and errors for the rest.
type fakeProvider struct {
	quotes     map[string]*RawQuote
	historical map[string]float64
	histErr    error
}

func (f *fakeProvider) Quote(_ context.Context, symbol string) (*RawQuote, error) {
	q, ok := f.quotes[symbol]
	if !ok {
		return nil, errors.New("symbol unavailable")
	}
	return q, nil
}

func (f *fakeProvider) HistoricalClose(_ context.Context, symbol string, _ time.Time, _ time.Duration) (*float64, error) {
	if f.histErr != nil {
		return nil, f.histErr
	}
	if v, ok := f.historical[symbol]; ok {
		return &v, nil
	}
	return nil, nil
}

func f64(v float64) *float64 { return &v }

func testClient(p Provider) *Client {
	return NewClient(p, logger.NewWriter(io.Discard), time.Second)
}

func TestFetchQuotesOneResultPerSymbol(t *testing.T) {
	provider := &fakeProvider{
		quotes: map[string]*RawQuote{
			"NVDA": {Symbol: "NVDA", Price: f64(187.5), PrevClose: f64(185.0)},
			"AMD":  {Symbol: "AMD", Price: f64(152.3)},
		},
		historical: map[string]float64{"NVDA": 120.0},
	}

	client := testClient(provider)
	results := client.FetchQuotes(context.Background(), []string{"NVDA", "DEAD", "AMD"})

	require.Len(t, results, 3, "one result per requested symbol")

	assert.Equal(t, "NVDA", results[0].Symbol)
	require.NoError(t, results[0].Err)
	require.NotNil(t, results[0].Quote.HistoricalClose)
	assert.Equal(t, 120.0, *results[0].Quote.HistoricalClose)

	assert.Equal(t, "DEAD", results[1].Symbol)
	assert.Error(t, results[1].Err)
	assert.Nil(t, results[1].Quote)

	assert.Equal(t, "AMD", results[2].Symbol)
	require.NoError(t, results[2].Err)
	assert.Nil(t, results[2].Quote.HistoricalClose, "no trade in window leaves historical nil")
}

func TestFetchQuotesHistoricalFailureIsNotFatal(t *testing.T) {
	provider := &fakeProvider{
		quotes: map[string]*RawQuote{
			"NVDA": {Symbol: "NVDA", Price: f64(187.5)},
		},
		histErr: errors.New("chart endpoint down"),
	}

	results := testClient(provider).FetchQuotes(context.Background(), []string{"NVDA"})

	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Nil(t, results[0].Quote.HistoricalClose)
}

func TestFetchBenchmarksPlaceholderOnError(t *testing.T) {
	provider := &fakeProvider{
		quotes: map[string]*RawQuote{
			"ES=F": {Symbol: "ES=F", Price: f64(6100.0), PrevClose: f64(6050.0)},
		},
	}

	client := testClient(provider)
	readings := client.FetchBenchmarks(context.Background(), []contracts.Benchmark{
		{Symbol: "ES=F", Name: "S&P 500 Futures"},
		{Symbol: "^XXX", Name: "Broken Index"},
	})

	require.Len(t, readings, 2, "one reading per configured benchmark")

	assert.Equal(t, contracts.SignalBullish, readings[0].Signal)
	assert.Equal(t, "Broken Index", readings[1].Name)
	assert.Equal(t, contracts.SignalUnavailable, readings[1].Signal)
	assert.Zero(t, readings[1].Level)
}

func TestClassifyDirectionalThresholds(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		prev  float64
		want  contracts.Signal
	}{
		{"strong move up", 1004.0, 1000.0, contracts.SignalBullish},          // +0.40%
		{"mild move up", 1002.0, 1000.0, contracts.SignalSlightlyBullish},    // +0.20%
		{"small move down", 998.0, 1000.0, contracts.SignalNeutral},          // -0.20%
		{"strong move down", 995.0, 1000.0, contracts.SignalBearish},         // -0.50%
		{"boundary at threshold", 1003.0, 1000.0, contracts.SignalSlightlyBullish}, // exactly +0.30%
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reading := classify(contracts.Benchmark{Symbol: "X", Name: "X"}, &RawQuote{
				Price:     f64(tt.price),
				PrevClose: f64(tt.prev),
			})
			assert.Equal(t, tt.want, reading.Signal)
		})
	}
}

func TestClassifyVolatilityGauge(t *testing.T) {
	vix := contracts.Benchmark{Symbol: "^VIX", Name: "VIX (Fear Index)", Volatility: true}

	down := classify(vix, &RawQuote{Price: f64(14.2), PrevClose: f64(15.0)})
	assert.Equal(t, contracts.SignalDecreasingFear, down.Signal)

	up := classify(vix, &RawQuote{Price: f64(16.4), PrevClose: f64(15.0)})
	assert.Equal(t, contracts.SignalIncreasingFear, up.Signal)
}

func TestClassifyZeroPrevClose(t *testing.T) {
	reading := classify(contracts.Benchmark{Symbol: "X", Name: "X"}, &RawQuote{
		Price: f64(100.0),
	})

	// prev falls back to level, so change and pct stay zero
	assert.Equal(t, 100.0, reading.Level)
	assert.Zero(t, reading.Change)
	assert.Zero(t, reading.ChangePct)
	assert.Equal(t, contracts.SignalNeutral, reading.Signal)
}

func TestClassifyRounding(t *testing.T) {
	reading := classify(contracts.Benchmark{Symbol: "X", Name: "X"}, &RawQuote{
		Price:     f64(100.006),
		PrevClose: f64(99.994),
	})

	assert.Equal(t, 100.01, reading.Level)
	assert.Equal(t, 0.01, reading.Change)
}
