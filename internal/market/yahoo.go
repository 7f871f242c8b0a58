package market

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/elcap/swingdash/pkg/httputil"
	"github.com/elcap/swingdash/pkg/logger"
)

// YahooProvider implements Provider using the Yahoo Finance public API.
type YahooProvider struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
}

// NewYahooProvider creates a new Yahoo Finance provider. The circuit
// breaker trips after consecutive upstream failures so the remaining
// symbols of a batch degrade immediately instead of each waiting out the
// full request timeout.
func NewYahooProvider(httpClient *httputil.Client, log *logger.Logger) *YahooProvider {
	p := &YahooProvider{
		httpClient: httpClient,
		logger:     log,
		baseURL:    "https://query1.finance.yahoo.com",
	}

	p.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "yahoo",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})

	return p
}

// WithBaseURL overrides the API endpoint, used by tests.
func (p *YahooProvider) WithBaseURL(base string) *YahooProvider {
	p.baseURL = base
	return p
}

// quoteResponse is the v7 quote endpoint payload. Fields are pointers:
// Yahoo omits whatever it has no value for.
type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol                   string   `json:"symbol"`
			ShortName                *string  `json:"shortName"`
			RegularMarketPrice       *float64 `json:"regularMarketPrice"`
			RegularMarketPrevClose   *float64 `json:"regularMarketPreviousClose"`
			RegularMarketDayHigh     *float64 `json:"regularMarketDayHigh"`
			RegularMarketDayLow      *float64 `json:"regularMarketDayLow"`
			FiftyTwoWeekHigh         *float64 `json:"fiftyTwoWeekHigh"`
			FiftyTwoWeekLow          *float64 `json:"fiftyTwoWeekLow"`
			AverageDailyVolume3Month *float64 `json:"averageDailyVolume3Month"`
			MarketCap                *float64 `json:"marketCap"`
			Beta                     *float64 `json:"beta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

// Quote fetches the current quote for one symbol.
func (p *YahooProvider) Quote(ctx context.Context, symbol string) (*RawQuote, error) {
	u := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", p.baseURL, url.QueryEscape(symbol))

	out, err := p.breaker.Execute(func() (interface{}, error) {
		var qr quoteResponse
		if err := p.httpClient.GetJSON(ctx, u, &qr); err != nil {
			return nil, fmt.Errorf("yahoo quote %s: %w", symbol, err)
		}
		return &qr, nil
	})
	if err != nil {
		return nil, err
	}

	qr := out.(*quoteResponse)
	if qr.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("yahoo quote %s: api error: %s", symbol, qr.QuoteResponse.Error.Description)
	}
	if len(qr.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("yahoo quote %s: no data returned", symbol)
	}

	r := qr.QuoteResponse.Result[0]
	return &RawQuote{
		Symbol:    symbol,
		Name:      r.ShortName,
		Price:     r.RegularMarketPrice,
		PrevClose: r.RegularMarketPrevClose,
		DayHigh:   r.RegularMarketDayHigh,
		DayLow:    r.RegularMarketDayLow,
		High52:    r.FiftyTwoWeekHigh,
		Low52:     r.FiftyTwoWeekLow,
		AvgVolume: r.AverageDailyVolume3Month,
		MarketCap: r.MarketCap,
		Beta:      r.Beta,
	}, nil
}

// chartResponse is the v8 chart endpoint payload, trimmed to closes.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// HistoricalClose fetches the first close traded within the window.
// A window with no trades yields (nil, nil), not an error.
func (p *YahooProvider) HistoricalClose(ctx context.Context, symbol string, around time.Time, window time.Duration) (*float64, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		p.baseURL, url.PathEscape(symbol), around.Unix(), around.Add(window).Unix())

	out, err := p.breaker.Execute(func() (interface{}, error) {
		var cr chartResponse
		if err := p.httpClient.GetJSON(ctx, u, &cr); err != nil {
			return nil, fmt.Errorf("yahoo chart %s: %w", symbol, err)
		}
		return &cr, nil
	})
	if err != nil {
		return nil, err
	}

	cr := out.(*chartResponse)
	if cr.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart %s: api error: %s", symbol, cr.Chart.Error.Description)
	}
	if len(cr.Chart.Result) == 0 || len(cr.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	for _, c := range cr.Chart.Result[0].Indicators.Quote[0].Close {
		if c != nil {
			// first trading day in the window
			v := *c
			return &v, nil
		}
	}
	return nil, nil
}
