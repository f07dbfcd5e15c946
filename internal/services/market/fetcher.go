package market

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/finquant/internal/common"
	"github.com/ternarybob/finquant/internal/httpclient"
	"github.com/ternarybob/finquant/internal/interfaces"
	"github.com/ternarybob/finquant/internal/models"
	"github.com/ternarybob/finquant/internal/yahoo"
)

// ChartClient is the subset of the Yahoo client the fetcher needs.
type ChartClient interface {
	GetChart(ctx context.Context, symbol, chartRange, interval string) (*yahoo.History, error)
}

// Fetcher loads the trailing daily close series for a ticker.
type Fetcher struct {
	client ChartClient
	config common.MarketConfig
	logger arbor.ILogger
}

// NewFetcher creates a market series fetcher
func NewFetcher(client ChartClient, config common.MarketConfig, logger arbor.ILogger) *Fetcher {
	return &Fetcher{client: client, config: config, logger: logger}
}

// NewYahooFetcher wires a Fetcher to a Yahoo client built from config
func NewYahooFetcher(config common.MarketConfig, logger arbor.ILogger) *Fetcher {
	client := yahoo.NewClient(
		yahoo.WithHTTPClient(httpclient.NewHTTPClientWithJar(config.Timeout.Std())),
		yahoo.WithBaseURL(config.BaseURL),
		yahoo.WithRateLimit(config.RateLimit),
		yahoo.WithUserAgent(config.UserAgent),
		yahoo.WithLogger(logger),
	)
	return NewFetcher(client, config, logger)
}

// Fetch normalizes the ticker to a Yahoo symbol and loads its history.
// Closes and the latest open are rounded to two decimals.
func (f *Fetcher) Fetch(ctx context.Context, ticker string) (*models.MarketSeries, error) {
	if strings.TrimSpace(ticker) == "" {
		return nil, fmt.Errorf("%w: empty ticker", models.ErrMarketDataUnavailable)
	}
	parsed := common.ParseTicker(ticker, f.config.DefaultSuffix)
	symbol := parsed.YahooSymbol()

	history, err := f.client.GetChart(ctx, symbol, f.config.Range, f.config.Interval)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrMarketDataUnavailable, symbol, err)
	}
	if len(history.Bars) == 0 {
		return nil, fmt.Errorf("%w: no price history found for %s", models.ErrMarketDataUnavailable, symbol)
	}

	series := &models.MarketSeries{
		Ticker:   symbol,
		Points:   make([]models.PricePoint, 0, len(history.Bars)),
		Currency: history.Currency,
	}
	if series.Currency == "" {
		series.Currency = f.config.Currency
	}

	for _, bar := range history.Bars {
		series.Points = append(series.Points, models.PricePoint{Date: bar.Date, Close: round2(bar.Close)})
	}

	latest := history.Bars[len(history.Bars)-1]
	series.TodayOpen = round2(latest.Open)
	series.TodayDate = latest.Date

	f.logger.Info().
		Str("ticker", parsed.String()).
		Str("symbol", symbol).
		Int("points", len(series.Points)).
		Str("currency", series.Currency).
		Msg("Market data fetched")

	return series, nil
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

var _ interfaces.MarketFetcher = (*Fetcher)(nil)
