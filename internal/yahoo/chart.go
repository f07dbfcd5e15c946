package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"
)

// GetChart fetches the OHLCV history for symbol over the given range and
// interval (e.g. "1mo", "1d"). Bars are returned oldest first, dated in the
// exchange's local time.
func (c *Client) GetChart(ctx context.Context, symbol, chartRange, interval string) (*History, error) {
	params := url.Values{}
	params.Set("range", chartRange)
	params.Set("interval", interval)

	var resp ChartResponse
	path := "/v8/finance/chart/" + url.PathEscape(symbol)
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	if resp.Chart.Error != nil {
		return nil, &APIError{StatusCode: 200, Message: resp.Chart.Error.Description, Endpoint: path}
	}

	history := &History{Symbol: symbol}
	if len(resp.Chart.Result) == 0 {
		return history, nil
	}

	result := resp.Chart.Result[0]
	history.Currency = result.Meta.Currency
	history.Timezone = result.Meta.ExchangeTimezoneName
	if result.Meta.Symbol != "" {
		history.Symbol = result.Meta.Symbol
	}

	if len(result.Indicators.Quote) == 0 {
		return history, nil
	}
	quote := result.Indicators.Quote[0]
	loc := exchangeLocation(result.Meta.ExchangeTimezoneName, result.Meta.GMTOffset)

	for i, ts := range result.Timestamp {
		closePrice, ok := at(quote.Close, i)
		if !ok {
			continue
		}

		bar := Bar{
			Date:  time.Unix(ts, 0).In(loc),
			Close: closePrice,
		}
		bar.Open, _ = at(quote.Open, i)
		bar.High, _ = at(quote.High, i)
		bar.Low, _ = at(quote.Low, i)
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}

		history.Bars = append(history.Bars, bar)
	}

	sort.Slice(history.Bars, func(i, j int) bool {
		return history.Bars[i].Date.Before(history.Bars[j].Date)
	})

	if c.logger != nil {
		c.logger.Debug().
			Str("symbol", history.Symbol).
			Int("bars", len(history.Bars)).
			Str("currency", history.Currency).
			Msg("Yahoo Finance chart fetched")
	}

	return history, nil
}

func at(values []*float64, i int) (float64, bool) {
	if i >= len(values) || values[i] == nil {
		return 0, false
	}
	return *values[i], true
}

func exchangeLocation(name string, gmtOffset int) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.FixedZone(fmt.Sprintf("GMT%+d", gmtOffset/3600), gmtOffset)
}
