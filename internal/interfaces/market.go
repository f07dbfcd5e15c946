package interfaces

import (
	"context"

	"github.com/ternarybob/finquant/internal/models"
)

// MarketFetcher retrieves the trailing daily price series for a ticker.
type MarketFetcher interface {
	// Fetch returns the series for the ticker, normalized to carry an
	// exchange suffix. An empty history is ErrMarketDataUnavailable.
	Fetch(ctx context.Context, ticker string) (*models.MarketSeries, error)
}
