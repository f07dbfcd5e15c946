package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/finquant/internal/interfaces"
	"github.com/ternarybob/finquant/internal/models"
	"github.com/ternarybob/finquant/internal/services/market"
	"github.com/ternarybob/finquant/internal/services/verdict"
)

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// handleStockVerdict implements the stock_verdict tool
func handleStockVerdict(builder interfaces.VerdictBuilder, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("screener_name")
		if err != nil || name == "" {
			return textResult("Error: screener_name parameter is required"), nil
		}
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return textResult("Error: ticker parameter is required"), nil
		}

		payload, err := builder.Build(ctx, models.VerdictRequest{ScreenerName: name, Ticker: ticker})
		if err != nil {
			if verdict.IsDocumentFailure(err) {
				logger.Warn().Err(err).Str("screener_name", name).Msg("Company page unavailable")
				return textResult(fmt.Sprintf("Company page unavailable for %s: %v", name, err)), nil
			}
			logger.Error().Err(err).Str("screener_name", name).Msg("Verdict build failed")
			return textResult(fmt.Sprintf("Verdict error: %v", err)), nil
		}

		text, err := formatPayload(payload)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to encode payload")
			return textResult(fmt.Sprintf("Verdict error: %v", err)), nil
		}
		return textResult(text), nil
	}
}

// handleFetchMarketData implements the fetch_market_data tool
func handleFetchMarketData(fetcher interfaces.MarketFetcher, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return textResult("Error: ticker parameter is required"), nil
		}

		series, err := fetcher.Fetch(ctx, ticker)
		if err != nil {
			logger.Warn().Err(err).Str("ticker", ticker).Msg("Market fetch failed")
			return textResult(market.Unavailable(ticker, err)), nil
		}

		return textResult(market.RenderReport(series)), nil
	}
}

// handleListVerdicts implements the list_verdicts tool
func handleListVerdicts(archive interfaces.ArchiveStorage, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if archive == nil {
			return textResult("Error: verdict archive is disabled ([storage.badger] enabled = false)"), nil
		}

		limit := request.GetInt("limit", 10)
		if limit <= 0 {
			limit = 10
		}
		if limit > 100 {
			limit = 100
		}

		entries, err := archive.List(ctx, limit)
		if err != nil {
			logger.Error().Err(err).Msg("List verdicts failed")
			return textResult(fmt.Sprintf("List error: %v", err)), nil
		}

		return textResult(formatEntries(entries)), nil
	}
}
