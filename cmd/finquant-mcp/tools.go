package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createStockVerdictTool returns the stock_verdict tool definition
func createStockVerdictTool() mcp.Tool {
	return mcp.NewTool("stock_verdict",
		mcp.WithDescription("Capture a company's screener.in page, save its fundamentals as JSON and combine them with a 30-day price summary"),
		mcp.WithString("screener_name",
			mcp.Required(),
			mcp.Description("Company name as typed into the screener.in search box (e.g. 'IRFC', 'Tata Motors')"),
		),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Ticker symbol: IRFC, IRFC.NS, NSE:IRFC or a numeric BSE code"),
		),
	)
}

// createFetchMarketDataTool returns the fetch_market_data tool definition
func createFetchMarketDataTool() mcp.Tool {
	return mcp.NewTool("fetch_market_data",
		mcp.WithDescription("Fetch the trailing 30-day close series for a ticker and report mean, standard deviation, high, low and today's open"),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Ticker symbol (.NS is assumed when no exchange is given)"),
		),
	)
}

// createListVerdictsTool returns the list_verdicts tool definition
func createListVerdictsTool() mcp.Tool {
	return mcp.NewTool("list_verdicts",
		mcp.WithDescription("List archived verdict runs, newest first"),
		mcp.WithNumber("limit",
			mcp.Description("Max results (default: 10, max: 100)"),
		),
	)
}
