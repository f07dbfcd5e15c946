package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/finquant/internal/common"
	"github.com/ternarybob/finquant/internal/models"
)

type stubBuilder struct {
	payload *models.VerdictPayload
	err     error
	got     models.VerdictRequest
}

func (s *stubBuilder) Build(_ context.Context, req models.VerdictRequest) (*models.VerdictPayload, error) {
	s.got = req
	return s.payload, s.err
}

type stubFetcher struct {
	series *models.MarketSeries
	err    error
}

func (s *stubFetcher) Fetch(context.Context, string) (*models.MarketSeries, error) {
	return s.series, s.err
}

type stubArchive struct {
	entries []*models.ArchiveEntry
	limit   int
}

func (s *stubArchive) Upsert(context.Context, *models.ArchiveEntry) error { return nil }
func (s *stubArchive) Get(context.Context, string) (*models.ArchiveEntry, error) {
	return nil, errors.New("not used")
}
func (s *stubArchive) List(_ context.Context, limit int) ([]*models.ArchiveEntry, error) {
	s.limit = limit
	return s.entries, nil
}
func (s *stubArchive) Delete(context.Context, string) error { return nil }
func (s *stubArchive) Close() error                         { return nil }

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleStockVerdict(t *testing.T) {
	builder := &stubBuilder{payload: &models.VerdictPayload{
		Metadata:        models.SnapshotMetadata{Company: "Indian Railway Finance Corporation Ltd"},
		ScreenerName:    "IRFC",
		Ticker:          "IRFC",
		TechnicalReport: "# Technical & Volatility Analysis",
		SavedFiles:      []string{},
		GeneratedAt:     "2025-06-07T14:30:05Z",
	}}
	handler := handleStockVerdict(builder, common.GetLogger())

	result, err := handler(context.Background(), callRequest(map[string]any{
		"screener_name": "IRFC",
		"ticker":        "IRFC",
	}))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, `"yfinance_ticker": "IRFC"`)
	assert.Contains(t, text, `"technical_report": "# Technical & Volatility Analysis"`)
	assert.Equal(t, models.VerdictRequest{ScreenerName: "IRFC", Ticker: "IRFC"}, builder.got)
}

func TestHandleStockVerdict_Errors(t *testing.T) {
	builder := &stubBuilder{err: fmt.Errorf("%w: browser failed startup test", models.ErrDocumentUnavailable)}
	handler := handleStockVerdict(builder, common.GetLogger())

	result, err := handler(context.Background(), callRequest(map[string]any{"ticker": "IRFC"}))
	require.NoError(t, err)
	assert.Equal(t, "Error: screener_name parameter is required", resultText(t, result))

	result, err = handler(context.Background(), callRequest(map[string]any{"screener_name": "IRFC", "ticker": "IRFC"}))
	require.NoError(t, err)
	text := resultText(t, result)
	assert.True(t, strings.HasPrefix(text, "Company page unavailable for IRFC: "), text)
	assert.Contains(t, text, "document unavailable")

	builder.err = errors.New("archive exploded")
	result, err = handler(context.Background(), callRequest(map[string]any{"screener_name": "IRFC", "ticker": "IRFC"}))
	require.NoError(t, err)
	assert.Equal(t, "Verdict error: archive exploded", resultText(t, result))
}

func TestHandleFetchMarketData(t *testing.T) {
	day := time.Date(2025, time.June, 6, 0, 0, 0, 0, time.UTC)
	fetcher := &stubFetcher{series: &models.MarketSeries{
		Ticker:    "IRFC.NS",
		Points:    []models.PricePoint{{Date: day, Close: 138}, {Date: day, Close: 140}},
		TodayOpen: 139.5,
		TodayDate: day,
		Currency:  "INR",
	}}
	handler := handleFetchMarketData(fetcher, common.GetLogger())

	result, err := handler(context.Background(), callRequest(map[string]any{"ticker": "IRFC"}))
	require.NoError(t, err)
	text := resultText(t, result)
	assert.Contains(t, text, "**Ticker**: IRFC.NS")
	assert.Contains(t, text, "**Date**: 06-06-2025")

	fetcher.err = fmt.Errorf("%w: no price history found for NOPE.NS", models.ErrMarketDataUnavailable)
	result, err = handler(context.Background(), callRequest(map[string]any{"ticker": "NOPE"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "Price data not available for NOPE: ")
}

func TestHandleListVerdicts(t *testing.T) {
	archive := &stubArchive{entries: []*models.ArchiveEntry{{
		BaseName:    "IRFC_07-06-2025",
		Company:     "Indian Railway Finance Corporation Ltd",
		Ticker:      "IRFC",
		SavedFiles:  []string{"a", "b"},
		GeneratedAt: time.Date(2025, time.June, 7, 14, 30, 5, 0, time.UTC),
	}}}
	handler := handleListVerdicts(archive, common.GetLogger())

	result, err := handler(context.Background(), callRequest(map[string]any{"limit": float64(500)}))
	require.NoError(t, err)
	assert.Equal(t, 100, archive.limit)
	text := resultText(t, result)
	assert.Contains(t, text, "# Archived Verdicts (1)")
	assert.Contains(t, text, "Base name: IRFC_07-06-2025")
	assert.Contains(t, text, "Files: 2")

	disabled := handleListVerdicts(nil, common.GetLogger())
	result, err = disabled(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "archive is disabled")
}

func TestFormatEntries_Empty(t *testing.T) {
	assert.Equal(t, "No archived verdicts.", formatEntries(nil))
}
