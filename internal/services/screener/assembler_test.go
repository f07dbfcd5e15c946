package screener

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/finquant/internal/common"
	"github.com/ternarybob/finquant/internal/models"
)

var captureDate = time.Date(2025, time.June, 7, 14, 30, 5, 0, time.UTC)

func fixturePage(t *testing.T, name, query string) *models.RenderedPage {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return &models.RenderedPage{
		HTML:       string(data),
		URL:        "https://www.screener.in/company/IRFC/consolidated/",
		Query:      query,
		CapturedAt: captureDate,
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		company string
		want    string
	}{
		{"simple", "IRFC", "Indian Railway Finance Corporation Ltd", "IRFC_07-06-2025"},
		{"lowercase", "irfc", "", "IRFC_07-06-2025"},
		{"spaces collapse", "  hdfc   bank ", "", "HDFC_BANK_07-06-2025"},
		{"punctuation removed", "M&M (Mahindra)", "", "MM_MAHINDRA_07-06-2025"},
		{"hyphen kept", "bajaj-auto", "", "BAJAJ-AUTO_07-06-2025"},
		{"single char falls back to company", "x", "Indian Railway Finance", "INDIAN_07-06-2025"},
		{"symbols only falls back to company", "&&", "Tata Motors Ltd", "TATA_07-06-2025"},
		{"single char kept when company word is unusable", "A", "& Co", "A_07-06-2025"},
		{"single char kept without company", "a", "", "A_07-06-2025"},
		{"no usable name", "?", "", "STOCK_07-06-2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseName(tt.query, tt.company, captureDate))
		})
	}
}

func TestBaseName_Deterministic(t *testing.T) {
	other := captureDate.AddDate(0, 0, 1)

	a := BaseName("IRFC", "", captureDate)
	b := BaseName("IRFC", "", captureDate)
	assert.Equal(t, a, b, "same query and date give the same name")

	c := BaseName("IRFC", "", other)
	assert.Equal(t, "IRFC_08-06-2025", c, "date only changes the suffix")

	d := BaseName("TCS", "", captureDate)
	assert.Equal(t, "TCS_07-06-2025", d, "query only changes the prefix")

	late := time.Date(2025, time.June, 7, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, a, BaseName("IRFC", "", late), "time of day is ignored")
}

func TestAssemble(t *testing.T) {
	assembler := NewAssembler(common.GetLogger())

	capture, err := assembler.Assemble(fixturePage(t, "company.html", "IRFC"))
	require.NoError(t, err)

	assert.Equal(t, "IRFC_07-06-2025", capture.BaseName)

	meta := capture.Snapshot.Metadata
	assert.Equal(t, "Indian Railway Finance Corporation Ltd", meta.Company)
	assert.Equal(t, "IRFC", meta.UserQuery)
	assert.Equal(t, "2025-06-07 14:30:05", meta.ScrapedAt)
	assert.Equal(t, "https://www.screener.in/company/IRFC/consolidated/", meta.URL)

	snap := capture.Snapshot
	assert.Equal(t, 3, snap.Quarters.Len())
	assert.Equal(t, 3, snap.ProfitLoss.AnnualData.Len())
	assert.Equal(t, 2, snap.ProfitLoss.GrowthMetrics.Len())
	assert.Equal(t, 2, snap.BalanceSheet.Len())
	assert.Equal(t, 2, snap.Shareholding.Quarterly.Len())
	assert.Equal(t, 1, snap.Shareholding.Yearly.Len())
	assert.Len(t, snap.Analysis.Pros, 2)
	assert.Len(t, snap.Analysis.Cons, 2)
}

func TestAssemble_NoShareholding(t *testing.T) {
	assembler := NewAssembler(common.GetLogger())

	capture, err := assembler.Assemble(fixturePage(t, "company_no_shareholding.html", "IRFC"))
	require.NoError(t, err)

	snap := capture.Snapshot
	data, err := json.Marshal(snap.Shareholding)
	require.NoError(t, err)
	assert.JSONEq(t, `{"quarterly": {}, "yearly": {}}`, string(data))

	// Sibling sections are unaffected
	assert.Equal(t, 3, snap.Quarters.Len())
	assert.Equal(t, 3, snap.ProfitLoss.AnnualData.Len())
	assert.Equal(t, 2, snap.BalanceSheet.Len())
	assert.Len(t, snap.Analysis.Pros, 2)
}

func TestAssemble_CompanyFallsBackToQuery(t *testing.T) {
	assembler := NewAssembler(common.GetLogger(), WithClock(func() time.Time { return captureDate }))

	page := &models.RenderedPage{HTML: `<html><body><p>nothing here</p></body></html>`, Query: "Ircon International"}
	capture, err := assembler.Assemble(page)
	require.NoError(t, err)

	assert.Equal(t, "Ircon International", capture.Snapshot.Metadata.Company)
	assert.Equal(t, "IRCON_INTERNATIONAL_07-06-2025", capture.BaseName)
	assert.Equal(t, "2025-06-07 14:30:05", capture.Snapshot.Metadata.ScrapedAt, "zero capture time uses the clock")

	// Every section is present and empty
	data, err := json.Marshal(capture.Snapshot)
	require.NoError(t, err)
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.JSONEq(t, `{}`, string(decoded["quarters"]))
	assert.JSONEq(t, `{"annual_data": {}, "growth_metrics": {}}`, string(decoded["profit_loss"]))
	assert.JSONEq(t, `{}`, string(decoded["balance_sheet"]))
	assert.JSONEq(t, `{"quarterly": {}, "yearly": {}}`, string(decoded["shareholding"]))
	assert.JSONEq(t, `{"pros": [], "cons": []}`, string(decoded["analysis"]))
}

func TestAssemble_SnapshotJSON(t *testing.T) {
	assembler := NewAssembler(common.GetLogger())

	capture, err := assembler.Assemble(fixturePage(t, "company.html", "IRFC"))
	require.NoError(t, err)

	data, err := json.Marshal(capture.Snapshot.Quarters)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Revenue +": {"Dec 2024": 6763, "Mar 2025": 6723, "Jun 2025": 6917},
		"Financing Margin %": {"Dec 2024": 0.24, "Mar 2025": 0.23, "Jun 2025": 0.25},
		"EPS in Rs": {"Dec 2024": 0.13, "Mar 2025": 0.12, "Jun 2025": null}
	}`, string(data))
}

type stubSession struct {
	state models.SessionState
	page  *models.RenderedPage
}

func (s *stubSession) Start(context.Context) error          { return nil }
func (s *stubSession) Search(context.Context, string) error { return nil }
func (s *stubSession) State() models.SessionState           { return s.state }
func (s *stubSession) Close() error                         { return nil }
func (s *stubSession) Page() (*models.RenderedPage, error) {
	if s.page == nil {
		return nil, errors.New("no page")
	}
	return s.page, nil
}

func TestExtractAll(t *testing.T) {
	assembler := NewAssembler(common.GetLogger())

	_, err := ExtractAll(&stubSession{state: models.SessionStarted}, assembler)
	assert.ErrorIs(t, err, models.ErrSessionState)

	capture, err := ExtractAll(&stubSession{
		state: models.SessionDocumentReady,
		page:  fixturePage(t, "company.html", "irfc"),
	}, assembler)
	require.NoError(t, err)
	assert.Equal(t, "IRFC_07-06-2025", capture.BaseName)
}
