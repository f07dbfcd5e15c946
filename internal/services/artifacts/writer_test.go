package artifacts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/finquant/internal/common"
	"github.com/ternarybob/finquant/internal/models"
)

func sampleSnapshot() *models.Snapshot {
	snap := models.NewSnapshot(models.SnapshotMetadata{
		Company:   "Indian Railway Finance Corporation Ltd",
		UserQuery: "IRFC",
		ScrapedAt: "2025-06-07 14:30:05",
		URL:       "https://www.screener.in/company/IRFC/consolidated/",
	})

	row := models.NewRow()
	row.Set("Mar 2025", models.Number(6723))
	row.Set("Jun 2025", models.Missing())
	snap.Quarters.Set("Revenue", row)

	share := models.NewRow()
	share.Set("Jun 2025", models.Percent(0.25))
	snap.Shareholding.Quarterly.Set("Promoters", share)

	snap.Analysis.Pros = []string{"Debt <-> equity & growth"}
	return snap
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestWriteSnapshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "info_json")
	writer := NewWriter(dir, filepath.Join(t.TempDir(), "outputs"), common.GetLogger())

	saved, err := writer.WriteSnapshot("IRFC_07-06-2025", sampleSnapshot())
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "IRFC_07-06-2025_quarters.json"),
		filepath.Join(dir, "IRFC_07-06-2025_profit_loss.json"),
		filepath.Join(dir, "IRFC_07-06-2025_balance_sheet.json"),
		filepath.Join(dir, "IRFC_07-06-2025_shareholding.json"),
		filepath.Join(dir, "IRFC_07-06-2025_analysis.json"),
		filepath.Join(dir, "IRFC_07-06-2025_FULL.json"),
	}, saved)

	quarters, err := os.ReadFile(saved[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"Revenue": {"Mar 2025": 6723, "Jun 2025": null}}`, string(quarters))

	shareholding, err := os.ReadFile(saved[3])
	require.NoError(t, err)
	assert.JSONEq(t, `{"quarterly": {"Promoters": {"Jun 2025": 0.25}}, "yearly": {}}`, string(shareholding))

	analysis, err := os.ReadFile(saved[4])
	require.NoError(t, err)
	assert.Contains(t, string(analysis), "Debt <-> equity & growth", "HTML characters are not escaped")

	full, err := os.ReadFile(saved[5])
	require.NoError(t, err)
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(full, &decoded))
	for _, key := range []string{"metadata", "quarters", "profit_loss", "balance_sheet", "shareholding", "analysis"} {
		assert.Contains(t, decoded, key)
	}
	assert.JSONEq(t, `{
		"company": "Indian Railway Finance Corporation Ltd",
		"user_query": "IRFC",
		"scraped_at": "2025-06-07 14:30:05",
		"url": "https://www.screener.in/company/IRFC/consolidated/"
	}`, string(decoded["metadata"]))
}

func TestWriteSnapshot_OverwritesSameDay(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir, dir, common.GetLogger())

	first, err := writer.WriteSnapshot("IRFC_07-06-2025", sampleSnapshot())
	require.NoError(t, err)

	updated := sampleSnapshot()
	updated.Analysis.Cons = []string{"second run"}
	second, err := writer.WriteSnapshot("IRFC_07-06-2025", updated)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, listDir(t, dir), 6, "no duplicate artifacts")

	analysis, err := os.ReadFile(second[4])
	require.NoError(t, err)
	assert.Contains(t, string(analysis), "second run")
}

func TestWriteSnapshot_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir, dir, common.GetLogger())

	// A directory squatting on one artifact path makes that write fail
	blocked := writer.SnapshotPath("IRFC_07-06-2025", models.SectionBalanceSheet)
	require.NoError(t, os.Mkdir(blocked, 0755))

	saved, err := writer.WriteSnapshot("IRFC_07-06-2025", sampleSnapshot())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrPersistence)
	assert.Contains(t, err.Error(), "balance_sheet")

	assert.Len(t, saved, 5, "remaining artifacts are still written")
	assert.NotContains(t, saved, blocked)
	assert.Equal(t, writer.SnapshotPath("IRFC_07-06-2025", "FULL"), saved[4])
}

func TestWriteSnapshot_DirectoryUnavailable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	writer := NewWriter(filepath.Join(file, "info_json"), t.TempDir(), common.GetLogger())
	saved, err := writer.WriteSnapshot("IRFC_07-06-2025", sampleSnapshot())

	assert.ErrorIs(t, err, models.ErrPersistence)
	assert.Empty(t, saved)
}

func TestWriteTechnical(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "outputs")
	writer := NewWriter(t.TempDir(), dir, common.GetLogger())

	path, err := writer.WriteTechnical("IRFC_07-06-2025", "# Technical & Volatility Analysis")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "IRFC_07-06-2025_Technical.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Technical & Volatility Analysis", string(data))
}

func TestMarshalSnapshot(t *testing.T) {
	data, err := MarshalSnapshot(map[string]string{"a": "<b>"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": \"<b>\"\n}", string(data))
}
