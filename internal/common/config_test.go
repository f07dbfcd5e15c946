package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "https://www.screener.in/", config.Screener.BaseURL)
	assert.Equal(t, 20*time.Second, config.Screener.ReadyTimeout.Std())
	assert.True(t, config.Screener.Headless)
	assert.Equal(t, ".NS", config.Market.DefaultSuffix)
	assert.Equal(t, "1mo", config.Market.Range)
	assert.Equal(t, "1d", config.Market.Interval)
	assert.Equal(t, "INR", config.Market.Currency)
	assert.Equal(t, "./info_json", config.Output.SnapshotDir)
	assert.Equal(t, "./outputs", config.Output.ReportDir)
	assert.Equal(t, 12000, config.Output.SnapshotBudget)
	assert.False(t, config.Storage.Badger.Enabled)

	require.NoError(t, config.Validate())
}

func TestLoadFromFiles(t *testing.T) {
	// Run from a temp dir so a stray .env in the package dir is not picked up
	dir := t.TempDir()
	t.Chdir(dir)

	base := filepath.Join(dir, "base.toml")
	override := filepath.Join(dir, "override.toml")

	require.NoError(t, os.WriteFile(base, []byte(`
[screener]
ready_timeout = "5s"
headless = false

[output]
snapshot_dir = "/tmp/snap"
`), 0644))
	require.NoError(t, os.WriteFile(override, []byte(`
[output]
snapshot_dir = "/tmp/snap2"

[storage.badger]
enabled = true
path = "/tmp/archive"
`), 0644))

	config, err := LoadFromFiles(base, "", override)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, config.Screener.ReadyTimeout.Std())
	assert.False(t, config.Screener.Headless)
	assert.Equal(t, "/tmp/snap2", config.Output.SnapshotDir, "later file wins")
	assert.Equal(t, "./outputs", config.Output.ReportDir, "untouched keys keep defaults")
	assert.True(t, config.Storage.Badger.Enabled)
	assert.Equal(t, "/tmp/archive", config.Storage.Badger.Path)
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadFromFiles("/nonexistent/finquant.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFromFiles_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FINQUANT_SNAPSHOT_DIR", "/env/snap")
	t.Setenv("FINQUANT_SCREENER_HEADLESS", "false")
	t.Setenv("FINQUANT_SCREENER_READY_TIMEOUT", "7s")
	t.Setenv("FINQUANT_LOG_OUTPUT", "stdout, file ,")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, "/env/snap", config.Output.SnapshotDir)
	assert.False(t, config.Screener.Headless)
	assert.Equal(t, 7*time.Second, config.Screener.ReadyTimeout.Std())
	assert.Equal(t, []string{"stdout", "file"}, config.Logging.Output)
}

func TestLoadFromFiles_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FINQUANT_REPORT_DIR=/dotenv/reports\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("FINQUANT_REPORT_DIR") })

	config, err := LoadFromFiles()
	require.NoError(t, err)
	assert.Equal(t, "/dotenv/reports", config.Output.ReportDir)
}

func TestValidate(t *testing.T) {
	config := NewDefaultConfig()
	config.Market.DefaultSuffix = "NS"
	assert.Error(t, config.Validate(), "suffix must start with a dot")

	config = NewDefaultConfig()
	config.Screener.BaseURL = ""
	assert.Error(t, config.Validate())

	config = NewDefaultConfig()
	config.Storage.Badger.Enabled = true
	config.Storage.Badger.Path = ""
	assert.Error(t, config.Validate(), "archive path is required when enabled")
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()
	ApplyFlagOverrides(config, "debug", true)

	assert.Equal(t, "debug", config.Logging.Level)
	assert.False(t, config.Screener.Headless)
}

func TestLoadFromFiles_SampleConfig(t *testing.T) {
	config, err := LoadFromFiles(filepath.Join("..", "..", "deployments", "local", "finquant.toml"))
	require.NoError(t, err)

	assert.Equal(t, NewDefaultConfig().Screener, config.Screener)
	assert.Equal(t, NewDefaultConfig().Output, config.Output)
	assert.False(t, config.Storage.Badger.Enabled)
}
