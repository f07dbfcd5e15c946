package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Logging     LoggingConfig  `toml:"logging"`
	Screener    ScreenerConfig `toml:"screener"`
	Market      MarketConfig   `toml:"market"`
	Output      OutputConfig   `toml:"output"`
	Storage     StorageConfig  `toml:"storage"`
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // default "15:04:05"
	Dir        string   `toml:"dir"`         // log directory for file output
}

// ScreenerConfig controls the browser session that captures company pages
type ScreenerConfig struct {
	BaseURL           string   `toml:"base_url" validate:"required,url"`
	Headless          bool     `toml:"headless"`
	NoSandbox         bool     `toml:"no_sandbox"`
	DisableGPU        bool     `toml:"disable_gpu"`
	UserAgent         string   `toml:"user_agent"`
	WindowWidth       int      `toml:"window_width" validate:"gt=0"`
	WindowHeight      int      `toml:"window_height" validate:"gt=0"`
	StartupTimeout    Duration `toml:"startup_timeout" validate:"gt=0"`    // browser launch + responsiveness probe
	NavigationTimeout Duration `toml:"navigation_timeout" validate:"gt=0"` // home page load + search input
	ReadyTimeout      Duration `toml:"ready_timeout" validate:"gt=0"`      // bounded wait for the company page anchors
	ExecPath          string   `toml:"exec_path"`                          // Chrome binary; empty uses chromedp discovery
}

// MarketConfig controls the daily price history fetch
type MarketConfig struct {
	BaseURL       string   `toml:"base_url" validate:"required,url"`
	DefaultSuffix string   `toml:"default_suffix" validate:"required,startswith=."`
	Range         string   `toml:"range" validate:"required"`
	Interval      string   `toml:"interval" validate:"required"`
	Timeout       Duration `toml:"timeout" validate:"gt=0"`
	RateLimit     int      `toml:"rate_limit" validate:"gt=0"` // requests per second
	Currency      string   `toml:"currency" validate:"required,len=3"`
	UserAgent     string   `toml:"user_agent"`
}

// OutputConfig controls where artifacts are written
type OutputConfig struct {
	SnapshotDir    string `toml:"snapshot_dir" validate:"required"` // section + FULL JSON artifacts
	ReportDir      string `toml:"report_dir" validate:"required"`   // Technical.md artifacts
	SnapshotBudget int    `toml:"snapshot_budget" validate:"gt=0"`  // max characters of fundamental_snapshot
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents the verdict archive configuration
type BadgerConfig struct {
	Enabled        bool   `toml:"enabled"`
	Path           string `toml:"path" validate:"required_if=Enabled true"`
	ResetOnStartup bool   `toml:"reset_on_startup"`
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout", "file"},
			TimeFormat: "15:04:05",
			Dir:        "./logs",
		},
		Screener: ScreenerConfig{
			BaseURL:           "https://www.screener.in/",
			Headless:          true,
			NoSandbox:         true,
			DisableGPU:        true,
			UserAgent:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			WindowWidth:       1920,
			WindowHeight:      1080,
			StartupTimeout:    Duration(30 * time.Second),
			NavigationTimeout: Duration(30 * time.Second),
			ReadyTimeout:      Duration(20 * time.Second),
		},
		Market: MarketConfig{
			BaseURL:       "https://query1.finance.yahoo.com",
			DefaultSuffix: ".NS",
			Range:         "1mo",
			Interval:      "1d",
			Timeout:       Duration(30 * time.Second),
			RateLimit:     2,
			Currency:      "INR",
			UserAgent:     "Mozilla/5.0",
		},
		Output: OutputConfig{
			SnapshotDir:    "./info_json",
			ReportDir:      "./outputs",
			SnapshotBudget: 12000,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Enabled: false,
				Path:    "./data/archive",
			},
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2 -> ... -> .env -> env.
// Later files override earlier files. CLI flag overrides are applied by the caller.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	// .env never overrides variables already set in the process environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the struct tags of the whole configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyEnvOverrides applies FINQUANT_* environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FINQUANT_ENV"); env != "" {
		config.Environment = env
	}

	// Logging configuration
	if level := os.Getenv("FINQUANT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("FINQUANT_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Screener configuration
	if baseURL := os.Getenv("FINQUANT_SCREENER_BASE_URL"); baseURL != "" {
		config.Screener.BaseURL = baseURL
	}
	if headless := os.Getenv("FINQUANT_SCREENER_HEADLESS"); headless != "" {
		if h, err := strconv.ParseBool(headless); err == nil {
			config.Screener.Headless = h
		}
	}
	if execPath := os.Getenv("FINQUANT_CHROME_PATH"); execPath != "" {
		config.Screener.ExecPath = execPath
	}
	if timeout := os.Getenv("FINQUANT_SCREENER_READY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Screener.ReadyTimeout = Duration(d)
		}
	}

	// Market configuration
	if baseURL := os.Getenv("FINQUANT_MARKET_BASE_URL"); baseURL != "" {
		config.Market.BaseURL = baseURL
	}
	if suffix := os.Getenv("FINQUANT_MARKET_DEFAULT_SUFFIX"); suffix != "" {
		config.Market.DefaultSuffix = suffix
	}

	// Output configuration
	if dir := os.Getenv("FINQUANT_SNAPSHOT_DIR"); dir != "" {
		config.Output.SnapshotDir = dir
	}
	if dir := os.Getenv("FINQUANT_REPORT_DIR"); dir != "" {
		config.Output.ReportDir = dir
	}

	// Storage configuration
	if enabled := os.Getenv("FINQUANT_ARCHIVE_ENABLED"); enabled != "" {
		if e, err := strconv.ParseBool(enabled); err == nil {
			config.Storage.Badger.Enabled = e
		}
	}
	if path := os.Getenv("FINQUANT_ARCHIVE_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}
}

// Duration is a time.Duration decoded from a TOML string such as "20s"
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ApplyFlagOverrides applies command-line flag overrides to config (highest priority)
func ApplyFlagOverrides(config *Config, logLevel string, headful bool) {
	if logLevel != "" {
		config.Logging.Level = logLevel
	}
	if headful {
		config.Screener.Headless = false
	}
}
