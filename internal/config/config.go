package config

import (
	"fmt"
	"os"
	"strconv"

	str2duration "github.com/xhit/go-str2duration/v2"
	"gopkg.in/yaml.v3"
)

// DefaultUniverse is the scanned large-cap universe when the config names none.
var DefaultUniverse = []string{
	"AAPL", "MSFT", "GOOG", "AMZN", "NVDA", "TSLA", "META", "BRK-B", "UNH", "JNJ",
	"XOM", "V", "PG", "HD", "JPM", "MA", "CVX", "ABBV", "MRK", "PEP",
	"KO", "LLY", "BAC", "AVGO", "TMO", "COST", "DIS", "MCD", "CSCO", "ACN",
	"WMT", "ABT", "DHR", "LIN", "NKE", "NEE", "TXN", "VZ", "RTX", "PM",
	"ADBE", "NFLX", "AMD", "ORCL", "CRM", "INTC", "QCOM", "IBM", "HON", "CAT",
}

// Config holds all application configuration.
type Config struct {
	Universe struct {
		Symbols   []string `yaml:"symbols"`
		Benchmark string   `yaml:"benchmark"`
	} `yaml:"universe"`
	DataSource struct {
		BaseURL  string `yaml:"base_url"` // empty selects the Yahoo fetcher
		APIKey   string `yaml:"api_key"`
		Lookback string `yaml:"lookback"` // history window, e.g. "365d"
	} `yaml:"data_source"`
	Metrics struct {
		SMAWindow int `yaml:"sma_window"`
	} `yaml:"metrics"`
	Screener struct {
		TrendFloor float64 `yaml:"trend_floor"`
		VolCeiling float64 `yaml:"vol_ceiling"`
		TopN       int     `yaml:"top_n"`
	} `yaml:"screener"`
	Chart struct {
		TrendOutlier float64 `yaml:"trend_outlier"`
		BetaOutlier  float64 `yaml:"beta_outlier"`
	} `yaml:"chart"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"` // empty means run once and exit
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TWELVEDATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("TWELVEDATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("BENCHMARK"); v != "" {
		cfg.Universe.Benchmark = v
	}
	if v := os.Getenv("LOOKBACK"); v != "" {
		cfg.DataSource.Lookback = v
	}
	if v := os.Getenv("SMA_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.SMAWindow = n
		}
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if len(cfg.Universe.Symbols) == 0 {
		cfg.Universe.Symbols = DefaultUniverse
	}
	if cfg.Universe.Benchmark == "" {
		cfg.Universe.Benchmark = "SPY"
	}
	if cfg.DataSource.Lookback == "" {
		cfg.DataSource.Lookback = "365d"
	}
	if cfg.Metrics.SMAWindow == 0 {
		cfg.Metrics.SMAWindow = 50
	}
	if cfg.Screener.TrendFloor == 0 {
		cfg.Screener.TrendFloor = 5.0
	}
	if cfg.Screener.VolCeiling == 0 {
		cfg.Screener.VolCeiling = 25.0
	}
	if cfg.Screener.TopN == 0 {
		cfg.Screener.TopN = 5
	}
	if cfg.Chart.TrendOutlier == 0 {
		cfg.Chart.TrendOutlier = 15.0
	}
	if cfg.Chart.BetaOutlier == 0 {
		cfg.Chart.BetaOutlier = 1.5
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/breadth_cache.db"
	}

	return cfg, nil
}

// LookbackDays converts the configured lookback (e.g. "365d", "26w") to days.
func (c *Config) LookbackDays() (int, error) {
	d, err := str2duration.ParseDuration(c.DataSource.Lookback)
	if err != nil {
		return 0, fmt.Errorf("parse lookback %q: %w", c.DataSource.Lookback, err)
	}
	days := int(d.Hours() / 24)
	if days < 1 {
		return 0, fmt.Errorf("lookback %q is shorter than a day", c.DataSource.Lookback)
	}
	return days, nil
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if len(c.Universe.Symbols) == 0 {
		return fmt.Errorf("universe.symbols is required")
	}
	if c.Universe.Benchmark == "" {
		return fmt.Errorf("universe.benchmark is required")
	}
	if c.DataSource.BaseURL != "" && c.DataSource.APIKey == "" {
		return fmt.Errorf("data_source.api_key is required when base_url is set")
	}
	if c.Metrics.SMAWindow < 2 {
		return fmt.Errorf("metrics.sma_window must be at least 2")
	}
	if c.Screener.VolCeiling <= 0 {
		return fmt.Errorf("screener.vol_ceiling must be positive")
	}
	if c.Screener.TopN < 0 {
		return fmt.Errorf("screener.top_n must not be negative")
	}
	days, err := c.LookbackDays()
	if err != nil {
		return err
	}
	if days < c.Metrics.SMAWindow {
		return fmt.Errorf("lookback %q is shorter than the %d-day SMA window", c.DataSource.Lookback, c.Metrics.SMAWindow)
	}
	return nil
}
