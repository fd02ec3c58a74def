// Package config loads the habitlab YAML configuration and applies
// environment variable overrides on top of documented defaults.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for habitlab.
type Config struct {
	Storage  Storage   `yaml:"storage"`
	Alpaca   Alpaca    `yaml:"alpaca"`
	Logging  Logging   `yaml:"logging"`
	Backtest Backtest  `yaml:"backtest"`
	Market   MarketSim `yaml:"market"`
	Gather   Gather    `yaml:"gather"`
	Trading  Trading   `yaml:"trading"`
}

// Storage holds paths for local price-history data.
type Storage struct {
	DataDir    string `yaml:"data_dir"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Alpaca holds credentials and endpoints for the Alpaca market-data API,
// used only to download historical daily bars.
type Alpaca struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	BaseURL   string `yaml:"base_url"`
	DataURL   string `yaml:"data_url"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Backtest holds the tunable strategy-battle parameters. The threshold and
// drop rate are negative fractions.
type Backtest struct {
	InitialCash    int64   `yaml:"initial_cash"`
	FeeRate        float64 `yaml:"fee_rate"`
	PanicThreshold float64 `yaml:"panic_threshold"`
	DCADropRate    float64 `yaml:"dca_drop_rate"`
	DCAInterval    int     `yaml:"dca_interval"`
	DCABuyRatio    float64 `yaml:"dca_buy_ratio"`
	HoldBuyRatio   float64 `yaml:"hold_buy_ratio"`
}

// MarketSim controls the random price-path generator.
type MarketSim struct {
	StartPrice int64 `yaml:"start_price"`
	Ticks      int   `yaml:"ticks"`
	Seed       int64 `yaml:"seed"` // 0 means seed from the clock
}

// Gather controls historical daily-bar downloads.
type Gather struct {
	Symbols         []string `yaml:"symbols"`
	StartDate       string   `yaml:"start_date"`
	RateLimitPerMin int      `yaml:"rate_limit_per_min"`
}

// Trading defines risk parameters for the account demo.
type Trading struct {
	MaxPositionPct float64 `yaml:"max_position_pct"`
}

// ---------------------------------------------------------------------------
// Defaults and loading
// ---------------------------------------------------------------------------

// Default returns the configuration with every documented default applied.
func Default() *Config {
	return &Config{
		Storage: Storage{
			DataDir:    "data",
			SQLitePath: "data/habitlab.db",
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Backtest: Backtest{
			InitialCash:    10_000_000,
			FeeRate:        0.00015,
			PanicThreshold: -0.10,
			DCADropRate:    -0.05,
			DCAInterval:    5,
			DCABuyRatio:    0.25,
			HoldBuyRatio:   0.50,
		},
		Market: MarketSim{
			StartPrice: 70000,
			Ticks:      30,
		},
		Gather: Gather{
			StartDate:       "2020-01-01",
			RateLimitPerMin: 200,
		},
		Trading: Trading{
			MaxPositionPct: 0.10,
		},
	}
}

// Load reads the YAML configuration file at the given path over the
// defaults, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}

	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}

	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.APIKey = v
	}

	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Alpaca.APISecret = v
	}

	if v := os.Getenv("ALPACA_BASE_URL"); v != "" {
		cfg.Alpaca.BaseURL = v
	}

	if v := os.Getenv("ALPACA_DATA_URL"); v != "" {
		cfg.Alpaca.DataURL = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Standard Alpaca env vars take highest priority (canonical SDK names).
	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.Alpaca.APISecret = v
	}
}
