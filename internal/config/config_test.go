package config

import (
	"os"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "habitlab-config-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	if err := tmpFile.Close(); err != nil {
		t.Fatalf("failed to close temp file: %v", err)
	}
	return tmpFile.Name()
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATA_DIR", "SQLITE_PATH", "LOG_LEVEL",
		"ALPACA_API_KEY", "ALPACA_API_SECRET", "ALPACA_BASE_URL", "ALPACA_DATA_URL",
		"APCA_API_KEY_ID", "APCA_API_SECRET_KEY",
	} {
		os.Unsetenv(k)
	}
}

func TestDefaultValues(t *testing.T) {
	cfg := Default()

	bt := cfg.Backtest
	if bt.InitialCash != 10_000_000 {
		t.Errorf("InitialCash = %d, want 10000000", bt.InitialCash)
	}
	if bt.FeeRate != 0.00015 {
		t.Errorf("FeeRate = %v, want 0.00015", bt.FeeRate)
	}
	if bt.PanicThreshold != -0.10 {
		t.Errorf("PanicThreshold = %v, want -0.10", bt.PanicThreshold)
	}
	if bt.DCADropRate != -0.05 {
		t.Errorf("DCADropRate = %v, want -0.05", bt.DCADropRate)
	}
	if bt.DCAInterval != 5 {
		t.Errorf("DCAInterval = %d, want 5", bt.DCAInterval)
	}
	if bt.DCABuyRatio != 0.25 {
		t.Errorf("DCABuyRatio = %v, want 0.25", bt.DCABuyRatio)
	}
	if bt.HoldBuyRatio != 0.50 {
		t.Errorf("HoldBuyRatio = %v, want 0.50", bt.HoldBuyRatio)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeTemp(t, `
storage:
  data_dir: "/tmp/habitlab/data"
  sqlite_path: "/tmp/habitlab/habitlab.db"
backtest:
  initial_cash: 5000000
  panic_threshold: -0.20
market:
  start_price: 50000
  ticks: 60
  seed: 7
gather:
  symbols: ["AAPL", "MSFT"]
  start_date: "2022-01-01"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Storage.DataDir != "/tmp/habitlab/data" {
		t.Errorf("DataDir = %q", cfg.Storage.DataDir)
	}
	if cfg.Backtest.InitialCash != 5_000_000 {
		t.Errorf("InitialCash = %d, want 5000000", cfg.Backtest.InitialCash)
	}
	if cfg.Backtest.PanicThreshold != -0.20 {
		t.Errorf("PanicThreshold = %v, want -0.20", cfg.Backtest.PanicThreshold)
	}

	// Untouched keys keep their defaults.
	if cfg.Backtest.FeeRate != 0.00015 {
		t.Errorf("FeeRate = %v, want the 0.00015 default", cfg.Backtest.FeeRate)
	}
	if cfg.Backtest.DCAInterval != 5 {
		t.Errorf("DCAInterval = %d, want the default 5", cfg.Backtest.DCAInterval)
	}

	if cfg.Market.Ticks != 60 || cfg.Market.Seed != 7 {
		t.Errorf("Market = %+v, want ticks 60, seed 7", cfg.Market)
	}
	if len(cfg.Gather.Symbols) != 2 || cfg.Gather.Symbols[0] != "AAPL" {
		t.Errorf("Gather.Symbols = %v", cfg.Gather.Symbols)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeTemp(t, `
alpaca:
  api_key: "yaml-key"
  api_secret: "yaml-secret"
logging:
  level: "info"
`)

	t.Setenv("ALPACA_API_KEY", "env-key")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("APCA_API_SECRET_KEY", "apca-secret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Alpaca.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", cfg.Alpaca.APIKey)
	}
	if cfg.Alpaca.APISecret != "apca-secret" {
		t.Errorf("APISecret = %q, want the canonical APCA override", cfg.Alpaca.APISecret)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/habitlab.yaml"); err == nil {
		t.Error("Load of a missing file should return an error")
	}
}
