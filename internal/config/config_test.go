package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load with missing file: %v", err)
	}
	if cfg.Strategy.IdealLotSize != 1000 || cfg.Strategy.MinLotSize != 900 {
		t.Errorf("unexpected lot sizes: %+v", cfg.Strategy)
	}
	if cfg.Strategy.OrderCreationThreshold != 0.03 {
		t.Errorf("threshold = %v, want 0.03", cfg.Strategy.OrderCreationThreshold)
	}
	if cfg.Label.WindowDays != 90 {
		t.Errorf("window days = %d, want 90", cfg.Label.WindowDays)
	}
	if cfg.Database.SQLitePath == "" || cfg.DataSource.CacheDir == "" {
		t.Error("storage paths should have defaults")
	}
	if cfg.Schedule.RefreshCron == "" || cfg.Schedule.LabelCron == "" {
		t.Error("cron expressions should have defaults")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
data_source:
  api_key: filekey
  symbols: ["AAPL", "MSFT"]
strategy:
  order_creation_threshold: 0.05
label:
  window_days: 120
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataSource.APIKey != "filekey" {
		t.Errorf("api key = %q, want filekey", cfg.DataSource.APIKey)
	}
	if len(cfg.DataSource.Symbols) != 2 || cfg.DataSource.Symbols[0] != "AAPL" {
		t.Errorf("symbols = %v", cfg.DataSource.Symbols)
	}
	if cfg.Strategy.OrderCreationThreshold != 0.05 {
		t.Errorf("threshold = %v, want 0.05", cfg.Strategy.OrderCreationThreshold)
	}
	if cfg.Label.WindowDays != 120 {
		t.Errorf("window days = %d, want 120", cfg.Label.WindowDays)
	}
	// Unset sections still get defaults.
	if cfg.Strategy.IdealLotSize != 1000 {
		t.Errorf("ideal lot size = %v, want default 1000", cfg.Strategy.IdealLotSize)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
data_source:
  api_key: filekey
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ALPHAVANTAGE_API_KEY", "envkey")
	t.Setenv("HINDSIGHT_SYMBOLS", "ibm, tsla,")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataSource.APIKey != "envkey" {
		t.Errorf("api key = %q, env should win over file", cfg.DataSource.APIKey)
	}
	if len(cfg.DataSource.Symbols) != 2 || cfg.DataSource.Symbols[1] != "tsla" {
		t.Errorf("symbols = %v, want [ibm tsla]", cfg.DataSource.Symbols)
	}
}

func TestValidate_UntrackedDepthThreshold(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Label.DepthThreshold = 7
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when label threshold is not a tracked depth threshold")
	}
}
