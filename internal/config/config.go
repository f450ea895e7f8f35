package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"Hindsight/internal/labeler"
	"Hindsight/internal/simulate"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL  string   `yaml:"base_url"`
		APIKey   string   `yaml:"api_key"`
		Symbols  []string `yaml:"symbols"`
		CacheDir string   `yaml:"cache_dir"`
	} `yaml:"data_source"`
	Strategy struct {
		IdealLotSize           float64 `yaml:"ideal_lot_size"`
		MinLotSize             float64 `yaml:"min_lot_size"`
		OrderCreationThreshold float64 `yaml:"order_creation_threshold"`
		DepthThresholds        []int   `yaml:"depth_thresholds"`
	} `yaml:"strategy"`
	Label struct {
		MinProfit       float64 `yaml:"min_profit"`
		MaxLotsObserved int     `yaml:"max_lots_observed"`
		DepthThreshold  int     `yaml:"depth_threshold"`
		MaxBreachDays   int     `yaml:"max_breach_days"`
		WindowDays      int     `yaml:"window_days"`
	} `yaml:"label"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		LabelCron   string `yaml:"label_cron"`
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
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("ALPHAVANTAGE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("HINDSIGHT_SYMBOLS"); v != "" {
		cfg.DataSource.Symbols = splitSymbols(v)
	}
	if v := os.Getenv("HINDSIGHT_CACHE_DIR"); v != "" {
		cfg.DataSource.CacheDir = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("CRON_LABEL"); v != "" {
		cfg.Schedule.LabelCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	defaults := simulate.DefaultParams()
	if cfg.Strategy.IdealLotSize == 0 {
		cfg.Strategy.IdealLotSize = defaults.IdealLotSize
	}
	if cfg.Strategy.MinLotSize == 0 {
		cfg.Strategy.MinLotSize = defaults.MinLotSize
	}
	if cfg.Strategy.OrderCreationThreshold == 0 {
		cfg.Strategy.OrderCreationThreshold = defaults.OrderCreationThreshold
	}
	if len(cfg.Strategy.DepthThresholds) == 0 {
		cfg.Strategy.DepthThresholds = defaults.DepthThresholds
	}
	policy := labeler.DefaultPolicy()
	if cfg.Label.MinProfit == 0 {
		cfg.Label.MinProfit = policy.MinProfit
	}
	if cfg.Label.MaxLotsObserved == 0 {
		cfg.Label.MaxLotsObserved = policy.MaxLotsObserved
	}
	if cfg.Label.DepthThreshold == 0 {
		cfg.Label.DepthThreshold = policy.DepthThreshold
	}
	if cfg.Label.MaxBreachDays == 0 {
		cfg.Label.MaxBreachDays = policy.MaxBreachDays
	}
	if cfg.Label.WindowDays == 0 {
		cfg.Label.WindowDays = 90
	}
	if cfg.DataSource.CacheDir == "" {
		cfg.DataSource.CacheDir = "data/snapshots"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/hindsight.db"
	}
	if cfg.Schedule.RefreshCron == "" {
		// Weekdays after US market close.
		cfg.Schedule.RefreshCron = "0 30 22 * * 1-5"
	}
	if cfg.Schedule.LabelCron == "" {
		cfg.Schedule.LabelCron = "0 0 6 * * 6"
	}

	return cfg, nil
}

// Validate checks that the configuration describes a runnable setup.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}
	if err := c.Policy().Validate(); err != nil {
		return fmt.Errorf("label: %w", err)
	}
	if c.Label.WindowDays <= 0 {
		return fmt.Errorf("label.window_days must be positive")
	}
	found := false
	for _, t := range c.Strategy.DepthThresholds {
		if t == c.Label.DepthThreshold {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("label.depth_threshold %d is not tracked by strategy.depth_thresholds %v",
			c.Label.DepthThreshold, c.Strategy.DepthThresholds)
	}
	return nil
}

// Params builds the engine parameters from the strategy section.
func (c *Config) Params() simulate.Params {
	return simulate.Params{
		IdealLotSize:           c.Strategy.IdealLotSize,
		MinLotSize:             c.Strategy.MinLotSize,
		OrderCreationThreshold: c.Strategy.OrderCreationThreshold,
		DepthThresholds:        c.Strategy.DepthThresholds,
	}
}

// Policy builds the label policy from the label section.
func (c *Config) Policy() labeler.Policy {
	return labeler.Policy{
		MinProfit:       c.Label.MinProfit,
		MaxLotsObserved: c.Label.MaxLotsObserved,
		DepthThreshold:  c.Label.DepthThreshold,
		MaxBreachDays:   c.Label.MaxBreachDays,
	}
}

func splitSymbols(v string) []string {
	parts := strings.Split(v, ",")
	symbols := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}
