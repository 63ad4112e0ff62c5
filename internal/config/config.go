package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Dataset struct {
		StocksFile    string `yaml:"stocks_file"`
		CompaniesFile string `yaml:"companies_file"`
		CacheDir      string `yaml:"cache_dir"`
	} `yaml:"dataset"`
	Provider struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		Slug    string `yaml:"slug"` // dataset identifier on the provider, e.g. "andrewmvd/sp-500-stocks"
	} `yaml:"provider"`
	Analysis struct {
		TargetSymbol     string   `yaml:"target_symbol"`
		HindsightSymbols []string `yaml:"hindsight_symbols"`
		Workers          int      `yaml:"workers"`
	} `yaml:"analysis"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
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
	if v := os.Getenv("PROVIDER_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("PROVIDER_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv("DATASET_CACHE_DIR"); v != "" {
		cfg.Dataset.CacheDir = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("TARGET_SYMBOL"); v != "" {
		cfg.Analysis.TargetSymbol = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("ANALYSIS_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.Workers = n
		}
	}

	// Defaults
	if cfg.Dataset.StocksFile == "" {
		cfg.Dataset.StocksFile = "sp500_stocks.csv"
	}
	if cfg.Dataset.CompaniesFile == "" {
		cfg.Dataset.CompaniesFile = "sp500_companies.csv"
	}
	if cfg.Dataset.CacheDir == "" {
		cfg.Dataset.CacheDir = "data/cache"
	}
	if cfg.Provider.Slug == "" {
		cfg.Provider.Slug = "andrewmvd/sp-500-stocks"
	}
	if cfg.Analysis.TargetSymbol == "" {
		cfg.Analysis.TargetSymbol = "NVDA"
	}
	if len(cfg.Analysis.HindsightSymbols) == 0 {
		cfg.Analysis.HindsightSymbols = []string{"MKTX", "ALGN", "ULTA", "TSLA", "PODD", "MOH"}
	}
	if cfg.Analysis.Workers <= 0 {
		cfg.Analysis.Workers = 4
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "public/data"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Dataset.StocksFile == "" {
		return fmt.Errorf("dataset.stocks_file is required")
	}
	if c.Dataset.CompaniesFile == "" {
		return fmt.Errorf("dataset.companies_file is required")
	}
	if c.Dataset.CacheDir == "" {
		return fmt.Errorf("dataset.cache_dir is required")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if c.Analysis.TargetSymbol == "" {
		return fmt.Errorf("analysis.target_symbol is required")
	}
	return nil
}
