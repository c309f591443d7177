package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/fraudlens/fraudlens/internal/importer"
	"github.com/fraudlens/fraudlens/internal/viz"
)

// FileName is the config file looked up in the working directory.
const FileName = "fraudlens.yaml"

// Environment overrides.
const (
	EnvConfig   = "FRAUDLENS_CONFIG"
	EnvLogLevel = "FRAUDLENS_LOG_LEVEL"
	EnvLogFile  = "FRAUDLENS_LOG_FILE"
)

// DefaultInputPath is used when neither the command line nor the config names a source.
const DefaultInputPath = "data/gov_fraud_data.csv"

// Config represents the top-level fraudlens.yaml configuration.
type Config struct {
	Input InputConfig `yaml:"input"`
	Chart ChartConfig `yaml:"chart"`
	Log   LogConfig   `yaml:"log"`
}

// InputConfig describes the dataset and its layout.
type InputConfig struct {
	Path      string        `yaml:"path"`
	Encoding  string        `yaml:"encoding"`
	Delimiter string        `yaml:"delimiter,omitempty"`
	Sheet     string        `yaml:"sheet,omitempty"`
	Columns   ColumnsConfig `yaml:"columns"`
}

// ColumnsConfig names the header cells, matched after trimming whitespace.
type ColumnsConfig struct {
	Category    string `yaml:"category"`
	Subcategory string `yaml:"subcategory"`
	Amount      string `yaml:"amount"`
}

// ChartConfig controls the charts.
type ChartConfig struct {
	TopCategories    int `yaml:"top_categories"`
	TopSubcategories int `yaml:"top_subcategories"`
	Width            int `yaml:"width"`
}

// LogConfig controls session logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"` // empty = stderr
}

// Load reads a fraudlens.yaml file from disk. Unset fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cols := importer.DefaultColumns()
	return &Config{
		Input: InputConfig{
			Path:     DefaultInputPath,
			Encoding: importer.EncodingUTF8,
			Columns: ColumnsConfig{
				Category:    cols.Category,
				Subcategory: cols.Subcategory,
				Amount:      cols.Amount,
			},
		},
		Chart: ChartConfig{
			TopCategories:    viz.DefaultTopCategories,
			TopSubcategories: viz.DefaultTopSubcategories,
			Width:            100,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Validate checks values that would otherwise fail later in confusing ways.
func (c *Config) Validate() error {
	if c.Chart.TopCategories < 1 {
		return fmt.Errorf("chart.top_categories must be at least 1, got %d", c.Chart.TopCategories)
	}
	if c.Chart.TopSubcategories < 1 {
		return fmt.Errorf("chart.top_subcategories must be at least 1, got %d", c.Chart.TopSubcategories)
	}
	if n := len([]rune(c.Input.Delimiter)); n > 1 {
		return fmt.Errorf("input.delimiter must be a single character, got %q", c.Input.Delimiter)
	}
	return nil
}

// LoaderOptions converts the input section for the importer.
func (c *Config) LoaderOptions() importer.Options {
	return importer.Options{
		Columns: importer.Columns{
			Category:    c.Input.Columns.Category,
			Subcategory: c.Input.Columns.Subcategory,
			Amount:      c.Input.Columns.Amount,
		},
		Encoding:  c.Input.Encoding,
		Delimiter: c.Input.Delimiter,
		Sheet:     c.Input.Sheet,
	}
}

// Resolve builds the effective config for a run from dir. A .env file in dir
// is loaded first; FRAUDLENS_CONFIG names an explicit config file, otherwise
// dir/fraudlens.yaml is used when present. Log settings can be overridden
// from the environment.
func Resolve(dir string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var cfg *Config
	if path := os.Getenv(EnvConfig); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		path := filepath.Join(dir, FileName)
		loaded, err := Load(path)
		switch {
		case err == nil:
			cfg = loaded
		case errors.Is(err, fs.ErrNotExist):
			cfg = Default()
		default:
			return nil, err
		}
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Log.File = v
	}
	return cfg, nil
}
