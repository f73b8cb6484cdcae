package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for pathctl
type Config struct {
	OutputDir     string
	OutputFormats []string // csv,json,html
	MaxParallel   int
	Force         bool
	LogFile       string

	// Logging options
	LogLevel string // 0..5 or names

	// Metrics export
	MetricsEnabled bool
	MetricsFile    string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		OutputDir:      "reports",
		OutputFormats:  []string{"html"},
		MaxParallel:    4,
		Force:          false,
		LogFile:        "logs/pathctl.log",
		LogLevel:       "info",
		MetricsEnabled: false,
		MetricsFile:    "metrics.prom",
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.MaxParallel <= 0 {
		return fmt.Errorf("max-parallel must be greater than 0")
	}
	for _, f := range c.OutputFormats {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "csv", "json", "html":
		default:
			return fmt.Errorf("unknown output format %q", f)
		}
	}
	if c.MetricsEnabled && c.MetricsFile == "" {
		return fmt.Errorf("metrics-file is required when metrics are enabled")
	}
	return nil
}

// splitCSV splits a comma-separated value into trimmed parts
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadConfig loads configuration from various sources
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	// Load from config file if specified
	cfgFile := viper.GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
			if err := writeDummyConfig(cfgFile); err != nil {
				return nil, fmt.Errorf("failed to create dummy config at %s: %w", cfgFile, err)
			}
			return nil, fmt.Errorf("dummy config created at %s; edit and re-run", cfgFile)
		}
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// Set up environment variable binding
	viper.SetEnvPrefix("pathctl")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Load configuration values
	cfg.OutputDir = viper.GetString("output-dir")
	cfg.OutputFormats = splitCSV(viper.GetString("outputs"))
	cfg.MaxParallel = viper.GetInt("max-parallel")
	cfg.Force = viper.GetBool("force")
	cfg.LogFile = viper.GetString("log-file")
	cfg.LogLevel = viper.GetString("log-level")
	cfg.MetricsEnabled = viper.GetBool("metrics-enabled")
	cfg.MetricsFile = viper.GetString("metrics-file")

	// Apply defaults for empty values
	if cfg.OutputDir == "" {
		cfg.OutputDir = "reports"
	}
	if len(cfg.OutputFormats) == 0 {
		cfg.OutputFormats = []string{"html"}
	}
	if cfg.MaxParallel <= 0 {
		cfg.MaxParallel = 4
	}
	if cfg.LogFile == "" {
		cfg.LogFile = "logs/pathctl.log"
	}
	if cfg.MetricsFile == "" {
		cfg.MetricsFile = "metrics.prom"
	}

	return cfg, nil
}

// writeDummyConfig creates a dummy configuration file
func writeDummyConfig(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	dummy := ""
	switch ext {
	case ".json":
		dummy = `{
  "output-dir": "reports",
  "outputs": "html,csv",
  "max-parallel": 4,
  "force": false,
  "log-file": "logs/pathctl.log",
  "log-level": "2",
  "metrics-enabled": false,
  "metrics-file": "metrics.prom"
}
`
	default:
		dummy = `# pathctl configuration (dummy values)

# Apply behavior
max-parallel: 4                    # Manifests applied in parallel
force: false                       # Skip delete confirmations

# Reports
outputs: "html,csv"                # One or more: csv,json,html
output-dir: "reports"              # Directory for generated reports

# Logging
log-file: "logs/pathctl.log"       # Rotated JSON logs path
log-level: "2"                     # 0 trace, 1 debug, 2 info, 3 warn, 4 error

# Metrics
metrics-enabled: false             # Write Prometheus metrics after apply
metrics-file: "metrics.prom"       # Path to Prometheus metrics file
`
	}
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(dummy), 0644)
}
