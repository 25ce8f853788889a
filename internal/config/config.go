package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	topoerrors "github.com/topo-sh/topo/internal/errors"
)

// defaultIgnorePatterns are applied on top of whatever VCS ignore
// rules the scanner already honors (§4.1).
var defaultIgnorePatterns = []string{
	"node_modules/",
	"vendor/",
	".git/",
	"dist/",
	"build/",
	"*.lock",
}

// Config is topo's on-disk configuration, loaded from
// <root>/.topo/config.yaml.
type Config struct {
	Version int            `yaml:"version" json:"version"`
	Ignore  IgnoreConfig   `yaml:"ignore" json:"ignore"`
	Scoring ScoringConfig  `yaml:"scoring" json:"scoring"`
	Budget  BudgetConfig   `yaml:"budget" json:"budget"`
	Logging LoggingConfig  `yaml:"logging" json:"logging"`
}

// IgnoreConfig configures extra ignore patterns beyond VCS ignore
// rules.
type IgnoreConfig struct {
	Patterns []string `yaml:"patterns" json:"patterns"`
}

// ScoringConfig holds the scoring settings. Defaults match the scorer's
// built-in constants. Only BM25FWeight, HeuristicWeight and RRFConstant
// are passed to the scorer by `topo query`; FilenameWeight, SymbolsWeight,
// BodyWeight, K1 and B are loaded and validated but the BM25F scorer
// always uses its built-in values.
type ScoringConfig struct {
	FilenameWeight   float64 `yaml:"filename_weight" json:"filename_weight"`
	SymbolsWeight    float64 `yaml:"symbols_weight" json:"symbols_weight"`
	BodyWeight       float64 `yaml:"body_weight" json:"body_weight"`
	K1               float64 `yaml:"k1" json:"k1"`
	B                float64 `yaml:"b" json:"b"`
	BM25FWeight      float64 `yaml:"bm25f_weight" json:"bm25f_weight"`
	HeuristicWeight  float64 `yaml:"heuristic_weight" json:"heuristic_weight"`
	RRFConstant      float64 `yaml:"rrf_constant" json:"rrf_constant"`
}

// BudgetConfig configures the default token budget applied by the
// context selector when a caller does not specify one.
type BudgetConfig struct {
	DefaultTokens int `yaml:"default_tokens" json:"default_tokens"`
}

// LoggingConfig configures the default log level.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// NewConfig returns a Config populated with topo's defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Ignore: IgnoreConfig{
			Patterns: append([]string(nil), defaultIgnorePatterns...),
		},
		Scoring: ScoringConfig{
			FilenameWeight:  5.0,
			SymbolsWeight:   3.0,
			BodyWeight:      1.0,
			K1:              1.2,
			B:               0.75,
			BM25FWeight:     0.6,
			HeuristicWeight: 0.4,
			RRFConstant:     60,
		},
		Budget: BudgetConfig{
			DefaultTokens: 8000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ConfigPath returns the path to a repository's config file.
func ConfigPath(root string) string {
	return filepath.Join(root, ".topo", "config.yaml")
}

// Load loads configuration for the repository at root, in order of
// increasing precedence:
//  1. Hardcoded defaults
//  2. <root>/.topo/config.yaml, if present
//  3. TOPO_* environment variables
func Load(root string) (*Config, error) {
	cfg := NewConfig()

	if err := cfg.loadFromFile(root); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, topoerrors.ConfigErr("invalid configuration", err)
	}

	return cfg, nil
}

// loadFromFile loads <root>/.topo/config.yaml if it exists. A missing
// file is not an error; defaults apply.
func (c *Config) loadFromFile(root string) error {
	path := ConfigPath(root)
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return c.loadYAML(path)
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return topoerrors.ConfigErr(fmt.Sprintf("failed to read config file %s", path), err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return topoerrors.ConfigErr(fmt.Sprintf("failed to parse config file %s", path), err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if len(other.Ignore.Patterns) > 0 {
		c.Ignore.Patterns = append(c.Ignore.Patterns, other.Ignore.Patterns...)
	}

	if other.Scoring.FilenameWeight != 0 {
		c.Scoring.FilenameWeight = other.Scoring.FilenameWeight
	}
	if other.Scoring.SymbolsWeight != 0 {
		c.Scoring.SymbolsWeight = other.Scoring.SymbolsWeight
	}
	if other.Scoring.BodyWeight != 0 {
		c.Scoring.BodyWeight = other.Scoring.BodyWeight
	}
	if other.Scoring.K1 != 0 {
		c.Scoring.K1 = other.Scoring.K1
	}
	if other.Scoring.B != 0 {
		c.Scoring.B = other.Scoring.B
	}
	if other.Scoring.BM25FWeight != 0 {
		c.Scoring.BM25FWeight = other.Scoring.BM25FWeight
	}
	if other.Scoring.HeuristicWeight != 0 {
		c.Scoring.HeuristicWeight = other.Scoring.HeuristicWeight
	}
	if other.Scoring.RRFConstant != 0 {
		c.Scoring.RRFConstant = other.Scoring.RRFConstant
	}

	if other.Budget.DefaultTokens != 0 {
		c.Budget.DefaultTokens = other.Budget.DefaultTokens
	}

	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
}

// applyEnvOverrides applies TOPO_* environment variable overrides,
// the highest-precedence config source.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TOPO_BM25F_WEIGHT"); v != "" {
		if w, err := parseFloat64(v); err == nil && w >= 0 && w <= 1 {
			c.Scoring.BM25FWeight = w
		}
	}
	if v := os.Getenv("TOPO_HEURISTIC_WEIGHT"); v != "" {
		if w, err := parseFloat64(v); err == nil && w >= 0 && w <= 1 {
			c.Scoring.HeuristicWeight = w
		}
	}
	if v := os.Getenv("TOPO_RRF_CONSTANT"); v != "" {
		if k, err := parseFloat64(v); err == nil && k > 0 {
			c.Scoring.RRFConstant = k
		}
	}
	if v := os.Getenv("TOPO_BUDGET_DEFAULT_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Budget.DefaultTokens = n
		}
	}
	if v := os.Getenv("TOPO_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// parseFloat64 parses a string to float64, used for config parsing.
func parseFloat64(s string) (float64, error) {
	var f float64
	_, err := fmt.Sscanf(strings.TrimSpace(s), "%f", &f)
	return f, err
}

// Validate validates the configuration and returns an error if
// invalid.
func (c *Config) Validate() error {
	if c.Scoring.BM25FWeight < 0 || c.Scoring.BM25FWeight > 1 {
		return fmt.Errorf("scoring.bm25f_weight must be between 0 and 1, got %f", c.Scoring.BM25FWeight)
	}
	if c.Scoring.HeuristicWeight < 0 || c.Scoring.HeuristicWeight > 1 {
		return fmt.Errorf("scoring.heuristic_weight must be between 0 and 1, got %f", c.Scoring.HeuristicWeight)
	}

	sum := c.Scoring.BM25FWeight + c.Scoring.HeuristicWeight
	if math.Abs(sum-1.0) > 0.01 {
		return fmt.Errorf("scoring.bm25f_weight + scoring.heuristic_weight must equal 1.0, got %.2f", sum)
	}

	if c.Scoring.K1 <= 0 {
		return fmt.Errorf("scoring.k1 must be positive, got %f", c.Scoring.K1)
	}
	if c.Scoring.B < 0 || c.Scoring.B > 1 {
		return fmt.Errorf("scoring.b must be between 0 and 1, got %f", c.Scoring.B)
	}
	if c.Scoring.RRFConstant <= 0 {
		return fmt.Errorf("scoring.rrf_constant must be positive, got %f", c.Scoring.RRFConstant)
	}

	if c.Budget.DefaultTokens < 0 {
		return fmt.Errorf("budget.default_tokens must be non-negative, got %d", c.Budget.DefaultTokens)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level)
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return topoerrors.ConfigErr("failed to marshal config", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return topoerrors.ConfigErr("failed to create config directory", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return topoerrors.ConfigErr("failed to write config file", err)
	}

	return nil
}
