package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mrab54/sleeper-db/internal/api"
	"github.com/mrab54/sleeper-db/internal/errors"
	"github.com/mrab54/sleeper-db/internal/prober"
)

// Config holds the complete configuration for a survey run.
type Config struct {
	LeagueID         string `yaml:"league_id"`
	BaseURL          string `yaml:"base_url"`
	OutputDir        string `yaml:"output_dir"`
	MaxDepth         int    `yaml:"max_depth"`
	SampleSize       int    `yaml:"sample_size"`
	MatchupWeeks     []int  `yaml:"matchup_weeks"`
	TransactionWeeks []int  `yaml:"transaction_weeks"`
	TimeoutSeconds   int    `yaml:"timeout_seconds"`
	FallbackSport    string `yaml:"fallback_sport"`
	FallbackSeason   string `yaml:"fallback_season"`
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		BaseURL:          api.DefaultBaseURL,
		OutputDir:        filepath.Join("docs", "research"),
		MaxDepth:         prober.DefaultMaxDepth,
		SampleSize:       2,
		MatchupWeeks:     []int{1, 8, 15},
		TransactionWeeks: []int{1, 5, 10},
		TimeoutSeconds:   30,
		FallbackSport:    "nfl",
		FallbackSeason:   "2024",
	}
}

// LoadConfig loads configuration from a YAML file, starting from the
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file %q", path), err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file %q", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in the current directory and
// its parents.
func FindConfigFile() string {
	configNames := []string{".sleeper-db.yml", ".sleeper-db.yaml", "sleeper-db.yml", "sleeper-db.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate rejects values the survey cannot run with.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return errors.NewConfigError(fmt.Sprintf("max_depth must be non-negative, got %d", c.MaxDepth), nil)
	}
	if c.SampleSize < 1 {
		return errors.NewConfigError(fmt.Sprintf("sample_size must be at least 1, got %d", c.SampleSize), nil)
	}
	if c.TimeoutSeconds < 1 {
		return errors.NewConfigError(fmt.Sprintf("timeout_seconds must be at least 1, got %d", c.TimeoutSeconds), nil)
	}
	for _, week := range append(append([]int{}, c.MatchupWeeks...), c.TransactionWeeks...) {
		if week < 1 {
			return errors.NewConfigError(fmt.Sprintf("weeks must be positive, got %d", week), nil)
		}
	}
	return nil
}
