package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dotcommander/pwgrade/internal/project"
	"github.com/dotcommander/pwgrade/internal/scoring"
	"github.com/spf13/viper"
)

// Config represents the pwgrade configuration
type Config struct {
	Root        string         `mapstructure:"root"`
	Exclude     []string       `mapstructure:"exclude"`
	Format      string         `mapstructure:"format"`
	Output      string         `mapstructure:"output"`
	FailOn      string         `mapstructure:"failOn"`
	Quiet       bool           `mapstructure:"quiet"`
	Verbose     bool           `mapstructure:"verbose"`
	Schemas     SchemaConfig   `mapstructure:"schemas"`
	Baseline    BaselineConfig `mapstructure:"baseline"`
	Concurrency int            `mapstructure:"concurrency"`
}

// SchemaConfig contains schema configuration
type SchemaConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// BaselineConfig locates the grade baseline file
type BaselineConfig struct {
	Path string `mapstructure:"path"`
}

// ConfigFiles are the config file names looked up in the working directory
// or the nearest ancestor holding one, first match wins.
var ConfigFiles = []string{".pwgraderc.json", ".pwgraderc.yaml", ".pwgraderc.yml"}

// LoadConfig loads configuration from defaults, the nearest config file,
// PWGRADE_* environment variables and bound flags. A non-empty rootPath
// overrides the configured root.
func LoadConfig(rootPath string) (*Config, error) {
	viper.SetDefault("root", ".")
	viper.SetDefault("format", "console")
	viper.SetDefault("failOn", "")
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("concurrency", 4)
	viper.SetDefault("schemas.enabled", true)
	viper.SetDefault("baseline.path", ".pwgrade-baseline.json")

	dir, err := project.FindConfigDir(".", ConfigFiles)
	if err != nil {
		return nil, fmt.Errorf("error locating config file: %w", err)
	}

	if dir != "" {
		for _, name := range ConfigFiles {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			viper.SetConfigFile(path)
			if err := viper.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file %s: %w", path, err)
			}
			break
		}
	}

	viper.SetEnvPrefix("PWGRADE")
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if rootPath != "" {
		config.Root = rootPath
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Format != "console" && config.Format != "json" && config.Format != "markdown" {
		return fmt.Errorf("invalid format: %s. Must be 'console', 'json', or 'markdown'", config.Format)
	}

	if config.FailOn != "" {
		if _, ok := scoring.ParseGrade(config.FailOn); !ok {
			return fmt.Errorf("invalid fail-on grade: %s. Must be a letter grade such as 'B' or 'A-'", config.FailOn)
		}
	}

	if config.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}

	for _, pattern := range config.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}

	return nil
}
