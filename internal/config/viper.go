// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/md-expense-csv/internal/common"
	"fjacquet/md-expense-csv/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of the environment variables read by InitializeConfig.
const EnvPrefix = "MDEXP"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Input struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
		Pattern   string `mapstructure:"pattern" yaml:"pattern"`
	} `mapstructure:"input" yaml:"input"`

	Output struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"output" yaml:"output"`

	Vendors struct {
		RulesFile string `mapstructure:"rules_file" yaml:"rules_file"`
	} `mapstructure:"vendors" yaml:"vendors"`

	Processing struct {
		Workers int `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"processing" yaml:"processing"`

	Report struct {
		TopVendors int `mapstructure:"top_vendors" yaml:"top_vendors"`
	} `mapstructure:"report" yaml:"report"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return load("")
}

// InitializeConfigFromFile is InitializeConfig with an explicit config file.
// Unlike the search-path lookup, a missing or unreadable file is an error.
func InitializeConfigFromFile(path string) (*Config, error) {
	if path == "" {
		return InitializeConfig()
	}
	return load(path)
}

func load(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.md-expense-csv")
		v.AddConfigPath(".md-expense-csv")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", string(common.DefaultDelimiter))

	v.SetDefault("input.directory", ".")
	v.SetDefault("input.pattern", "expense-report-*.md")
	v.SetDefault("output.file", "historical-expenses-consolidated.csv")

	v.SetDefault("vendors.rules_file", "")

	v.SetDefault("processing.workers", 4)
	v.SetDefault("report.top_vendors", 15)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Input.Pattern == "" {
		return fmt.Errorf("input.pattern must not be empty")
	}
	if _, err := filepath.Match(config.Input.Pattern, ""); err != nil {
		return fmt.Errorf("input.pattern is not a valid glob: %s", config.Input.Pattern)
	}

	if config.Processing.Workers < 1 || config.Processing.Workers > 64 {
		return fmt.Errorf("processing.workers must be between 1 and 64, got: %d", config.Processing.Workers)
	}

	if config.Report.TopVendors < 1 {
		return fmt.Errorf("report.top_vendors must be positive, got: %d", config.Report.TopVendors)
	}

	return nil
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	return common.ParseDelimiter(c.CSV.Delimiter)
}

// OutputPath resolves Output.File against the input directory when it is relative.
func (c *Config) OutputPath() string {
	if c.Output.File == "" || filepath.IsAbs(c.Output.File) {
		return c.Output.File
	}
	return filepath.Join(c.Input.Directory, c.Output.File)
}

// ConfigureLoggingFromConfig builds the logrus logger described by the log
// section. Entries go to stderr so that reports printed on stdout stay clean.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

// NewLogger returns the application logger for config.
func NewLogger(config *Config) logging.Logger {
	return logging.NewLogrusAdapterFromLogger(ConfigureLoggingFromConfig(config))
}
