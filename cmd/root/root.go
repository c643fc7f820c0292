// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/md-expense-csv/internal/config"
	"fjacquet/md-expense-csv/internal/container"
	"fjacquet/md-expense-csv/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input     string
	Output    string
	Validate  bool
	Config    string
	LogLevel  string
	LogFormat string
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "md-expense-csv",
		Short: "A CLI tool to consolidate markdown expense reports into a single CSV.",
		Long: `md-expense-csv reads markdown expense reports, extracts the rows of their
expense tables, attributes each row to a canonical vendor and writes one
consolidated CSV with the columns Date, Description, Vendor, Amount, GL Code
and Department.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: persistentPreRun,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	// SharedFlags holds the flags accessible to all commands
	SharedFlags = CommonFlags{}

	appConfig    *config.Config
	appContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input directory of expense reports")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Fail when a report has no expense table")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Config, "config", "", "Config file (default searches $HOME/.md-expense-csv, .md-expense-csv and .)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text or json)")
}

func persistentPreRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.InitializeConfigFromFile(SharedFlags.Config)
	if err != nil {
		return err
	}
	if err := ApplyFlagOverrides(cfg, SharedFlags); err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	appConfig = cfg
	appContainer = c
	return nil
}

// ApplyFlagOverrides copies the command-line flags that take precedence over
// the configuration file and environment into cfg.
func ApplyFlagOverrides(cfg *config.Config, flags CommonFlags) error {
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.LogFormat != "" {
		if flags.LogFormat != "text" && flags.LogFormat != "json" {
			return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", flags.LogFormat)
		}
		cfg.Log.Format = flags.LogFormat
	}
	if flags.Input != "" {
		cfg.Input.Directory = flags.Input
	}
	return nil
}

// GetConfig returns the configuration loaded for the running command.
func GetConfig() *config.Config {
	return appConfig
}

// GetContainer returns the dependency container built for the running command.
func GetContainer() *container.Container {
	return appContainer
}

// GetLogger returns the application logger, or a default one before the
// container is built.
func GetLogger() logging.Logger {
	if appContainer != nil {
		return appContainer.GetLogger()
	}
	return logging.NewLogrusAdapter("info", "text")
}
