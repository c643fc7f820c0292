package main

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/md-expense-csv/cmd/classify"
	"fjacquet/md-expense-csv/cmd/consolidate"
	"fjacquet/md-expense-csv/cmd/root"
	"fjacquet/md-expense-csv/cmd/summary"
	"fjacquet/md-expense-csv/internal/config"

	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	config.LoadEnv()

	// 2. Configure the global log level before any logger is created
	configureLogLevelDirectly()

	// 3. Initialize root command
	root.Init()

	// 4. Add all subcommands
	root.Cmd.AddCommand(consolidate.Cmd)
	root.Cmd.AddCommand(classify.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
}

// configureLogLevelDirectly sets the global logrus level from the environment
// and returns the configured level
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := config.GetEnv(config.EnvPrefix+"_LOG_LEVEL", "info")

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
