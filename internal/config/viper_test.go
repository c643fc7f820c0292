package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/md-expense-csv/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, ".", config.Input.Directory)
	assert.Equal(t, "expense-report-*.md", config.Input.Pattern)
	assert.Equal(t, "historical-expenses-consolidated.csv", config.Output.File)
	assert.Equal(t, "", config.Vendors.RulesFile)
	assert.Equal(t, 4, config.Processing.Workers)
	assert.Equal(t, 15, config.Report.TopVendors)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)

	testEnvVars := map[string]string{
		"MDEXP_LOG_LEVEL":          "debug",
		"MDEXP_LOG_FORMAT":         "json",
		"MDEXP_CSV_DELIMITER":      ";",
		"MDEXP_INPUT_DIRECTORY":    "/data/reports",
		"MDEXP_INPUT_PATTERN":      "*.md",
		"MDEXP_VENDORS_RULES_FILE": "rules.yaml",
		"MDEXP_PROCESSING_WORKERS": "8",
		"MDEXP_REPORT_TOP_VENDORS": "5",
	}

	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, "/data/reports", config.Input.Directory)
	assert.Equal(t, "*.md", config.Input.Pattern)
	assert.Equal(t, "rules.yaml", config.Vendors.RulesFile)
	assert.Equal(t, 8, config.Processing.Workers)
	assert.Equal(t, 5, config.Report.TopVendors)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
log:
  level: "warn"
  format: "json"
csv:
  delimiter: "|"
input:
  pattern: "report-*.md"
processing:
  workers: 2
`

	err := os.WriteFile(configFile, []byte(configContent), 0600)
	require.NoError(t, err)

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		err := os.Chdir(originalDir)
		require.NoError(t, err)
	}()

	err = os.Chdir(tempDir)
	require.NoError(t, err)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, "report-*.md", config.Input.Pattern)
	assert.Equal(t, 2, config.Processing.Workers)
	assert.Equal(t, 15, config.Report.TopVendors)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "custom.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("log:\n  level: warn\nprocessing:\n  workers: 2\n"), 0600))

	// Environment beats the file
	t.Setenv("MDEXP_LOG_LEVEL", "error")

	config, err := InitializeConfigFromFile(configFile)
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)
	assert.Equal(t, 2, config.Processing.Workers)
	assert.Equal(t, "text", config.Log.Format)
}

func TestInitializeConfigFromFile_Missing(t *testing.T) {
	clearTestEnvVars(t)

	_, err := InitializeConfigFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.Log.Level = "info"
		c.Log.Format = "text"
		c.CSV.Delimiter = ","
		c.Input.Pattern = "*.md"
		c.Processing.Workers = 4
		c.Report.TopVendors = 15
		return c
	}

	require.NoError(t, validateConfig(valid()))

	tests := []struct {
		name      string
		mutate    func(c *Config)
		errSubstr string
	}{
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"multi char delimiter", func(c *Config) { c.CSV.Delimiter = ";;" }, "single character"},
		{"empty delimiter", func(c *Config) { c.CSV.Delimiter = "" }, "single character"},
		{"empty pattern", func(c *Config) { c.Input.Pattern = "" }, "input.pattern"},
		{"bad pattern", func(c *Config) { c.Input.Pattern = "[" }, "valid glob"},
		{"zero workers", func(c *Config) { c.Processing.Workers = 0 }, "processing.workers"},
		{"too many workers", func(c *Config) { c.Processing.Workers = 65 }, "processing.workers"},
		{"zero top vendors", func(c *Config) { c.Report.TopVendors = 0 }, "report.top_vendors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := validateConfig(c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestConfig_Delimiter(t *testing.T) {
	c := &Config{}
	assert.Equal(t, ',', c.Delimiter())

	c.CSV.Delimiter = "\t"
	assert.Equal(t, '\t', c.Delimiter())
}

func TestConfig_OutputPath(t *testing.T) {
	c := &Config{}
	c.Input.Directory = "reports"
	c.Output.File = "out.csv"
	assert.Equal(t, filepath.Join("reports", "out.csv"), c.OutputPath())

	abs := filepath.Join(t.TempDir(), "out.csv")
	c.Output.File = abs
	assert.Equal(t, abs, c.OutputPath())
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	c := &Config{}
	c.Log.Level = "debug"
	c.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(c)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)

	c.Log.Level = "nonsense"
	c.Log.Format = "text"
	logger = ConfigureLoggingFromConfig(c)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	_, isText := logger.Formatter.(*logrus.TextFormatter)
	assert.True(t, isText)
}

func TestNewLogger(t *testing.T) {
	c := &Config{}
	c.Log.Level = "warn"
	c.Log.Format = "text"

	adapter, ok := NewLogger(c).(*logging.LogrusAdapter)
	require.True(t, ok)
	assert.Equal(t, logrus.WarnLevel, adapter.Logrus().GetLevel())
	assert.Equal(t, os.Stderr, adapter.Logrus().Out)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("MDEXP_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("MDEXP_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("MDEXP_TEST_UNSET_VALUE", "fallback"))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("MDEXP_FROM_DOTENV=yes\n"), 0600))
	t.Setenv("MDEXP_FROM_DOTENV", "")
	require.NoError(t, os.Unsetenv("MDEXP_FROM_DOTENV"))

	loaded := loadEnvFile(filepath.Join(dir, "missing.env"), envFile)
	assert.Equal(t, envFile, loaded)
	assert.Equal(t, "yes", os.Getenv("MDEXP_FROM_DOTENV"))

	assert.Equal(t, "", loadEnvFile(filepath.Join(dir, "nope")))
}

func clearTestEnvVars(t *testing.T) {
	envVars := []string{
		"MDEXP_LOG_LEVEL",
		"MDEXP_LOG_FORMAT",
		"MDEXP_CSV_DELIMITER",
		"MDEXP_INPUT_DIRECTORY",
		"MDEXP_INPUT_PATTERN",
		"MDEXP_OUTPUT_FILE",
		"MDEXP_VENDORS_RULES_FILE",
		"MDEXP_PROCESSING_WORKERS",
		"MDEXP_REPORT_TOP_VENDORS",
	}

	for _, envVar := range envVars {
		if err := os.Unsetenv(envVar); err != nil {
			fmt.Printf("Warning: failed to unset environment variable %s: %v\n", envVar, err)
		}
	}
}
