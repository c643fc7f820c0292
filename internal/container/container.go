// Package container provides dependency injection for the md-expense-csv application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/md-expense-csv/internal/batch"
	"fjacquet/md-expense-csv/internal/config"
	"fjacquet/md-expense-csv/internal/logging"
	"fjacquet/md-expense-csv/internal/mdparser"
	"fjacquet/md-expense-csv/internal/report"
	"fjacquet/md-expense-csv/internal/scanner"
	"fjacquet/md-expense-csv/internal/store"
	"fjacquet/md-expense-csv/internal/vendor"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	ruleStore  *store.VendorRuleStore
	rules      store.RuleTable
	classifier *vendor.Classifier
	scanner    *scanner.ReportScanner
	aggregator *batch.Aggregator
	reporter   *report.Generator
}

// NewContainer creates and wires all application dependencies.
// The vendor rule table is loaded once here and is read-only afterwards.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := config.NewLogger(cfg)
	ruleStore := store.NewVendorRuleStore(cfg.Vendors.RulesFile, logger)

	c, err := NewContainerWithDeps(cfg, logger, ruleStore)
	if err != nil {
		return nil, err
	}
	c.ruleStore = ruleStore
	return c, nil
}

// NewContainerWithDeps wires the container around an existing logger and rule
// loader. It is the seam used by tests.
func NewContainerWithDeps(cfg *config.Config, logger logging.Logger, rules store.RuleLoader) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = config.NewLogger(cfg)
	}
	if rules == nil {
		rules = store.NewVendorRuleStore(cfg.Vendors.RulesFile, logger)
	}

	table, err := rules.LoadRules()
	if err != nil {
		return nil, fmt.Errorf("failed to load vendor rules: %w", err)
	}

	classifier := vendor.NewClassifier(table.Rules, table.NoisePrefixes, logger)

	c := &Container{
		logger:     logger,
		config:     cfg,
		rules:      table,
		classifier: classifier,
		scanner:    scanner.NewReportScanner(logger),
		aggregator: batch.NewAggregator(mdparser.NewParser(classifier, logger), logger, cfg.Processing.Workers),
		reporter:   report.NewGenerator(logger),
	}

	logger.Debug("Container initialized successfully",
		logging.Field{Key: "vendor_rules", Value: len(table.Rules)},
		logging.Field{Key: "custom_rules", Value: !table.IsDefault()},
		logging.Field{Key: logging.FieldWorkers, Value: c.aggregator.Workers()})

	return c, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetRuleStore returns the vendor rule store, or nil when the container was
// built around another RuleLoader.
func (c *Container) GetRuleStore() *store.VendorRuleStore {
	return c.ruleStore
}

// GetRuleTable returns the vendor rule table in use.
func (c *Container) GetRuleTable() store.RuleTable {
	return c.rules
}

// GetClassifier returns the vendor classifier.
func (c *Container) GetClassifier() *vendor.Classifier {
	return c.classifier
}

// GetScanner returns the report scanner.
func (c *Container) GetScanner() *scanner.ReportScanner {
	return c.scanner
}

// GetAggregator returns the batch aggregator.
func (c *Container) GetAggregator() *batch.Aggregator {
	return c.aggregator
}

// GetReportGenerator returns the summary renderer.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.reporter
}
