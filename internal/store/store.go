// Package store loads the vendor rule table from disk.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/md-expense-csv/internal/fileutils"
	"fjacquet/md-expense-csv/internal/logging"
	"fjacquet/md-expense-csv/internal/parsererror"
	"fjacquet/md-expense-csv/internal/validation"
	"fjacquet/md-expense-csv/internal/vendor"

	"gopkg.in/yaml.v3"
)

// RuleLoader provides the vendor rule table.
type RuleLoader interface {
	LoadRules() (RuleTable, error)
}

// RuleTable is a compiled, ordered vendor rule table.
type RuleTable struct {
	Specs         []vendor.RuleSpec
	Rules         []vendor.Rule
	NoisePrefixes []string
	Source        string // file the table came from, empty for the built-in rules
}

// IsDefault reports whether the table is the built-in one.
func (t RuleTable) IsDefault() bool {
	return t.Source == ""
}

// DefaultRuleTable returns the built-in vendor rules.
func DefaultRuleTable() RuleTable {
	return RuleTable{
		Specs:         vendor.DefaultRuleSpecs(),
		Rules:         vendor.DefaultRules(),
		NoisePrefixes: vendor.DefaultNoisePrefixes(),
	}
}

// rulesFile is the YAML layout of a rules file.
type rulesFile struct {
	Rules         []vendor.RuleSpec `yaml:"rules"`
	NoisePrefixes []string          `yaml:"noise_prefixes,omitempty"`
}

// VendorRuleStore manages loading and saving of vendor rule files.
type VendorRuleStore struct {
	RulesFile string
	logger    logging.Logger
}

// NewVendorRuleStore creates a store for the given rules file. An empty file
// name means the built-in rules.
func NewVendorRuleStore(rulesFile string, logger logging.Logger) *VendorRuleStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &VendorRuleStore{
		RulesFile: rulesFile,
		logger:    logger,
	}
}

// FindConfigFile resolves a rules file name. Absolute paths are used as
// given; relative names are tried in the working directory, in config/ and
// in ~/.config/md-expense-csv.
func (s *VendorRuleStore) FindConfigFile(filename string) (string, error) {
	locations := []string{filename}
	if !filepath.IsAbs(filename) {
		locations = append(locations, filepath.Join("config", filename))
		if homeDir, err := os.UserHomeDir(); err == nil {
			locations = append(locations, filepath.Join(homeDir, ".config", "md-expense-csv", filename))
		}
	}

	for _, location := range locations {
		if fileutils.FileExists(location) {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadRules returns the rule table of RulesFile, or the built-in table when
// no file is configured or the file cannot be found. Rules keep file order.
// A file that cannot be decoded or holds an invalid rule yields a
// *parsererror.ValidationError.
func (s *VendorRuleStore) LoadRules() (RuleTable, error) {
	if s.RulesFile == "" {
		return DefaultRuleTable(), nil
	}

	filePath, err := s.FindConfigFile(s.RulesFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("Vendor rules file not found, using built-in rules",
				logging.Field{Key: logging.FieldFile, Value: s.RulesFile})
			return DefaultRuleTable(), nil
		}
		return RuleTable{}, fmt.Errorf("error resolving vendor rules file: %w", err)
	}

	if info, statErr := os.Stat(filePath); statErr == nil {
		if permErr := validation.ValidateFilePermissions(info.Mode()); permErr != nil {
			s.logger.Warn("Vendor rules file has unsafe permissions",
				logging.Field{Key: logging.FieldFile, Value: filePath},
				logging.Field{Key: logging.FieldReason, Value: permErr.Error()})
		}
	}

	data, err := fileutils.ReadFile(filePath)
	if err != nil {
		return RuleTable{}, fmt.Errorf("error reading vendor rules file: %w", err)
	}

	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return RuleTable{}, &parsererror.ValidationError{
			FilePath: filePath,
			Reason:   fmt.Sprintf("invalid YAML: %v", err),
		}
	}
	if len(file.Rules) == 0 {
		return RuleTable{}, &parsererror.ValidationError{
			FilePath: filePath,
			Reason:   "no rules defined",
		}
	}

	rules, err := vendor.CompileRules(file.Rules)
	if err != nil {
		return RuleTable{}, &parsererror.ValidationError{
			FilePath: filePath,
			Reason:   err.Error(),
		}
	}

	prefixes := file.NoisePrefixes
	if prefixes == nil {
		prefixes = vendor.DefaultNoisePrefixes()
	}

	s.logger.Info("Loaded vendor rules",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(rules)})

	return RuleTable{
		Specs:         file.Rules,
		Rules:         rules,
		NoisePrefixes: prefixes,
		Source:        filePath,
	}, nil
}

// SaveRules writes a rule table to path in the format LoadRules reads.
func (s *VendorRuleStore) SaveRules(path string, table RuleTable) error {
	data, err := yaml.Marshal(rulesFile{
		Rules:         table.Specs,
		NoisePrefixes: table.NoisePrefixes,
	})
	if err != nil {
		return fmt.Errorf("error marshaling vendor rules: %w", err)
	}

	if err := fileutils.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("error writing vendor rules file: %w", err)
	}

	s.logger.Info("Saved vendor rules",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(table.Specs)})
	return nil
}
