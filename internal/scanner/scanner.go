// Package scanner discovers expense reports on disk and loads them into memory.
package scanner

import (
	"fmt"
	"path/filepath"

	"fjacquet/md-expense-csv/internal/fileutils"
	"fjacquet/md-expense-csv/internal/logging"
	"fjacquet/md-expense-csv/internal/models"
)

// DefaultPattern matches the file names of monthly expense reports.
const DefaultPattern = "expense-report-*.md"

// ReportScanner loads expense reports from a directory.
type ReportScanner struct {
	logger logging.Logger
}

// NewReportScanner creates a new instance of ReportScanner.
func NewReportScanner(logger logging.Logger) *ReportScanner {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &ReportScanner{
		logger: logger.WithField("component", "ReportScanner"),
	}
}

// Scan reads every file in dir whose name matches pattern and returns them
// as Documents in lexicographic file name order. The Source of each Document
// is the file's base name. An empty pattern means DefaultPattern.
func (s *ReportScanner) Scan(dir, pattern string) ([]models.Document, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}

	files, err := fileutils.ListMatchingFiles(dir, pattern)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list expense reports",
			logging.Field{Key: logging.FieldInputDir, Value: dir},
			logging.Field{Key: logging.FieldPattern, Value: pattern})
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	if len(files) == 0 {
		s.logger.Warn("No expense reports found",
			logging.Field{Key: logging.FieldInputDir, Value: dir},
			logging.Field{Key: logging.FieldPattern, Value: pattern})
		return nil, nil
	}

	docs := make([]models.Document, 0, len(files))
	for _, path := range files {
		doc, err := s.ScanFile(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	s.logger.Info("Found expense reports",
		logging.Field{Key: logging.FieldInputDir, Value: dir},
		logging.Field{Key: logging.FieldCount, Value: len(docs)})

	return docs, nil
}

// ScanFile reads a single report.
func (s *ReportScanner) ScanFile(path string) (models.Document, error) {
	content, err := fileutils.ReadFile(path)
	if err != nil {
		s.logger.WithError(err).Error("Failed to read file",
			logging.Field{Key: logging.FieldFile, Value: path})
		return models.Document{}, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return models.Document{
		Source:  filepath.Base(path),
		Content: string(content),
	}, nil
}
