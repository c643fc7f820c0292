// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fjacquet/md-expense-csv/internal/batch"
	internalcommon "fjacquet/md-expense-csv/internal/common"
	"fjacquet/md-expense-csv/internal/container"
	"fjacquet/md-expense-csv/internal/logging"
	"fjacquet/md-expense-csv/internal/mdparser"
	"fjacquet/md-expense-csv/internal/models"
	"fjacquet/md-expense-csv/internal/report"
)

// LoadReports scans InputDir for reports and parses them. With Validate set,
// a report without an expense table is an error.
func LoadReports(ctx context.Context, c *container.Container, opts Options) (batch.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := c.GetLogger()

	if err := opts.Check(); err != nil {
		return batch.Result{}, err
	}

	docs, err := c.GetScanner().Scan(opts.InputDir, opts.Pattern)
	if err != nil {
		return batch.Result{}, err
	}

	result, err := c.GetAggregator().Aggregate(ctx, docs)
	if err != nil {
		return batch.Result{}, err
	}

	if opts.Validate {
		log.Info("Validating format...")
		if err := requireTables(log, docs, result); err != nil {
			return batch.Result{}, err
		}
		log.Info("Validation successful.")
	}

	return result, nil
}

// requireTables fails when a document produced no expense table. Each such
// document is logged with its *parsererror.InvalidFormatError.
func requireTables(log logging.Logger, docs []models.Document, result batch.Result) error {
	var (
		missing []string
		errs    []error
	)
	for i, d := range result.Documents {
		if d.HasTable() {
			continue
		}
		formatErr := mdparser.MissingTableError(docs[i])
		log.WithError(formatErr).Warn("Document has no expense table",
			logging.Field{Key: logging.FieldSource, Value: d.Source})
		missing = append(missing, d.Source)
		errs = append(errs, formatErr)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("reports without an expense table: %s: %w", strings.Join(missing, ", "), errors.Join(errs...))
}

// Consolidate runs the whole pipeline and writes the CSV to OutputFile.
// It returns the aggregation result so callers can summarize it.
func Consolidate(ctx context.Context, c *container.Container, opts Options) (batch.Result, error) {
	if err := opts.CheckOutput(); err != nil {
		return batch.Result{}, err
	}

	result, err := LoadReports(ctx, c, opts)
	if err != nil {
		return batch.Result{}, err
	}

	cfg := c.GetConfig()
	records := result.Records
	if records == nil {
		records = []models.ExpenseRecord{}
	}
	if err := internalcommon.WriteRecordsToCSV(records, opts.OutputFile, cfg.Delimiter(), c.GetLogger()); err != nil {
		return batch.Result{}, fmt.Errorf("error writing consolidated CSV: %w", err)
	}

	c.GetLogger().Info("Consolidation completed successfully",
		logging.Field{Key: logging.FieldOutputFile, Value: opts.OutputFile},
		logging.Field{Key: logging.FieldCount, Value: len(records)},
		logging.Field{Key: logging.FieldRunID, Value: result.RunID})

	return result, nil
}

// Summarize builds the summary of a consolidation run.
func Summarize(c *container.Container, result batch.Result, outputFile string) report.Summary {
	s := report.Summarize(result.Records, c.GetConfig().Report.TopVendors).WithDocuments(result.Documents)
	s.OutputFile = outputFile
	return s
}
