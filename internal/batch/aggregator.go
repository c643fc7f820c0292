// Package batch parses a set of expense reports and merges their records.
package batch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fjacquet/md-expense-csv/internal/logging"
	"fjacquet/md-expense-csv/internal/models"
	"fjacquet/md-expense-csv/internal/parser"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the number of documents parsed at the same time.
const DefaultWorkers = 4

// Result is the outcome of one aggregation run.
type Result struct {
	RunID     string
	Records   []models.ExpenseRecord  // all records, in document then row order
	Documents []models.DocumentResult // one entry per input document, in input order
}

// DocumentCount returns the number of documents that were parsed.
func (r Result) DocumentCount() int {
	return len(r.Documents)
}

// TablelessDocuments returns the sources that contributed no expense table.
func (r Result) TablelessDocuments() []string {
	var sources []string
	for _, d := range r.Documents {
		if !d.HasTable() {
			sources = append(sources, d.Source)
		}
	}
	return sources
}

// Aggregator parses documents, possibly in parallel, and merges the records.
type Aggregator struct {
	parser  parser.DocumentParser
	logger  logging.Logger
	workers int
}

// NewAggregator creates a new Aggregator. workers below one means DefaultWorkers.
func NewAggregator(p parser.DocumentParser, logger logging.Logger, workers int) *Aggregator {
	if workers < 1 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Aggregator{
		parser:  p,
		logger:  logger,
		workers: workers,
	}
}

// Workers returns the configured parallelism.
func (a *Aggregator) Workers() int {
	return a.workers
}

// Aggregate parses every document and returns the flattened records in input
// order. Documents are independent, so they are parsed concurrently; the
// output order does not depend on scheduling. The only error is ctx's.
func (a *Aggregator) Aggregate(ctx context.Context, docs []models.Document) (Result, error) {
	runID := uuid.New().String()
	logger := a.logger.WithField(logging.FieldRunID, runID)
	start := time.Now()

	logger.Info("Aggregating expense reports",
		logging.Field{Key: logging.FieldCount, Value: len(docs)},
		logging.Field{Key: logging.FieldWorkers, Value: a.workers})

	results := make([]models.DocumentResult, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i := range docs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.parseDocument(logger, docs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("Aggregation cancelled")
		return Result{}, fmt.Errorf("aggregation cancelled: %w", err)
	}

	total := 0
	for _, r := range results {
		total += r.Count()
	}
	records := make([]models.ExpenseRecord, 0, total)
	for _, r := range results {
		records = append(records, r.Records...)
	}

	a.detectAndLogDuplicates(logger, records)

	result := Result{
		RunID:     runID,
		Records:   records,
		Documents: results,
	}

	logger.Info("Aggregated expense records",
		logging.Field{Key: logging.FieldCount, Value: len(records)},
		logging.Field{Key: "tableless_documents", Value: len(result.TablelessDocuments())},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).String()})

	return result, nil
}

func (a *Aggregator) parseDocument(logger logging.Logger, doc models.Document) models.DocumentResult {
	result := a.parser.ParseDocument(doc)

	fields := []logging.Field{
		{Key: logging.FieldSource, Value: doc.Source},
		{Key: logging.FieldCount, Value: result.Count()},
	}
	if !result.Metadata.IsZero() {
		fields = append(fields, logging.Field{Key: "report_id", Value: result.Metadata.ReportID})
	}
	if !result.HasTable() {
		fields = append(fields, logging.Field{Key: "has_table", Value: false})
	}
	if result.Stats.MalformedRows > 0 {
		fields = append(fields, logging.Field{Key: "malformed_rows", Value: result.Stats.MalformedRows})
	}
	logger.Info("Parsed expense report", fields...)

	return result
}

// duplicateKey identifies records that look like the same expense.
type duplicateKey struct {
	date   string
	amount string
	vendor string
}

func keyOf(r models.ExpenseRecord) duplicateKey {
	return duplicateKey{
		date:   strings.TrimSpace(r.Date),
		amount: r.AmountString(),
		vendor: strings.ToLower(strings.TrimSpace(r.Vendor)),
	}
}

// detectAndLogDuplicates warns about records with the same date, amount and
// vendor coming from different documents. All records are kept.
func (a *Aggregator) detectAndLogDuplicates(logger logging.Logger, records []models.ExpenseRecord) int {
	firstSeen := make(map[duplicateKey]models.ExpenseRecord, len(records))
	duplicateCount := 0

	for _, r := range records {
		key := keyOf(r)
		prev, exists := firstSeen[key]
		if !exists {
			firstSeen[key] = r
			continue
		}
		if prev.SourceFile == r.SourceFile {
			continue
		}

		duplicateCount++
		logger.Warn("Potential duplicate expense",
			logging.Field{Key: "date", Value: r.Date},
			logging.Field{Key: "amount", Value: r.AmountString()},
			logging.Field{Key: logging.FieldVendor, Value: r.Vendor},
			logging.Field{Key: logging.FieldSource, Value: r.SourceFile},
			logging.Field{Key: "first_source", Value: prev.SourceFile})
	}

	if duplicateCount > 0 {
		logger.Warn("Found potential duplicate expenses",
			logging.Field{Key: logging.FieldCount, Value: duplicateCount})
	}
	return duplicateCount
}
