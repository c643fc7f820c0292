// Package mdparser extracts expense records from markdown expense reports.
// A report holds one or more tables whose header row names a "Date" column and
// a "GL Acct" column; every row of such a table becomes an ExpenseRecord.
package mdparser

import (
	"errors"
	"strings"

	"fjacquet/md-expense-csv/internal/logging"
	"fjacquet/md-expense-csv/internal/models"
	"fjacquet/md-expense-csv/internal/parser"
	"fjacquet/md-expense-csv/internal/parsererror"
	"fjacquet/md-expense-csv/internal/vendor"
)

const parserName = "markdown"

// Classifier maps a free-text description to a vendor label.
type Classifier interface {
	Classify(description string) string
}

// Parser is the markdown table extractor. It holds no per-parse state and is
// safe for concurrent use.
type Parser struct {
	parser.BaseParser
	classifier Classifier
}

// NewParser creates a Parser. A nil classifier falls back to the default
// vendor rules.
func NewParser(classifier Classifier, logger logging.Logger) *Parser {
	if classifier == nil {
		classifier = vendor.Default()
	}
	return &Parser{
		BaseParser: parser.NewBaseParser(logger),
		classifier: classifier,
	}
}

// Parse returns the records of every expense table in text, in row order.
func (p *Parser) Parse(text, source string) []models.ExpenseRecord {
	records, _ := p.ParseWithStats(text, source)
	return records
}

// ParseWithStats is Parse that also reports what the scanner saw.
func (p *Parser) ParseWithStats(text, source string) ([]models.ExpenseRecord, models.ParseStats) {
	var (
		records []models.ExpenseRecord
		stats   models.ParseStats
		state   = StateOutsideTable
	)

	for lineNo, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if isTableHeader(line) {
			state = StateInsideTable
			stats.TablesFound++
			continue
		}
		if state == StateOutsideTable {
			continue
		}

		switch {
		case isSeparatorRow(line):
		case closesTable(line):
			state = StateOutsideTable
		case isDataRow(line):
			stats.DataRows++
			record, ok := p.parseRow(line, source, lineNo+1, &stats)
			if !ok {
				stats.MalformedRows++
				continue
			}
			records = append(records, record)
		}
	}

	return records, stats
}

func (p *Parser) parseRow(line, source string, lineNo int, stats *models.ParseStats) (models.ExpenseRecord, bool) {
	fields := splitRow(line)
	if len(fields) < minRowFields {
		p.GetLogger().Debug("Skipping table row with too few cells",
			logging.Field{Key: logging.FieldSource, Value: source},
			logging.Field{Key: logging.FieldLine, Value: lineNo},
			logging.Field{Key: logging.FieldCount, Value: len(fields)})
		return models.ExpenseRecord{}, false
	}

	amount, err := ParseAmount(fields[4])
	if err != nil {
		var pe *parsererror.ParseError
		if errors.As(err, &pe) {
			err = pe.AtLine(lineNo)
		}
		stats.DefaultedAmounts++
		p.GetLogger().WithError(err).Debug("Amount defaulted to zero",
			logging.Field{Key: logging.FieldSource, Value: source},
			logging.Field{Key: logging.FieldLine, Value: lineNo})
	}

	description := fields[3]
	return models.ExpenseRecord{
		Date:        fields[0],
		Description: description,
		Vendor:      p.classifier.Classify(description),
		Amount:      amount,
		GLCode:      strings.TrimRight(fields[1], "."),
		Department:  fields[2],
		SourceFile:  source,
	}, true
}

// ParseDocument parses one report and attaches its front matter, if any.
func (p *Parser) ParseDocument(doc models.Document) models.DocumentResult {
	records, stats := p.ParseWithStats(doc.Content, doc.Source)

	meta, err := ExtractMetadata(doc.Content)
	if err != nil {
		p.GetLogger().WithError(err).Warn("Ignoring unreadable front matter",
			logging.Field{Key: logging.FieldSource, Value: doc.Source})
	}

	if stats.TablesFound == 0 {
		p.GetLogger().Debug("No expense table found",
			logging.Field{Key: logging.FieldSource, Value: doc.Source})
	}

	return models.DocumentResult{
		Source:   doc.Source,
		Records:  records,
		Stats:    stats,
		Metadata: meta,
	}
}

// MissingTableError describes doc as a report without an expense table.
func MissingTableError(doc models.Document) *parsererror.InvalidFormatError {
	return &parsererror.InvalidFormatError{
		FilePath:             doc.Source,
		ExpectedFormat:       "markdown table with '| Date |' and 'GL Acct' header",
		ActualContentSnippet: snippet(doc.Content, 60),
		Msg:                  "no expense table header found",
	}
}

// snippet returns at most n runes of the trimmed text.
func snippet(text string, n int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

var _ parser.DocumentParser = (*Parser)(nil)
