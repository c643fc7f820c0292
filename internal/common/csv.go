// Package common provides the CSV plumbing shared by the commands.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"fjacquet/md-expense-csv/internal/fileutils"
	"fjacquet/md-expense-csv/internal/logging"
	"fjacquet/md-expense-csv/internal/models"
	"fjacquet/md-expense-csv/internal/parsererror"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// DefaultDelimiter is the field separator of the consolidated CSV.
const DefaultDelimiter = ','

// Header is the fixed column order of the consolidated CSV.
var Header = []string{"Date", "Description", "Vendor", "Amount", "GL Code", "Department"}

// ExpenseCSVRow is one line of the consolidated CSV.
// It uses struct tags for gocsv marshaling.
type ExpenseCSVRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Vendor      string `csv:"Vendor"`
	Amount      string `csv:"Amount"`
	GLCode      string `csv:"GL Code"`
	Department  string `csv:"Department"`
}

// ToCSVRow converts a record to its CSV form. The amount is rendered as a
// plain number with two decimals.
func ToCSVRow(r models.ExpenseRecord) ExpenseCSVRow {
	return ExpenseCSVRow{
		Date:        r.Date,
		Description: r.Description,
		Vendor:      r.Vendor,
		Amount:      r.AmountString(),
		GLCode:      r.GLCode,
		Department:  r.Department,
	}
}

// FromCSVRow converts a CSV line back to a record. source becomes the
// record's SourceFile since the CSV does not carry one. When the amount cannot
// be parsed the record is still returned, with a zero amount, together with
// a *parsererror.ParseError.
func FromCSVRow(row ExpenseCSVRow, source string) (models.ExpenseRecord, error) {
	record := models.ExpenseRecord{
		Date:        row.Date,
		Description: row.Description,
		Vendor:      row.Vendor,
		Amount:      decimal.Zero,
		GLCode:      row.GLCode,
		Department:  row.Department,
		SourceFile:  source,
	}
	if row.Amount == "" {
		return record, nil
	}

	amount, err := decimal.NewFromString(row.Amount)
	if err != nil {
		return record, &parsererror.ParseError{
			Parser: "csv",
			Field:  "Amount",
			Value:  row.Amount,
			Err:    err,
		}
	}
	record.Amount = amount
	return record, nil
}

// WriteRecords writes the header and one line per record to w.
func WriteRecords(w io.Writer, records []models.ExpenseRecord, delimiter rune) error {
	rows := make([]ExpenseCSVRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, ToCSVRow(r))
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteRecordsToCSV writes records to csvFile, creating parent directories
// as needed.
func WriteRecordsToCSV(records []models.ExpenseRecord, csvFile string, delimiter rune, logger logging.Logger) error {
	if records == nil {
		return fmt.Errorf("cannot write nil records to CSV")
	}

	logger.Info("Writing expense records to CSV file",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(records)},
		logging.Field{Key: logging.FieldDelimiter, Value: string(delimiter)})

	file, err := fileutils.CreateFile(csvFile)
	if err != nil {
		logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := WriteRecords(file, records, delimiter); err != nil {
		logger.WithError(err).Error("Failed to marshal expense records to CSV")
		return err
	}

	logger.Info("Successfully wrote expense records to CSV file",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(records)})
	return nil
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string, delimiter rune, logger logging.Logger) ([]TCSVRow, error) {
	logger.Debug("Reading CSV file", logging.Field{Key: logging.FieldFile, Value: filePath})

	file, err := os.Open(filePath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		logger.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	reader.Comma = delimiter

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		logger.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	logger.Debug("Successfully read CSV data", logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return rows, nil
}

// ReadRecordsFromCSV loads a consolidated CSV back into records.
// Unparsable amounts become zero and are logged.
func ReadRecordsFromCSV(csvFile string, delimiter rune, logger logging.Logger) ([]models.ExpenseRecord, error) {
	rows, err := ReadCSVFile[ExpenseCSVRow](csvFile, delimiter, logger)
	if err != nil {
		return nil, err
	}

	records := make([]models.ExpenseRecord, 0, len(rows))
	for i, row := range rows {
		record, err := FromCSVRow(row, csvFile)
		if err != nil {
			logger.WithError(err).Warn("Amount defaulted to zero",
				logging.Field{Key: logging.FieldFile, Value: csvFile},
				logging.Field{Key: logging.FieldLine, Value: i + 2})
		}
		records = append(records, record)
	}
	return records, nil
}

// ParseDelimiter returns the first rune of s, or DefaultDelimiter when s is empty.
func ParseDelimiter(s string) rune {
	for _, r := range s {
		return r
	}
	return DefaultDelimiter
}
