// Package models provides the data structures used throughout the application.
package models

import (
	"github.com/shopspring/decimal"
)

// ExpenseRecord is one row of an expense report table, normalized for import.
// Records are built once by the parser and never modified afterwards.
type ExpenseRecord struct {
	Date        string          // raw date text as found in the report
	Description string          // free-text memo
	Vendor      string          // canonical vendor label or fallback guess
	Amount      decimal.Decimal // zero when the amount cell could not be parsed
	GLCode      string          // general-ledger account, trailing periods stripped
	Department  string
	SourceFile  string // provenance tag, usually the report file name
}

// AmountString renders the amount as a plain decimal number, the form used in
// the consolidated CSV. It shows at least two fractional digits and never
// fewer than the amount carries, so no precision is lost.
func (r ExpenseRecord) AmountString() string {
	places := int32(2)
	if p := -r.Amount.Exponent(); p > places {
		places = p
	}
	return r.Amount.StringFixed(places)
}

// Document is the raw text of one expense report together with the label
// used as SourceFile on every record it produces.
type Document struct {
	Source  string
	Content string
}

// ReportMetadata holds the optional front matter of an expense report.
type ReportMetadata struct {
	ReportID string `yaml:"report_id"`
	Employee string `yaml:"employee"`
	Period   string `yaml:"period"`
	Title    string `yaml:"title"`
}

// IsZero reports whether no metadata was found.
func (m ReportMetadata) IsZero() bool {
	return m == ReportMetadata{}
}
