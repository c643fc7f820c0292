// Package parser defines the interfaces shared by expense report parsers.
package parser

import "fjacquet/md-expense-csv/internal/models"

// Parser extracts expense records from the text of one report.
// Implementations never fail on malformed input; they skip what they cannot
// interpret and return whatever records they found.
type Parser interface {
	Parse(text, source string) []models.ExpenseRecord
}

// DocumentParser parses a whole Document and reports what it saw.
type DocumentParser interface {
	Parser
	ParseDocument(doc models.Document) models.DocumentResult
}
