package models

// ParseStats counts what the table extractor saw in one document.
type ParseStats struct {
	TablesFound      int // header rows that opened a table
	DataRows         int // rows read inside a table, well-formed or not
	MalformedRows    int // rows dropped for having fewer than five cells
	DefaultedAmounts int // amounts that could not be parsed and became zero
}

// DocumentResult is the outcome of parsing one Document.
type DocumentResult struct {
	Source   string
	Records  []ExpenseRecord
	Stats    ParseStats
	Metadata ReportMetadata
}

// Count returns the number of records the document contributed.
func (r DocumentResult) Count() int {
	return len(r.Records)
}

// HasTable reports whether an expense table header was found.
func (r DocumentResult) HasTable() bool {
	return r.Stats.TablesFound > 0
}
