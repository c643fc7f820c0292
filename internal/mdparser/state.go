package mdparser

import "strings"

// State is the position of the line scanner relative to the expense table.
type State int

const (
	// StateOutsideTable is the initial state: lines are ignored until a header row.
	StateOutsideTable State = iota
	// StateInsideTable means data rows are being read.
	StateInsideTable
)

func (s State) String() string {
	switch s {
	case StateOutsideTable:
		return "outside-table"
	case StateInsideTable:
		return "inside-table"
	default:
		return "unknown"
	}
}

const (
	dateHeaderMarker = "| Date |"
	glHeaderMarker   = "GL Acct"
	totalsMarker     = "**Total"
	rowDelimiter     = "|"
	minRowFields     = 5
)

// isTableHeader reports whether line is the header row of an expense table.
func isTableHeader(line string) bool {
	return strings.Contains(line, dateHeaderMarker) && strings.Contains(line, glHeaderMarker)
}

// isSeparatorRow reports whether line is a markdown header/body divider such as
// "|------|:---:|". Only pipes, dashes, colons and spaces are allowed, and at
// least one dash must be present.
func isSeparatorRow(line string) bool {
	if !strings.HasPrefix(line, rowDelimiter) || !strings.Contains(line, "-") {
		return false
	}
	for _, r := range line {
		switch r {
		case '|', '-', ':', ' ', '\t':
		default:
			return false
		}
	}
	return true
}

// closesTable reports whether a non-empty line ends the current table.
func closesTable(line string) bool {
	return strings.Contains(line, totalsMarker) || !strings.HasPrefix(line, rowDelimiter)
}

// isDataRow reports whether a non-empty line inside a table should be parsed as a row.
func isDataRow(line string) bool {
	return strings.HasPrefix(line, rowDelimiter)
}

// splitRow splits a table row into trimmed cells. Only the empty cells
// produced by the delimiters at the line boundaries are dropped; empty cells
// in the middle of the row keep their position.
func splitRow(line string) []string {
	parts := strings.Split(line, rowDelimiter)
	if strings.HasPrefix(line, rowDelimiter) {
		parts = parts[1:]
	}
	if strings.HasSuffix(line, rowDelimiter) && len(parts) > 0 {
		parts = parts[:len(parts)-1]
	}

	fields := make([]string, len(parts))
	for i, p := range parts {
		fields[i] = strings.TrimSpace(p)
	}
	return fields
}
