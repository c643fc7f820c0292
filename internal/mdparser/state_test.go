package mdparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTableHeader(t *testing.T) {
	tests := []struct {
		line     string
		expected bool
	}{
		{"| Date | GL Acct/Job | Dept/Phase | Description | Amount |", true},
		{"| Date | GL Acct | Amount |", true},
		{"| Date | Account | Amount |", false},
		{"|Date| GL Acct |", false},
		{"GL Acct | Date", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.expected, isTableHeader(tt.line))
		})
	}
}

func TestIsSeparatorRow(t *testing.T) {
	tests := []struct {
		line     string
		expected bool
	}{
		{"|---|---|", true},
		{"|------|-------------|", true},
		{"| :--- | :---: | ---: |", true},
		{"|---", true},
		{"| | |", false},
		{"|---|abc|", false},
		{"---|---", false},
		{"| 1/1 | 6420 | 100 | Lunch | -5.00 |", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.expected, isSeparatorRow(tt.line))
		})
	}
}

func TestClosesTable(t *testing.T) {
	tests := []struct {
		line     string
		expected bool
	}{
		{"| **Total** | | | | $10 |", true},
		{"**Total:** $10", true},
		{"Notes follow", true},
		{"# Heading", true},
		{"| 1/1 | 6420 | 100 | Lunch | $5 |", false},
		{"| Total | | | | $10 |", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.expected, closesTable(tt.line))
		})
	}
}

func TestIsDataRow(t *testing.T) {
	assert.True(t, isDataRow("| a | b |"))
	assert.False(t, isDataRow("a | b"))
}

func TestSplitRow(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{"bounded", "| a | b | c |", []string{"a", "b", "c"}},
		{"open end", "| a | b | c", []string{"a", "b", "c"}},
		{"empty middle", "| a || c |", []string{"a", "", "c"}},
		{"trailing empty cell", "| a | b | |", []string{"a", "b", ""}},
		{"only delimiter", "|", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitRow(tt.line))
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "outside-table", StateOutsideTable.String())
	assert.Equal(t, "inside-table", StateInsideTable.String())
	assert.Equal(t, "unknown", State(9).String())
}
