// Package report computes and renders summary statistics over expense records.
package report

import (
	"sort"
	"strings"

	"fjacquet/md-expense-csv/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultTopVendors is the number of vendors listed by frequency.
const DefaultTopVendors = 15

// VendorCount is the number of records attributed to a vendor.
type VendorCount struct {
	Vendor string `json:"vendor"`
	Count  int    `json:"count"`
}

// GLTotal is the summed amount of a general-ledger code.
type GLTotal struct {
	GLCode string          `json:"gl_code"`
	Total  decimal.Decimal `json:"total"`
}

// DocumentCount is the number of records one report contributed.
type DocumentCount struct {
	Source   string `json:"source"`
	Count    int    `json:"count"`
	ReportID string `json:"report_id,omitempty"`
	Employee string `json:"employee,omitempty"`
}

// Summary holds the statistics printed after consolidation.
type Summary struct {
	Records           int             `json:"records"`
	UniqueVendors     int             `json:"unique_vendors"`
	UniqueGLCodes     int             `json:"unique_gl_codes"`
	UniqueDepartments int             `json:"unique_departments"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	TopN              int             `json:"top_n"`
	TopVendors        []VendorCount   `json:"top_vendors"`
	GLTotals          []GLTotal       `json:"gl_totals"`
	Documents         []DocumentCount `json:"documents,omitempty"`
	OutputFile        string          `json:"output_file,omitempty"`
}

// Summarize computes the summary of records. topN below one means
// DefaultTopVendors.
func Summarize(records []models.ExpenseRecord, topN int) Summary {
	if topN < 1 {
		topN = DefaultTopVendors
	}

	vendorCounts := make(map[string]int)
	glTotals := make(map[string]decimal.Decimal)
	departments := make(map[string]struct{})
	total := decimal.Zero

	for _, r := range records {
		vendorCounts[r.Vendor]++
		glTotals[r.GLCode] = glTotals[r.GLCode].Add(r.Amount)
		departments[r.Department] = struct{}{}
		total = total.Add(r.Amount)
	}

	vendors := make([]VendorCount, 0, len(vendorCounts))
	for v, c := range vendorCounts {
		vendors = append(vendors, VendorCount{Vendor: v, Count: c})
	}
	sort.Slice(vendors, func(i, j int) bool {
		if vendors[i].Count != vendors[j].Count {
			return vendors[i].Count > vendors[j].Count
		}
		return vendors[i].Vendor < vendors[j].Vendor
	})
	if len(vendors) > topN {
		vendors = vendors[:topN]
	}

	gls := make([]GLTotal, 0, len(glTotals))
	for code, t := range glTotals {
		gls = append(gls, GLTotal{GLCode: code, Total: t})
	}
	sort.Slice(gls, func(i, j int) bool {
		if c := gls[i].Total.Cmp(gls[j].Total); c != 0 {
			return c > 0
		}
		return gls[i].GLCode < gls[j].GLCode
	})

	return Summary{
		Records:           len(records),
		UniqueVendors:     len(vendorCounts),
		UniqueGLCodes:     len(glTotals),
		UniqueDepartments: len(departments),
		TotalAmount:       total,
		TopN:              topN,
		TopVendors:        vendors,
		GLTotals:          gls,
	}
}

// WithDocuments returns a copy of s listing the per-report record counts.
func (s Summary) WithDocuments(results []models.DocumentResult) Summary {
	docs := make([]DocumentCount, 0, len(results))
	for _, r := range results {
		docs = append(docs, DocumentCount{
			Source:   r.Source,
			Count:    r.Count(),
			ReportID: r.Metadata.ReportID,
			Employee: r.Metadata.Employee,
		})
	}
	s.Documents = docs
	return s
}

// FormatMoney renders d as dollars with thousands separators, e.g. "$1,234.50".
// Negative amounts keep the sign after the currency symbol: "$-12.00".
func FormatMoney(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString("$")
	if d.IsNegative() {
		b.WriteString("-")
	}
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteString(".")
	b.WriteString(frac)
	return b.String()
}
