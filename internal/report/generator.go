package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/md-expense-csv/internal/logging"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Supported output formats.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatJSON     = "json"
)

// Formats lists the formats Generate accepts.
var Formats = []string{FormatText, FormatMarkdown, FormatHTML, FormatJSON}

// Generator renders a Summary in several formats.
type Generator struct {
	logger   logging.Logger
	markdown goldmark.Markdown
}

// NewGenerator creates a new instance of Generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Generator{
		logger:   logger.WithField("component", "ReportGenerator"),
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Generate renders s in the given format (text, markdown, html or json).
func (g *Generator) Generate(s Summary, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return []byte(g.generateText(s)), nil
	case FormatMarkdown, "md":
		return []byte(g.generateMarkdown(s)), nil
	case FormatHTML:
		return g.generateHTML(s)
	case FormatJSON:
		return g.generateJSON(s)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// generateText reproduces the console layout of the consolidation run.
func (g *Generator) generateText(s Summary) string {
	var b strings.Builder

	if len(s.Documents) > 0 {
		fmt.Fprintf(&b, "Found %d markdown files\n", len(s.Documents))
		for _, d := range s.Documents {
			fmt.Fprintf(&b, "  %s: %d expenses\n", d.Source, d.Count)
		}
		fmt.Fprintf(&b, "\nTotal expenses: %d\n", s.Records)
	}
	if s.OutputFile != "" {
		fmt.Fprintf(&b, "\nWritten to: %s\n", s.OutputFile)
	}

	b.WriteString("\n=== Summary ===\n")
	fmt.Fprintf(&b, "Unique vendors: %d\n", s.UniqueVendors)
	fmt.Fprintf(&b, "Unique GL codes: %d\n", s.UniqueGLCodes)
	fmt.Fprintf(&b, "Unique departments: %d\n", s.UniqueDepartments)
	fmt.Fprintf(&b, "Total amount: %s\n", FormatMoney(s.TotalAmount))

	fmt.Fprintf(&b, "\n=== Top %d Vendors by Frequency ===\n", s.TopN)
	for _, v := range s.TopVendors {
		fmt.Fprintf(&b, "  %s: %d\n", v.Vendor, v.Count)
	}

	b.WriteString("\n=== GL Code Totals ===\n")
	for _, gl := range s.GLTotals {
		fmt.Fprintf(&b, "  %s: %s\n", gl.GLCode, FormatMoney(gl.Total))
	}

	return b.String()
}

func (g *Generator) generateMarkdown(s Summary) string {
	var b strings.Builder

	b.WriteString("# Expense Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Records | %d |\n", s.Records)
	fmt.Fprintf(&b, "| Unique vendors | %d |\n", s.UniqueVendors)
	fmt.Fprintf(&b, "| Unique GL codes | %d |\n", s.UniqueGLCodes)
	fmt.Fprintf(&b, "| Unique departments | %d |\n", s.UniqueDepartments)
	fmt.Fprintf(&b, "| Total amount | %s |\n", FormatMoney(s.TotalAmount))

	if len(s.Documents) > 0 {
		b.WriteString("\n## Reports\n\n| Report | Expenses |\n|---|---:|\n")
		for _, d := range s.Documents {
			fmt.Fprintf(&b, "| %s | %d |\n", escapeCell(d.Source), d.Count)
		}
	}

	fmt.Fprintf(&b, "\n## Top %d Vendors by Frequency\n\n| Vendor | Count |\n|---|---:|\n", s.TopN)
	for _, v := range s.TopVendors {
		fmt.Fprintf(&b, "| %s | %d |\n", escapeCell(v.Vendor), v.Count)
	}

	b.WriteString("\n## GL Code Totals\n\n| GL Code | Total |\n|---|---:|\n")
	for _, gl := range s.GLTotals {
		fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(gl.GLCode), FormatMoney(gl.Total))
	}

	return b.String()
}

func (g *Generator) generateHTML(s Summary) ([]byte, error) {
	var body bytes.Buffer
	if err := g.markdown.Convert([]byte(g.generateMarkdown(s)), &body); err != nil {
		g.logger.WithError(err).Error("Failed to render HTML report")
		return nil, fmt.Errorf("markdown render: %w", err)
	}

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Expense Summary</title>\n</head>\n<body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}

func (g *Generator) generateJSON(s Summary) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(data, '\n'), nil
}

// escapeCell keeps a value from breaking a markdown table row.
func escapeCell(v string) string {
	if v == "" {
		return " "
	}
	return strings.ReplaceAll(v, "|", `\|`)
}
