package mdparser

import (
	"fmt"
	"strings"

	"fjacquet/md-expense-csv/internal/models"

	"github.com/adrg/frontmatter"
)

// ExtractMetadata reads the optional YAML front matter of a report.
// A report without front matter yields zero metadata and no error.
func ExtractMetadata(content string) (models.ReportMetadata, error) {
	var meta models.ReportMetadata
	if _, err := frontmatter.Parse(strings.NewReader(content), &meta); err != nil {
		return models.ReportMetadata{}, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, nil
}
