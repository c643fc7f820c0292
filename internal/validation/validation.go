// Package validation checks user-supplied paths and options before a run starts.
package validation

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/md-expense-csv/internal/report"
)

// ValidateInputDir checks that dir exists and is a directory.
func ValidateInputDir(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("input directory does not exist: %s", dir)
	}
	if err != nil {
		return fmt.Errorf("error checking input directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input path %s is not a directory", dir)
	}
	return nil
}

// ValidateOutputFormat checks that format names a summary renderer.
// Matching is case-insensitive and "md" is accepted for markdown.
func ValidateOutputFormat(format string) error {
	f := strings.ToLower(format)
	if f == "" || f == "md" {
		return nil
	}
	for _, known := range report.Formats {
		if f == known {
			return nil
		}
	}
	return fmt.Errorf("unsupported output format: %s. Supported formats are %s", format, strings.Join(report.Formats, ", "))
}

// ValidateFilePermissions rejects modes that let others write the file.
func ValidateFilePermissions(mode os.FileMode) error {
	if mode.Perm()&0002 != 0 {
		return fmt.Errorf("file is writable by others: %s. Recommended 0600 or 0644", mode.Perm().String())
	}
	return nil
}
