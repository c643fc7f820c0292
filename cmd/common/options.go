package common

import (
	"path/filepath"
	"strings"

	inputcheck "fjacquet/md-expense-csv/internal/validation"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Options selects the reports to read and where the CSV goes.
type Options struct {
	InputDir   string
	Pattern    string
	OutputFile string
	Validate   bool
}

// Check ensures the input directory exists and the pattern is a valid glob.
// An empty pattern means the scanner default.
func (o Options) Check() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.InputDir, validation.Required, validation.By(func(value any) error {
			if err := inputcheck.ValidateInputDir(value.(string)); err != nil {
				return validation.NewError("consolidate.input_dir_invalid", err.Error())
			}
			return nil
		})),
		validation.Field(&o.Pattern, validation.By(func(value any) error {
			pattern := value.(string)
			if pattern == "" {
				return nil
			}
			if _, err := filepath.Match(pattern, ""); err != nil {
				return validation.NewError("consolidate.pattern_invalid", "pattern is not a valid glob")
			}
			return nil
		})),
	)
}

// CheckOutput ensures an output file is named.
func (o Options) CheckOutput() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.OutputFile, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("consolidate.output_required", "output file is required")
			}
			return nil
		})),
	)
}
