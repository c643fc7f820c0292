// Package summary prints statistics over expense reports or a consolidated CSV
package summary

import (
	"fmt"
	"strings"

	"fjacquet/md-expense-csv/cmd/common"
	"fjacquet/md-expense-csv/cmd/root"
	internalcommon "fjacquet/md-expense-csv/internal/common"
	"fjacquet/md-expense-csv/internal/fileutils"
	"fjacquet/md-expense-csv/internal/report"
	"fjacquet/md-expense-csv/internal/validation"

	"github.com/spf13/cobra"
)

var (
	csvFile string
	format  string
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize expenses by vendor and GL code",
	Long: `Summary prints unique vendor, GL code and department counts, the total
amount, the most frequent vendors and the total per GL code.

The records come from the reports in the input directory, or from an existing
consolidated CSV with --csv.

Example:
  md-expense-csv summary -i expense-reports-md/ --format markdown -o summary.md
  md-expense-csv summary --csv historical.csv --format json`,
	RunE: summaryFunc,
}

func init() {
	Cmd.Flags().StringVar(&csvFile, "csv", "", "Summarize an existing consolidated CSV instead of the reports")
	Cmd.Flags().StringVarP(&format, "format", "f", report.FormatText, "Output format: "+strings.Join(report.Formats, ", "))
}

func summaryFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	cfg := c.GetConfig()

	if err := validation.ValidateOutputFormat(format); err != nil {
		return err
	}

	var s report.Summary
	if csvFile != "" {
		records, err := internalcommon.ReadRecordsFromCSV(csvFile, cfg.Delimiter(), c.GetLogger())
		if err != nil {
			return err
		}
		s = report.Summarize(records, cfg.Report.TopVendors)
	} else {
		result, err := common.LoadReports(cmd.Context(), c, common.Options{
			InputDir: cfg.Input.Directory,
			Pattern:  cfg.Input.Pattern,
			Validate: root.SharedFlags.Validate,
		})
		if err != nil {
			return err
		}
		s = common.Summarize(c, result, "")
	}

	out, err := c.GetReportGenerator().Generate(s, format)
	if err != nil {
		return err
	}

	if root.SharedFlags.Output != "" {
		return fileutils.WriteFile(root.SharedFlags.Output, out, 0600)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
