// Package consolidate handles the conversion of a directory of expense reports into one CSV
package consolidate

import (
	"fmt"

	"fjacquet/md-expense-csv/cmd/common"
	"fjacquet/md-expense-csv/cmd/root"
	"fjacquet/md-expense-csv/internal/report"

	"github.com/spf13/cobra"
)

var (
	pattern     string
	showSummary bool
)

// Cmd represents the consolidate command
var Cmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Consolidate markdown expense reports into a single CSV",
	Long: `Consolidate reads every expense report in the input directory whose name
matches the pattern, in file name order, and writes all expense rows to one CSV.

Example:
  md-expense-csv consolidate -i expense-reports-md/ -o historical.csv --summary`,
	RunE: consolidateFunc,
}

func init() {
	Cmd.Flags().StringVar(&pattern, "pattern", "", "File name pattern of the reports (default from config: expense-report-*.md)")
	Cmd.Flags().BoolVar(&showSummary, "summary", false, "Print the summary after writing the CSV")
}

func consolidateFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	cfg := c.GetConfig()

	opts := common.Options{
		InputDir:   cfg.Input.Directory,
		Pattern:    cfg.Input.Pattern,
		OutputFile: cfg.OutputPath(),
		Validate:   root.SharedFlags.Validate,
	}
	if pattern != "" {
		opts.Pattern = pattern
	}
	if root.SharedFlags.Output != "" {
		opts.OutputFile = root.SharedFlags.Output
	}

	result, err := common.Consolidate(cmd.Context(), c, opts)
	if err != nil {
		return err
	}

	if !showSummary {
		return nil
	}

	out, err := c.GetReportGenerator().Generate(common.Summarize(c, result, opts.OutputFile), report.FormatText)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
