// Package classify prints the vendor the classifier assigns to descriptions
package classify

import (
	"fmt"

	"fjacquet/md-expense-csv/cmd/root"

	"github.com/spf13/cobra"
)

var exportRules string

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify [description...]",
	Short: "Show the vendor assigned to transaction descriptions",
	Long: `Classify runs each description through the vendor rules and prints
"description -> vendor". With --export-rules the active rule table is written
as YAML, ready to be edited and used as vendors.rules_file.

Example:
  md-expense-csv classify "DELTA AIR LINES 1234" "PAYPAL *SOMECO monthly fee"`,
	RunE: classifyFunc,
}

func init() {
	Cmd.Flags().StringVar(&exportRules, "export-rules", "", "Write the active vendor rules to this YAML file")
}

func classifyFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("container not initialized")
	}

	if exportRules != "" {
		s := c.GetRuleStore()
		if s == nil {
			return fmt.Errorf("no rule store available")
		}
		if err := s.SaveRules(exportRules, c.GetRuleTable()); err != nil {
			return err
		}
	}

	if len(args) == 0 && exportRules == "" {
		return fmt.Errorf("at least one description is required")
	}

	classifier := c.GetClassifier()
	for _, desc := range args {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", desc, classifier.Classify(desc)); err != nil {
			return err
		}
	}
	return nil
}
