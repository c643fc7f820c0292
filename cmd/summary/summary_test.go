package summary_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/md-expense-csv/cmd/root"
	"fjacquet/md-expense-csv/cmd/summary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(summary.Cmd)
}

func TestSummaryCommand_Metadata(t *testing.T) {
	assert.Equal(t, "summary", summary.Cmd.Use)
	assert.NotNil(t, summary.Cmd.RunE)
	assert.NotNil(t, summary.Cmd.Flags().Lookup("csv"))
	assert.Equal(t, "f", summary.Cmd.Flags().Lookup("format").Shorthand)
}

func TestSummaryCommand_FromCSV(t *testing.T) {
	dir := t.TempDir()
	csvFile := filepath.Join(dir, "all.csv")
	content := "Date,Description,Vendor,Amount,GL Code,Department\n" +
		"1/1,Uber,Uber,10.00,6420,100\n" +
		"1/2,Uber,Uber,5.50,6420,100\n" +
		"1/3,Hilton,Hilton,200.00,6430,200\n"
	require.NoError(t, os.WriteFile(csvFile, []byte(content), 0600))
	outFile := filepath.Join(dir, "summary.json")

	root.Cmd.SetOut(&bytes.Buffer{})
	root.Cmd.SetArgs([]string{"summary", "--csv", csvFile, "--format", "json", "-o", outFile, "--log-level", "error"})
	require.NoError(t, root.Cmd.Execute())

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var decoded struct {
		Records       int    `json:"records"`
		UniqueVendors int    `json:"unique_vendors"`
		TotalAmount   string `json:"total_amount"`
		TopVendors    []struct {
			Vendor string `json:"vendor"`
			Count  int    `json:"count"`
		} `json:"top_vendors"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 3, decoded.Records)
	assert.Equal(t, 2, decoded.UniqueVendors)
	assert.Equal(t, "215.5", decoded.TotalAmount)
	require.Len(t, decoded.TopVendors, 2)
	assert.Equal(t, "Uber", decoded.TopVendors[0].Vendor)
	assert.Equal(t, 2, decoded.TopVendors[0].Count)
}
