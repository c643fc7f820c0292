package classify_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/md-expense-csv/cmd/classify"
	"fjacquet/md-expense-csv/cmd/root"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(classify.Cmd)
}

func TestClassifyCommand_Metadata(t *testing.T) {
	assert.Equal(t, "classify [description...]", classify.Cmd.Use)
	assert.NotNil(t, classify.Cmd.RunE)
	assert.NotNil(t, classify.Cmd.Flags().Lookup("export-rules"))
}

func TestClassifyCommand_Run(t *testing.T) {
	exported := filepath.Join(t.TempDir(), "rules.yaml")

	var stdout bytes.Buffer
	root.Cmd.SetOut(&stdout)
	root.Cmd.SetArgs([]string{
		"classify",
		"--log-level", "error",
		"--export-rules", exported,
		"DELTA AIR LINES 1234",
		"Hampton Inn Hotel",
		"PAYPAL *SOMECO monthly fee",
		"",
	})

	require.NoError(t, root.Cmd.Execute())
	assert.Equal(t,
		"DELTA AIR LINES 1234 -> Delta Airlines\n"+
			"Hampton Inn Hotel -> Hampton Inn\n"+
			"PAYPAL *SOMECO monthly fee -> *SOMECO monthly\n"+
			" -> Unknown\n",
		stdout.String())

	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Contains(t, string(data), "vendor: Delta Airlines")
	assert.Contains(t, string(data), "noise_prefixes:")
}
