package fileutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/md-expense-csv/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "test.md")
	err := os.WriteFile(testFile, []byte("test"), 0600)
	assert.NoError(t, err)

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "nonexistent.md")))

	// Directories are not files
	assert.False(t, fileutils.FileExists(tmpDir))
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "nonexistent")))

	testFile := filepath.Join(tmpDir, "test.md")
	err := os.WriteFile(testFile, []byte("test"), 0600)
	assert.NoError(t, err)
	assert.False(t, fileutils.DirectoryExists(testFile))
}

func TestEnsureDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	newDir := filepath.Join(tmpDir, "new", "nested", "dir")
	err := fileutils.EnsureDirectoryExists(newDir)
	assert.NoError(t, err)
	assert.True(t, fileutils.DirectoryExists(newDir))

	err = fileutils.EnsureDirectoryExists(tmpDir)
	assert.NoError(t, err)
}

func TestReadFile(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "report.md")
	require.NoError(t, os.WriteFile(testFile, []byte("| Date |"), 0600))

	data, err := fileutils.ReadFile(testFile)
	assert.NoError(t, err)
	assert.Equal(t, "| Date |", string(data))

	_, err = fileutils.ReadFile(filepath.Join(tmpDir, "missing.md"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "file does not exist")
}

func TestWriteFile(t *testing.T) {
	tmpDir := t.TempDir()

	target := filepath.Join(tmpDir, "out", "summary.md")
	err := fileutils.WriteFile(target, []byte("# Summary"), 0600)
	assert.NoError(t, err)

	data, err := os.ReadFile(target)
	assert.NoError(t, err)
	assert.Equal(t, "# Summary", string(data))
}

func TestCreateFile(t *testing.T) {
	tmpDir := t.TempDir()

	target := filepath.Join(tmpDir, "nested", "out.csv")
	f, err := fileutils.CreateFile(target)
	require.NoError(t, err)
	_, err = f.WriteString("Date\n")
	assert.NoError(t, err)
	assert.NoError(t, f.Close())

	assert.True(t, fileutils.FileExists(target))
}

func TestListMatchingFiles(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{
		"expense-report-2024-03.md",
		"expense-report-2024-01.md",
		"notes.md",
		"expense-report-2024-02.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "expense-report-dir.md"), 0750))

	files, err := fileutils.ListMatchingFiles(tmpDir, "expense-report-*.md")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(tmpDir, "expense-report-2024-01.md"),
		filepath.Join(tmpDir, "expense-report-2024-03.md"),
	}, files)
}

func TestListMatchingFiles_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := fileutils.ListMatchingFiles(filepath.Join(tmpDir, "missing"), "*.md")
	assert.Error(t, err)

	_, err = fileutils.ListMatchingFiles(tmpDir, "[")
	assert.Error(t, err)
}

func TestListMatchingFiles_NoMatches(t *testing.T) {
	files, err := fileutils.ListMatchingFiles(t.TempDir(), "*.md")
	assert.NoError(t, err)
	assert.Empty(t, files)
}
