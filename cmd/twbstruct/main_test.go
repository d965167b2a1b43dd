package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/output"
)

const samplePath = "../../pkg/twbstruct/testdata/sample.twb"

// run executes the CLI with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExtractToStdout(t *testing.T) {
	stdout, _, err := run(t, samplePath)
	require.NoError(t, err)

	var wb models.Workbook
	require.NoError(t, json.Unmarshal([]byte(stdout), &wb))
	assert.Equal(t, "sample.twb", wb.BookName)
	assert.Len(t, wb.DataSources, 2)
	assert.Len(t, wb.Worksheets, 1)
	assert.Nil(t, wb.Structure)
}

func TestExtractYAMLVerbose(t *testing.T) {
	stdout, _, err := run(t, samplePath, "--format", "yaml", "--mode", "verbose")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, "sample.twb", decoded["book_name"])
	structure, ok := decoded["structure"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "workbook", structure["root_tag"])
}

func TestExtractToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")
	stdout, _, err := run(t, samplePath, "-o", out, "--mode", "light", "--pretty")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"book_name\""))

	var wb models.Workbook
	require.NoError(t, json.Unmarshal(data, &wb))
	assert.Empty(t, wb.Worksheets)
}

func TestExtractDataSourceFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ds")
	stdout, _, err := run(t, samplePath, "--datasources-dir", dir)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"Orders.json", "Survey Results.json"}, names)

	data, err := os.ReadFile(filepath.Join(dir, "Orders.json"))
	require.NoError(t, err)
	var ds models.DataSource
	require.NoError(t, json.Unmarshal(data, &ds))
	assert.Equal(t, "federated.0abc123", *ds.ID)
}

func TestExtractFieldCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.xlsx")
	_, _, err := run(t, samplePath, "--xlsx", path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), output.FieldsSheet)
}

func TestDataSourceFileName(t *testing.T) {
	caption, id := " a/b:c ", "federated.1"
	assert.Equal(t, "a_b_c", dataSourceFileName(&models.DataSource{Caption: &caption, ID: &id}, 0))
	assert.Equal(t, "federated.1", dataSourceFileName(&models.DataSource{ID: &id}, 0))
	assert.Equal(t, "datasource3", dataSourceFileName(&models.DataSource{}, 2))
}

func TestInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"mode", []string{samplePath, "--mode", "full"}, "invalid mode"},
		{"format", []string{samplePath, "--format", "xml"}, "invalid format"},
		{"missing input", []string{"missing.twb"}, "extraction failed"},
		{"threshold", []string{"split", samplePath, "--threshold", "0"}, "threshold must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSplitCommand(t *testing.T) {
	var b strings.Builder
	b.WriteString("<?xml version='1.0' encoding='utf-8' ?>\n<workbook version='18.1'>\n  <worksheets>\n")
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&b, "    <worksheet name='Sheet %03d'><table>%s</table></worksheet>\n", i, strings.Repeat("x", 500))
	}
	b.WriteString("  </worksheets>\n</workbook>\n")
	input := filepath.Join(t.TempDir(), "large.twb")
	require.NoError(t, os.WriteFile(input, []byte(b.String()), 0o644))

	const threshold = 10000
	outDir := filepath.Join(t.TempDir(), "chunks")
	stdout, _, err := run(t, "split", input, "--threshold", fmt.Sprint(threshold), "--out-dir", outDir)
	require.NoError(t, err)

	var chunks []models.Chunk
	require.NoError(t, json.Unmarshal([]byte(stdout), &chunks))
	require.NotEmpty(t, chunks)

	records := 0
	for _, c := range chunks {
		assert.Equal(t, "worksheets", c.Element)
		assert.LessOrEqual(t, c.SizeBytes, int64(threshold))
		assert.Equal(t, outDir, filepath.Dir(c.Path))
		info, err := os.Stat(c.Path)
		require.NoError(t, err)
		assert.Equal(t, info.Size(), c.SizeBytes)
		records += c.Records
	}
	assert.Equal(t, 100, records)
}

func TestSplitCommandNothingToSplit(t *testing.T) {
	stdout, _, err := run(t, "split", samplePath, "--out-dir", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "[]\n", stdout)
}

func TestSurveyCommand(t *testing.T) {
	stdout, _, err := run(t, "survey", samplePath, "--threshold", "1000")
	require.NoError(t, err)

	var s models.Structure
	require.NoError(t, json.Unmarshal([]byte(stdout), &s))
	assert.Equal(t, "workbook", s.RootTag)
	require.NotEmpty(t, s.Sections)

	oversized := map[string]bool{}
	for _, sec := range s.Sections {
		oversized[sec.Name] = sec.Oversized
	}
	assert.True(t, oversized["datasources"])
}

func TestSurveyCommandTable(t *testing.T) {
	stdout, _, err := run(t, "survey", samplePath, "--table")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "workbook ("))
	assert.Contains(t, stdout, "SECTION")
	assert.Contains(t, stdout, "datasources")
	assert.Contains(t, stdout, "dashboards")
}

func TestSplitCommandTableEmpty(t *testing.T) {
	stdout, _, err := run(t, "split", samplePath, "--out-dir", t.TempDir(), "--table")
	require.NoError(t, err)
	assert.Equal(t, "(0 fragments)\n", stdout)
}
