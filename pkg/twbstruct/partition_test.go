package twbstruct

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// writeLargeWorkbook writes a workbook whose worksheets section holds n
// worksheets of roughly size bytes each.
func writeLargeWorkbook(t *testing.T, n, size int) (string, []string) {
	t.Helper()
	var b strings.Builder
	b.WriteString("<?xml version='1.0' encoding='utf-8' ?>\n")
	b.WriteString("<workbook version='18.1' xmlns:user='http://www.tableausoftware.com/xml/user'>\n")
	b.WriteString("  <datasources><datasource name='federated.1' caption='Small'><column name='[A]'/></datasource></datasources>\n")
	b.WriteString("  <worksheets>\n")
	var names []string
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("Sheet %04d", i)
		names = append(names, name)
		fmt.Fprintf(&b, "    <worksheet name='%s'><table><view><datasources/></view><style user:ui='x'>%s</style></table></worksheet>\n",
			name, strings.Repeat("w", size))
	}
	b.WriteString("  </worksheets>\n")
	b.WriteString("</workbook>\n")

	path := filepath.Join(t.TempDir(), "large.twb")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path, names
}

func TestPartitionSplitsOversizedSections(t *testing.T) {
	const threshold int64 = 100000
	path, names := writeLargeWorkbook(t, 300, 2000)
	outDir := filepath.Join(t.TempDir(), "chunks")

	chunks, err := Partition(path, PartitionOptions{Threshold: threshold, OutputDir: outDir, Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	var got []string
	for i, c := range chunks {
		assert.Equal(t, "worksheets", c.Element)
		assert.Equal(t, fmt.Sprintf("worksheets_%03d.xml", i+1), filepath.Base(c.Path))
		assert.Equal(t, outDir, filepath.Dir(c.Path))
		assert.LessOrEqual(t, c.SizeBytes, threshold)
		assert.False(t, c.Oversized)

		content, err := os.ReadFile(c.Path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `xmlns:user="http://www.tableausoftware.com/xml/user"`)

		doc := etree.NewDocument()
		require.NoError(t, doc.ReadFromBytes(content))
		for _, ws := range doc.Root().SelectElements("worksheet") {
			got = append(got, ws.SelectAttrValue("name", ""))
		}
	}
	assert.Equal(t, names, got)
}

func TestPartitionNothingToSplit(t *testing.T) {
	chunks, err := Partition(samplePath, PartitionOptions{OutputDir: t.TempDir()})
	require.NoError(t, err)
	assert.NotNil(t, chunks)
	assert.Empty(t, chunks)
}

func TestPartitionErrors(t *testing.T) {
	_, err := Partition(samplePath, PartitionOptions{Threshold: -1, OutputDir: t.TempDir()})
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = Partition(filepath.Join(t.TempDir(), "missing.twb"), PartitionOptions{OutputDir: t.TempDir()})
	assert.ErrorIs(t, err, ErrFileNotFound)

	broken := filepath.Join(t.TempDir(), "broken.twb")
	require.NoError(t, os.WriteFile(broken, []byte("<workbook><worksheets>"), 0o644))
	_, err = Partition(broken, PartitionOptions{OutputDir: t.TempDir()})
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestPartitionError(t *testing.T) {
	err := NewPartitionError("worksheets", "a.twb", os.ErrPermission)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Contains(t, err.Error(), `"worksheets"`)
	assert.Contains(t, err.Error(), "a.twb")
}

func TestSurvey(t *testing.T) {
	path, _ := writeLargeWorkbook(t, 50, 2000)

	s, err := Survey(path, 50000)
	require.NoError(t, err)
	assert.Equal(t, "workbook", s.RootTag)
	assert.Equal(t, 50, s.ElementCounts["worksheet"])

	require.Len(t, s.Sections, 2)
	assert.Equal(t, "datasources", s.Sections[0].Name)
	assert.False(t, s.Sections[0].Oversized)
	assert.Equal(t, "worksheets", s.Sections[1].Name)
	assert.True(t, s.Sections[1].Oversized)
	assert.Greater(t, s.Sections[1].SizeBytes, int64(50*2000))

	_, err = Survey(filepath.Join(t.TempDir(), "missing.twb"), 0)
	assert.ErrorIs(t, err, ErrFileNotFound)
}
