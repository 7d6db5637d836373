package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"resultview/internal/results"
)

func sampleSet() *results.Set {
	s := results.NewSet("Path", "Context")
	s.Append(
		results.Row{`C:\docs\a.txt`, "x【q】y"},
		results.Row{"b, c.md", nil},
	)
	return s
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, sampleSet()))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, utf8BOM))
	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, utf8BOM), "\n"), "\n")
	assert.Equal(t, []string{
		"#,Path,Context",
		`1,C:\docs\a.txt,x【q】y`,
		`2,"b, c.md",`,
	}, lines)
}

func TestXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, ToFile(path, sampleSet()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"#", "Path", "Context"}, rows[0])
	assert.Equal(t, []string{"1", `C:\docs\a.txt`, "x【q】y"}, rows[1])
	assert.Equal(t, []string{"2", "b, c.md"}, rows[2])
}

func TestToFile_CSVAndUnknown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.CSV")
	require.NoError(t, ToFile(path, sampleSet()))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "#,Path,Context")

	err = ToFile(filepath.Join(dir, "out.txt"), sampleSet())
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
