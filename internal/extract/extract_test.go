package extract

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFindSnippets_UnicodeContext(t *testing.T) {
	snips := FindSnippets("你好世界你好", "世界", 1, 1)
	require.Len(t, snips, 1)
	assert.Equal(t, "好【世界】你", snips[0])
}

func TestFindSnippets_NonOverlapping(t *testing.T) {
	snips := FindSnippets("aaaaa", "aa", 0, 5)
	assert.Equal(t, []string{"【aa】", "【aa】"}, snips)
}

func TestFindSnippets_Edges(t *testing.T) {
	assert.Nil(t, FindSnippets("abc", "", 3, 1))
	assert.Nil(t, FindSnippets("ab", "abc", 3, 1))
	assert.Nil(t, FindSnippets("abc", "x", 3, 1))
	assert.Equal(t, []string{"【abc】"}, FindSnippets("abc", "abc", -4, 0))
	assert.Equal(t, []string{"x【b】y"}, FindSnippets("wxbyz", "b", 1, 3))
}

func TestDecodeText_ByteOrderMarks(t *testing.T) {
	assert.Equal(t, "hi", decodeText([]byte{0xEF, 0xBB, 0xBF, 'h', 'i'}))
	assert.Equal(t, "hi", decodeText([]byte{0xFF, 0xFE, 'h', 0, 'i', 0}))
	assert.Equal(t, "hi", decodeText([]byte{0xFE, 0xFF, 0, 'h', 0, 'i'}))
	assert.Equal(t, "plain", decodeText([]byte("plain")))
}

func TestFindFirst_TextFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("contract A-001 signed"), 0o644))

	found, snip, err := FindFirst(context.Background(), path, "A-001", 3)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "ct 【A-001】 si", snip)

	found, _, err = FindFirst(context.Background(), path, "missing", 3)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindFirst_Docx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document xmlns:w="x"><w:body><w:p><w:r><w:t>quarterly budget review</w:t></w:r></w:p></w:body></w:document>`))
	require.NoError(t, err)
	w, err = zw.Create("docProps/core.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<core>needle only here</core>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	found, snip, err := FindFirst(context.Background(), path, "budget", 2)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "y 【budget】 r", snip)

	found, _, err = FindFirst(context.Background(), path, "needle", 2)
	require.NoError(t, err)
	assert.False(t, found, "parts outside word/ are ignored")
}

func TestFindFirst_Xlsx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	wb := excelize.NewFile()
	require.NoError(t, wb.SetCellValue("Sheet1", "A1", "invoice"))
	require.NoError(t, wb.SetCellValue("Sheet1", "B1", "INV-2024-17"))
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())

	found, snip, err := FindFirst(context.Background(), path, "INV-2024", 0)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "【INV-2024】", snip)
}

func TestFindFirst_PDFTooLarge(t *testing.T) {
	t.Setenv("RESULTVIEW_PDF_MAX_FILE_BYTES", "8")
	path := filepath.Join(t.TempDir(), "big.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 padding padding"), 0o644))

	_, _, err := FindFirst(context.Background(), path, "x", 0)
	assert.True(t, errors.Is(err, ErrTooLarge), "got %v", err)
}

func TestPDFMaxFileBytes(t *testing.T) {
	t.Setenv("RESULTVIEW_PDF_MAX_FILE_BYTES", "")
	assert.EqualValues(t, defaultPDFMaxFileBytes, pdfMaxFileBytes())
	t.Setenv("RESULTVIEW_PDF_MAX_FILE_BYTES", "-3")
	assert.EqualValues(t, defaultPDFMaxFileBytes, pdfMaxFileBytes())
	t.Setenv("RESULTVIEW_PDF_MAX_FILE_BYTES", "1024")
	assert.EqualValues(t, 1024, pdfMaxFileBytes())
}

func TestFindFirst_Errors(t *testing.T) {
	_, _, err := FindFirst(context.Background(), "a.txt", "   ", 0)
	assert.True(t, errors.Is(err, ErrEmptyQuery))

	_, _, err = FindFirst(context.Background(), "a.exe", "q", 0)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = FindFirst(ctx, "a.txt", "q", 0)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported(".PDF"))
	assert.True(t, Supported(".xlsx"))
	assert.False(t, Supported(".doc"))
	assert.False(t, Supported(""))
}
