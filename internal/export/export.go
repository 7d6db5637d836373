// Package export writes a results.Model to CSV or XLSX. Both formats get a
// leading "#" column with the 1-based row number followed by the model
// headings.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"

	"resultview/internal/results"
)

var ErrUnsupportedFormat = errors.New("export: unsupported format")

const sheetName = "Results"

// utf8BOM lets spreadsheet apps detect UTF-8 in the CSV.
const utf8BOM = "\xEF\xBB\xBF"

// ToFile picks the format from the extension of path (.csv or .xlsx).
func ToFile(path string, m results.Model) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, "create csv")
		}
		if err := CSV(f, m); err != nil {
			f.Close()
			return err
		}
		return errors.Wrap(f.Close(), "close csv")
	case ".xlsx":
		return XLSX(path, m)
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%q", filepath.Ext(path))
	}
}

func CSV(w io.Writer, m results.Model) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return errors.Wrap(err, "write bom")
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header(m)); err != nil {
		return errors.Wrap(err, "write header")
	}
	cols := len(m.Headings())
	for row := 0; row < m.Len(); row++ {
		rec := make([]string, 0, cols+1)
		rec = append(rec, fmt.Sprint(row+1))
		for col := 0; col < cols; col++ {
			rec = append(rec, cell(m.Data(row, col)))
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrapf(err, "write row %d", row)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

func XLSX(path string, m results.Model) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return errors.Wrap(err, "rename sheet")
	}
	for i, h := range header(m) {
		ref, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, ref, h); err != nil {
			return errors.Wrapf(err, "write header %s", ref)
		}
	}
	cols := len(m.Headings())
	for row := 0; row < m.Len(); row++ {
		line := row + 2
		ref, _ := excelize.CoordinatesToCellName(1, line)
		if err := f.SetCellValue(sheetName, ref, row+1); err != nil {
			return errors.Wrapf(err, "write %s", ref)
		}
		for col := 0; col < cols; col++ {
			v := m.Data(row, col)
			if v == nil {
				continue
			}
			ref, _ := excelize.CoordinatesToCellName(col+2, line)
			if err := f.SetCellValue(sheetName, ref, v); err != nil {
				return errors.Wrapf(err, "write %s", ref)
			}
		}
	}
	return errors.Wrapf(f.SaveAs(path), "save %s", path)
}

func header(m results.Model) []string {
	return append([]string{"#"}, m.Headings()...)
}

func cell(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
