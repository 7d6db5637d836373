package extract

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
)

// xlsxText flattens every sheet into text: cells joined by tabs, rows by
// newlines. Hits never span two cells because of the separators.
func xlsxText(ctx context.Context, path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "open workbook %s", path)
	}
	defer f.Close()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", errors.Wrapf(err, "read sheet %q", sheet)
		}
		for _, row := range rows {
			sb.WriteString(strings.Join(row, "\t"))
			sb.WriteByte('\n')
			if sb.Len() > maxTextBytes {
				return "", errors.Wrapf(ErrTooLarge, "%s", path)
			}
		}
	}
	return sb.String(), nil
}
