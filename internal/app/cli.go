package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"resultview/internal/export"
	"resultview/internal/search"
	"resultview/internal/tableview"
	"resultview/internal/winutil"
)

var ErrNoSuchResult = errors.New("no such result")

type SearchOptions struct {
	Roots      []string
	Query      string
	Workers    int
	ContextLen int
	Limit      int
	// Export, when set, also writes the results to this .csv or .xlsx file.
	Export string
	// Open reveals the Nth result (1-based) in Explorer; 0 disables it.
	Open int
}

// RunSearch searches opts.Roots and prints one tab-separated line per hit,
// read back through a tableview.Adapter exactly as a table widget would.
func RunSearch(ctx context.Context, opts SearchOptions, out io.Writer) error {
	roots := ParseRoots(opts.Roots...)
	if len(roots) == 0 {
		return search.ErrNoRoots
	}
	for i := range roots {
		if abs, err := filepath.Abs(roots[i]); err == nil {
			roots[i] = abs
		}
	}

	set := search.NewSet()
	adapter := tableview.NewAdapter(set)
	defer adapter.Close()

	cfg := search.Config{
		Roots:      roots,
		Query:      opts.Query,
		Workers:    opts.Workers,
		ContextLen: opts.ContextLen,
		Limit:      opts.Limit,
	}
	log.Printf("search: roots=%q query=%q workers=%d", roots, cfg.Query, cfg.WorkerCount())
	stats, err := search.Populate(ctx, cfg, set)
	if err != nil {
		return err
	}
	log.Printf("search: scanned=%d matches=%d", stats.FilesScanned, stats.Matches)

	if adapter.RowCount() == 0 {
		fmt.Fprintln(out, "No matches.")
	} else if err := writeTable(out, adapter); err != nil {
		return err
	}

	if opts.Export != "" {
		if err := export.ToFile(opts.Export, set); err != nil {
			return errors.Wrapf(err, "export to %s", opts.Export)
		}
		fmt.Fprintf(out, "Exported %d rows to %s\n", adapter.RowCount(), opts.Export)
	}

	if opts.Open > 0 {
		path, ok := adapter.Data(opts.Open-1, 0, tableview.DisplayRole).(string)
		if !ok {
			return errors.Wrapf(ErrNoSuchResult, "open %d of %d", opts.Open, adapter.RowCount())
		}
		return winutil.RevealInExplorer(path)
	}
	return nil
}

// writeTable prints the header row and every data row. The leading column
// is the vertical header, shown 1-based.
func writeTable(out io.Writer, a *tableview.Adapter) error {
	w := bufio.NewWriter(out)
	cols := a.ColumnCount()

	fields := make([]string, 0, cols+1)
	fields = append(fields, "#")
	for c := 0; c < cols; c++ {
		fields = append(fields, display(a.HeaderData(c, tableview.Horizontal, tableview.DisplayRole)))
	}
	fmt.Fprintln(w, strings.Join(fields, "\t"))

	for r := 0; r < a.RowCount(); r++ {
		fields = fields[:0]
		n, _ := a.HeaderData(r, tableview.Vertical, tableview.DisplayRole).(int)
		fields = append(fields, fmt.Sprint(n+1))
		for c := 0; c < cols; c++ {
			fields = append(fields, display(a.Data(r, c, tableview.DisplayRole)))
		}
		fmt.Fprintln(w, strings.Join(fields, "\t"))
	}
	return errors.Wrap(w.Flush(), "write results")
}

func display(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// ParseRoots splits every entry on ';' and drops blanks, so both repeated
// flags and a single "C:\a;D:\b" value work.
func ParseRoots(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, p := range strings.Split(v, ";") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
