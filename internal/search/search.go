package search

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"

	"resultview/internal/extract"
	"resultview/internal/results"
)

var (
	ErrEmptyQuery = errors.New("search: empty query")
	ErrNoRoots    = errors.New("search: no roots")
)

type Config struct {
	Roots   []string
	Query   string
	Workers int
	// ContextLen is the number of runes kept on each side of a hit.
	ContextLen int
	// Limit stops the search after this many matches; 0 means no limit.
	Limit int
}

func (c Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 4
}

func (c Config) ContextRunes() int {
	if c.ContextLen > 0 {
		return c.ContextLen
	}
	return 30
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Query) == "" {
		return ErrEmptyQuery
	}
	for _, r := range c.Roots {
		if strings.TrimSpace(r) != "" {
			return nil
		}
	}
	return ErrNoRoots
}

type Result struct {
	Path      string
	Extension string
	Size      int64
	ModTime   time.Time
	// Snippet is the hit with its context, the hit marked with 【】.
	Snippet string
}

// Headings are the result table columns, in Result.Row order.
var Headings = []string{"Path", "Ext", "Context", "Size", "Modified"}

func (r Result) Row() results.Row {
	return results.Row{
		r.Path,
		r.Extension,
		r.Snippet,
		FormatSize(r.Size),
		r.ModTime.Format("2006-01-02 15:04"),
	}
}

type Stats struct {
	FilesScanned uint64
	Matches      uint64
}

type ResultFn func(Result)

// Run walks every root, searches each supported file on a worker pool and
// calls onResult for every hit from the calling goroutine. It returns when
// the walk is done, the limit is reached or ctx is cancelled.
func Run(ctx context.Context, cfg Config, onResult ResultFn) (Stats, error) {
	if err := cfg.validate(); err != nil {
		return Stats{}, err
	}
	query := strings.TrimSpace(cfg.Query)
	workers := cfg.WorkerCount()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan string, workers*4)
	hits := make(chan Result, workers*2)
	var scanned, matched uint64

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for path := range jobs {
				if runCtx.Err() != nil {
					return
				}
				atomic.AddUint64(&scanned, 1)
				found, snippet, err := extract.FindFirst(runCtx, path, query, cfg.ContextRunes())
				if err != nil {
					if !errors.Is(err, context.Canceled) {
						log.Printf("search: %s: %v", path, err)
					}
					continue
				}
				if !found {
					continue
				}
				r := Result{
					Path:      path,
					Extension: strings.ToLower(filepath.Ext(path)),
					Snippet:   snippet,
				}
				if st, err := os.Stat(path); err == nil {
					r.Size = st.Size()
					r.ModTime = st.ModTime()
				}
				select {
				case hits <- r:
				case <-runCtx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, root := range cfg.Roots {
			root = strings.TrimSpace(root)
			if root == "" {
				continue
			}
			err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return nil
				}
				if runCtx.Err() != nil {
					return runCtx.Err()
				}
				if d.IsDir() || !extract.Supported(filepath.Ext(d.Name())) {
					return nil
				}
				select {
				case jobs <- path:
					return nil
				case <-runCtx.Done():
					return runCtx.Err()
				}
			})
			if err != nil {
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(hits)
	}()

	for r := range hits {
		if cfg.Limit > 0 && atomic.LoadUint64(&matched) >= uint64(cfg.Limit) {
			cancel()
			continue
		}
		atomic.AddUint64(&matched, 1)
		if onResult != nil {
			onResult(r)
		}
	}

	stats := Stats{FilesScanned: atomic.LoadUint64(&scanned), Matches: atomic.LoadUint64(&matched)}
	if err := ctx.Err(); err != nil {
		return stats, errors.Wrap(err, "search cancelled")
	}
	return stats, nil
}

// Collect runs the search and returns every hit ordered by path.
func Collect(ctx context.Context, cfg Config) ([]Result, Stats, error) {
	var out []Result
	stats, err := Run(ctx, cfg, func(r Result) { out = append(out, r) })
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, stats, err
}

// Populate replaces the contents of set with the sorted hits of cfg.
func Populate(ctx context.Context, cfg Config, set *results.Set) (Stats, error) {
	found, stats, err := Collect(ctx, cfg)
	rows := make([]results.Row, len(found))
	for i, r := range found {
		rows[i] = r.Row()
	}
	set.Reset(rows)
	return stats, err
}

// NewSet returns an empty result set with the search headings.
func NewSet() *results.Set {
	return results.NewSet(Headings...)
}

// FormatSize renders a byte count with a binary unit, e.g. "1.5 KB".
func FormatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
