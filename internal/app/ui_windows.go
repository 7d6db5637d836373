//go:build windows

package app

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lxn/walk"
	"github.com/lxn/walk/declarative"

	"resultview/internal/export"
	"resultview/internal/results"
	"resultview/internal/search"
	"resultview/internal/tableview"
	"resultview/internal/winutil"
)

const (
	// maxResults caps one search so the table stays responsive.
	maxResults      = 5000
	searchDebounce  = 400 * time.Millisecond
	flushInterval   = 80 * time.Millisecond
	maxBatchPerTick = 400
)

// uiEvent carries one search callback from a worker goroutine to the
// flush loop. done marks the end of generation gen.
type uiEvent struct {
	gen    uint64
	result search.Result
	done   bool
	stats  search.Stats
	err    error
}

// RunUI opens the main window and blocks until it is closed.
func RunUI(opts SearchOptions) error {
	var (
		mw        *walk.MainWindow
		rootsEdit *walk.LineEdit
		queryEdit *walk.LineEdit
		status    *walk.Label
		btnStop   *walk.PushButton

		mu        sync.Mutex
		gen       uint64
		cancelRun context.CancelFunc
		debounceT *time.Timer

		closeOnce sync.Once
		closeCh   = make(chan struct{})
		uiClosed  uint32

		statusMsg = "Ready"

		set     = search.NewSet()
		view    = tableview.NewView(set)
		eventCh = make(chan uiEvent, 2000)
	)

	updateStatus := func() {
		if status == nil {
			return
		}
		line := fmt.Sprintf("%s | Matches: %d", statusMsg, set.Len())
		if n := set.SelectedRows().Len(); n > 0 {
			line += fmt.Sprintf(" | Selected: %d", n)
		}
		status.SetText(line)
	}
	setStatus := func(msg string) {
		statusMsg = msg
		updateStatus()
	}

	// cancelSearch stops the running search and bumps the generation so
	// late events from it are dropped. Returns the new generation.
	cancelSearch := func() uint64 {
		mu.Lock()
		defer mu.Unlock()
		if debounceT != nil {
			debounceT.Stop()
			debounceT = nil
		}
		if cancelRun != nil {
			cancelRun()
			cancelRun = nil
		}
		gen++
		return gen
	}

	stopSearch := func() {
		cancelSearch()
		if btnStop != nil {
			btnStop.SetEnabled(false)
		}
		setStatus("Stopped")
	}

	startSearchNow := func(query string) {
		query = strings.TrimSpace(query)
		if query == "" {
			stopSearch()
			set.Clear()
			setStatus("Ready")
			return
		}
		if !queryIsSearchable(query) {
			setStatus("Query too short: 3 ASCII or 2 other characters needed")
			return
		}
		roots := ParseRoots(rootsEdit.Text())
		if len(roots) == 0 {
			setStatus("Pick a folder or drive first")
			return
		}

		myGen := cancelSearch()
		ctx, cancel := context.WithCancel(context.Background())
		mu.Lock()
		cancelRun = cancel
		mu.Unlock()

		set.Clear()
		btnStop.SetEnabled(true)
		setStatus("Searching...")

		cfg := search.Config{
			Roots:      roots,
			Query:      query,
			Workers:    opts.Workers,
			ContextLen: opts.ContextLen,
			Limit:      maxResults,
		}
		log.Printf("ui: search gen=%d roots=%q query=%q", myGen, roots, query)
		go func() {
			stats, err := search.Run(ctx, cfg, func(r search.Result) {
				select {
				case eventCh <- uiEvent{gen: myGen, result: r}:
				case <-ctx.Done():
				case <-closeCh:
				}
			})
			select {
			case eventCh <- uiEvent{gen: myGen, done: true, stats: stats, err: err}:
			case <-closeCh:
			}
		}()
	}

	scheduleSearch := func() {
		mu.Lock()
		defer mu.Unlock()
		if debounceT != nil {
			debounceT.Stop()
		}
		debounceT = time.AfterFunc(searchDebounce, func() {
			if atomic.LoadUint32(&uiClosed) != 0 {
				return
			}
			mw.Synchronize(func() {
				startSearchNow(queryEdit.Text())
			})
		})
	}

	exportResults := func() {
		if set.Len() == 0 {
			walk.MsgBox(mw, "Export", "No results to export", walk.MsgBoxIconInformation)
			return
		}
		dlg := new(walk.FileDialog)
		dlg.Title = "Export results"
		dlg.Filter = "CSV Files (*.csv)|*.csv|Excel Workbook (*.xlsx)|*.xlsx"
		ok, err := dlg.ShowSave(mw)
		if err != nil || !ok {
			return
		}
		path := dlg.FilePath
		if filepath.Ext(path) == "" {
			if dlg.FilterIndex == 2 {
				path += ".xlsx"
			} else {
				path += ".csv"
			}
		}
		if err := export.ToFile(path, set); err != nil {
			log.Printf("ui: export %s: %v", path, err)
			walk.MsgBox(mw, "Export", err.Error(), walk.MsgBoxIconError)
			return
		}
		setStatus("Exported to " + path)
	}

	view.OnActivated = func(row int) {
		p, ok := set.Data(row, 0).(string)
		if !ok {
			return
		}
		if err := winutil.RevealInExplorer(p); err != nil {
			log.Printf("ui: %v", err)
		}
	}

	mwDecl := declarative.MainWindow{
		AssignTo: &mw,
		Title:    "Result View",
		MinSize:  declarative.Size{Width: 820, Height: 520},
		Layout:   declarative.VBox{},
		Children: []declarative.Widget{
			declarative.Composite{
				Layout: declarative.Grid{Columns: 6},
				Children: []declarative.Widget{
					declarative.Label{Text: "Roots"},
					declarative.LineEdit{AssignTo: &rootsEdit, ColumnSpan: 2},
					declarative.PushButton{
						Text: "Browse...",
						OnClicked: func() {
							dlg := new(walk.FileDialog)
							if ok, _ := dlg.ShowBrowseFolder(mw); ok {
								rootsEdit.SetText(dlg.FilePath)
							}
						},
					},
					declarative.PushButton{
						Text: "Desktop",
						OnClicked: func() {
							if p, err := winutil.DesktopDir(); err == nil {
								rootsEdit.SetText(p)
							} else {
								setStatus("Desktop folder unavailable")
							}
						},
					},
					declarative.PushButton{
						Text: "All drives",
						OnClicked: func() {
							ret := walk.MsgBox(mw, "All drives", "Searching every drive can take a long time. Continue?", walk.MsgBoxYesNo|walk.MsgBoxIconWarning)
							if ret == walk.DlgCmdYes {
								rootsEdit.SetText(strings.Join(winutil.ListSearchableDrives(), ";"))
							}
						},
					},
				},
			},
			declarative.Composite{
				Layout: declarative.Grid{Columns: 4},
				Children: []declarative.Widget{
					declarative.Label{Text: "Query"},
					declarative.LineEdit{AssignTo: &queryEdit},
					declarative.PushButton{AssignTo: &btnStop, Text: "Stop", Enabled: false, OnClicked: stopSearch},
					declarative.PushButton{Text: "Export...", OnClicked: exportResults},
				},
			},
			declarative.Label{AssignTo: &status, Text: "Ready"},
			view.Declare(),
		},
	}

	if err := mwDecl.Create(); err != nil {
		return errors.Wrap(err, "create main window")
	}
	if err := view.Attach(); err != nil {
		return err
	}
	cancelSel := set.SelectedRows().Events().Subscribe(func(results.Change) { updateStatus() })
	defer cancelSel()

	// Results are batched on a ticker so a burst of hits costs a few UI
	// round trips instead of one Synchronize each.
	go func() {
		buffer := make([]uiEvent, 0, 1024)
		ticker := time.NewTicker(flushInterval)
		defer ticker.Stop()
		for {
			select {
			case <-closeCh:
				return
			case ev := <-eventCh:
				buffer = append(buffer, ev)
			case <-ticker.C:
				if len(buffer) == 0 {
					continue
				}
				n := len(buffer)
				if n > maxBatchPerTick {
					n = maxBatchPerTick
				}
				batch := make([]uiEvent, n)
				copy(batch, buffer[:n])
				buffer = buffer[n:]

				mw.Synchronize(func() {
					if atomic.LoadUint32(&uiClosed) != 0 {
						return
					}
					mu.Lock()
					cur := gen
					mu.Unlock()

					rows := make([]results.Row, 0, len(batch))
					var last *uiEvent
					for i := range batch {
						ev := &batch[i]
						if ev.gen != cur {
							continue
						}
						if ev.done {
							last = ev
							continue
						}
						rows = append(rows, ev.result.Row())
					}
					set.Append(rows...)

					switch {
					case last == nil:
						if len(rows) > 0 {
							updateStatus()
						}
					case last.err != nil && !errors.Is(last.err, context.Canceled):
						btnStop.SetEnabled(false)
						setStatus("Error: " + last.err.Error())
					case last.err != nil:
						btnStop.SetEnabled(false)
						setStatus("Stopped")
					case set.Len() >= maxResults:
						btnStop.SetEnabled(false)
						setStatus(fmt.Sprintf("Too many results, showing the first %d", maxResults))
					default:
						btnStop.SetEnabled(false)
						setStatus(fmt.Sprintf("Done. Scanned %d files", last.stats.FilesScanned))
					}
				})
			}
		}
	}()

	mw.Closing().Attach(func(canceled *bool, reason walk.CloseReason) {
		closeOnce.Do(func() {
			atomic.StoreUint32(&uiClosed, 1)
			close(closeCh)
		})
		cancelSearch()
		view.Dispose()
	})

	switch {
	case len(opts.Roots) > 0:
		rootsEdit.SetText(strings.Join(ParseRoots(opts.Roots...), ";"))
	default:
		if p, err := winutil.DesktopDir(); err == nil {
			rootsEdit.SetText(p)
		}
	}

	// Typing clears the old results at once; the search itself starts
	// once the query has been still for searchDebounce.
	queryEdit.TextChanged().Attach(func() {
		cancelSearch()
		set.Clear()
		btnStop.SetEnabled(false)

		q := strings.TrimSpace(queryEdit.Text())
		switch {
		case q == "":
			setStatus("Ready")
		case !queryIsSearchable(q):
			setStatus("Query too short: 3 ASCII or 2 other characters needed")
		default:
			setStatus("Waiting for typing to stop...")
			scheduleSearch()
		}
	})
	if strings.TrimSpace(opts.Query) != "" {
		queryEdit.SetText(opts.Query)
	}

	if code := mw.Run(); code != 0 {
		return errors.Newf("main window exited with code %d", code)
	}
	return nil
}
