package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"resultview/internal/app"
	"resultview/internal/winutil"
)

const logName = "resultview_debug.log"

// debugMode is on for builds named *debug* or when RESULTVIEW_DEBUG=1.
func debugMode() bool {
	exe, _ := os.Executable()
	base := strings.ToLower(filepath.Base(exe))
	return strings.Contains(base, "debug") || os.Getenv("RESULTVIEW_DEBUG") == "1"
}

// setupLog writes to stderr and a log file next to the executable in debug
// mode and discards everything otherwise.
func setupLog(debug bool) (closeFn func()) {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	if !debug {
		log.SetOutput(io.Discard)
		return func() {}
	}
	exe, _ := os.Executable()
	f, err := os.OpenFile(filepath.Join(filepath.Dir(exe), logName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	go monitor(2 * time.Second)
	return func() { f.Close() }
}

func monitor(every time.Duration) {
	ticker := time.NewTicker(every)
	for range ticker.C {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		log.Printf("[MONITOR] PID=%d | Goroutines=%d | Alloc=%.2f MiB | Sys=%.2f MiB | NumGC=%d",
			os.Getpid(), runtime.NumGoroutine(),
			float64(m.Alloc)/1024/1024,
			float64(m.Sys)/1024/1024,
			m.NumGC)
	}
}

var searchFlags = []cli.Flag{
	&cli.StringSliceFlag{
		Name:    "root",
		Aliases: []string{"r"},
		Usage:   "directory to search, repeatable or ';' separated",
		EnvVars: []string{"RESULTVIEW_ROOTS"},
	},
	&cli.IntFlag{
		Name:    "workers",
		Usage:   "parallel file readers (0 = CPU count)",
		EnvVars: []string{"RESULTVIEW_WORKERS"},
	},
	&cli.IntFlag{
		Name:  "context",
		Usage: "characters of context shown on each side of a hit",
		Value: 30,
	},
}

func optionsFrom(c *cli.Context) app.SearchOptions {
	return app.SearchOptions{
		Roots:      c.StringSlice("root"),
		Query:      c.String("query"),
		Workers:    c.Int("workers"),
		ContextLen: c.Int("context"),
		Limit:      c.Int("limit"),
		Export:     c.String("export"),
		Open:       c.Int("open"),
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "resultview",
		Usage: "search document contents and browse the hits in a table",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "search and print the results table",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "text to find", Required: true},
					&cli.IntFlag{Name: "limit", Usage: "stop after this many matches (0 = no limit)"},
					&cli.StringFlag{Name: "export", Usage: "also write the results to a .csv or .xlsx file"},
					&cli.IntFlag{Name: "open", Usage: "reveal the Nth result in Explorer (1-based)"},
				}, searchFlags...),
				Before: func(c *cli.Context) error {
					winutil.EnsureConsole()
					c.App.Writer, c.App.ErrWriter = os.Stdout, os.Stderr
					return nil
				},
				Action: func(c *cli.Context) error {
					ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
					defer stop()
					return app.RunSearch(ctx, optionsFrom(c), c.App.Writer)
				},
			},
			{
				Name:  "ui",
				Usage: "open the search window (Windows only)",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "initial query"},
				}, searchFlags...),
				Action: func(c *cli.Context) error {
					return runUI(optionsFrom(c))
				},
			},
		},
		// Double-clicking the exe passes no arguments: open the window.
		Action: func(c *cli.Context) error {
			if runtime.GOOS != "windows" || c.NArg() > 0 {
				return cli.ShowAppHelp(c)
			}
			return runUI(app.SearchOptions{})
		},
	}
}

func runUI(opts app.SearchOptions) error {
	if !debugMode() {
		winutil.DetachConsole()
	}
	log.Println("starting UI")
	return app.RunUI(opts)
}

func main() {
	os.Exit(run(os.Args))
}

// run returns the process exit code. Exiting happens in main only, so the
// log file is closed on every path, panics included.
func run(args []string) (code int) {
	dbg := debugMode()
	closeLog := setupLog(dbg)
	defer closeLog()

	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("PANIC: %v\nStack:\n%s", r, debug.Stack())
			log.Println(msg)
			if dbg {
				fmt.Fprintln(os.Stderr, msg)
			}
			code = 2
		}
	}()

	if err := newApp().RunContext(context.Background(), args); err != nil {
		log.Printf("error: %v", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
