// Command wd looks up English and Chinese words and prints the entries.
//
//	wd [-s] [-format terminal|plain|json|yaml|html] [-color auto|always|never] word...
//	wd history [-n 20] [-top] [-prune 720h]
//	wd migrate
//
// Use "wd -- history" to look up the word "history".
//
// Exit codes: 0 = success, 1 = lookup or runtime error, 2 = usage error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/wudao-dict/internal/app"
	"github.com/heartmarshall/wudao-dict/internal/config"
	"github.com/heartmarshall/wudao-dict/internal/domain"
	"github.com/heartmarshall/wudao-dict/internal/render"
	"github.com/heartmarshall/wudao-dict/internal/sink"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "history":
			return runHistory(ctx, args[1:], stdout, stderr)
		case "migrate":
			return runMigrate(ctx, args[1:], stdout, stderr)
		}
	}
	return runLookup(ctx, args, stdout, stderr)
}

func runLookup(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("wd", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var short bool
	fs.BoolVar(&short, "s", false, "short output: omit descriptions and examples")
	fs.BoolVar(&short, "short", false, "same as -s")
	format := fs.String("format", "", "output format: terminal, plain, json, yaml, html (default from config)")
	color := fs.String("color", "", "color mode: auto, always, never (default from config)")
	version := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: wd [flags] word...\n       wd history [flags]\n       wd migrate")
		fs.PrintDefaults()
	}

	if code, ok := parse(fs, args); !ok {
		return code
	}
	if *version {
		fmt.Fprintln(stdout, "wd", app.BuildVersion())
		return exitOK
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	if *format != "" && !sink.Format(*format).IsValid() {
		fmt.Fprintf(stderr, "wd: unknown format %q\n", *format)
		return exitUsage
	}
	switch *color {
	case "", sink.ColorAuto, sink.ColorAlways, sink.ColorNever:
	default:
		fmt.Fprintf(stderr, "wd: unknown color mode %q\n", *color)
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "wd: load config: %v\n", err)
		return exitError
	}
	if *format != "" {
		cfg.Render.Format = *format
	}
	if *color != "" {
		cfg.Render.Color = *color
	}

	logger := app.NewLogger(cfg.Log)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "wd: %v\n", err)
		return exitError
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(ctx, cfg.Lookup.Timeout)
	defer cancel()

	outcomes, err := a.Lookup.LookupMany(ctx, fs.Args(), render.Options{Short: short || cfg.Render.Short})
	if err != nil {
		fmt.Fprintf(stderr, "wd: %v\n", err)
		return exitError
	}

	code := exitOK
	docs := make([]sink.Document, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil {
			reportMiss(stderr, o.Query, o.Err)
			code = exitError
			continue
		}
		docs = append(docs, o.Result.Document())
	}

	out, err := sink.New(sink.Format(cfg.Render.Format), sink.ColorEnabled(cfg.Render.Color, stdout))
	if err != nil {
		fmt.Fprintf(stderr, "wd: %v\n", err)
		return exitError
	}
	if err := out.Write(stdout, docs...); err != nil {
		fmt.Fprintf(stderr, "wd: %v\n", err)
		return exitError
	}
	return code
}

func reportMiss(w io.Writer, query string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		fmt.Fprintf(w, "wd: no entry for %q\n", query)
	case errors.Is(err, domain.ErrValidation):
		fmt.Fprintf(w, "wd: invalid word %q\n", query)
	default:
		fmt.Fprintf(w, "wd: %q: %v\n", query, err)
	}
}

// parse reports ok=false with the exit code when the caller should stop.
func parse(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK, false
		}
		return exitUsage, false
	}
	return exitOK, true
}
