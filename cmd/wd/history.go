package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/heartmarshall/wudao-dict/internal/adapter/postgres"
	"github.com/heartmarshall/wudao-dict/internal/adapter/postgres/history"
	"github.com/heartmarshall/wudao-dict/internal/app"
	"github.com/heartmarshall/wudao-dict/internal/config"
)

const timeLayout = "2006-01-02 15:04"

func runHistory(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("wd history", flag.ContinueOnError)
	fs.SetOutput(stderr)
	limit := fs.Int("n", 0, "number of records to show (default from config)")
	top := fs.Bool("top", false, "show the most looked up words instead of recent lookups")
	prune := fs.Duration("prune", 0, "delete records older than this duration, e.g. 720h")

	if code, ok := parse(fs, args); !ok {
		return code
	}
	if fs.NArg() > 0 || *limit < 0 || *prune < 0 {
		fs.Usage()
		return exitUsage
	}

	cfg, code, ok := historyConfig(stderr)
	if !ok {
		return code
	}
	if *limit == 0 {
		*limit = cfg.History.ListLimit
	}

	logger := app.NewLogger(cfg.Log)

	pool, err := postgres.NewPool(ctx, cfg.History)
	if err != nil {
		fmt.Fprintf(stderr, "wd: connect history: %v\n", err)
		return exitError
	}
	defer pool.Close()

	repo := history.New(pool)

	switch {
	case *prune > 0:
		before := time.Now().Add(-*prune)
		n, err := repo.Prune(ctx, before)
		if err != nil {
			fmt.Fprintf(stderr, "wd: %v\n", err)
			return exitError
		}
		logger.Info("history pruned",
			slog.Int64("deleted", n),
			slog.Time("before", before),
		)
		fmt.Fprintf(stdout, "pruned %d records\n", n)

	case *top:
		words, err := repo.TopWords(ctx, *limit)
		if err != nil {
			fmt.Fprintf(stderr, "wd: %v\n", err)
			return exitError
		}
		tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		for _, w := range words {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", w.Word, w.Lang, w.Count, w.Last.Local().Format(timeLayout))
		}
		tw.Flush()

	default:
		recs, err := repo.ListRecent(ctx, *limit)
		if err != nil {
			fmt.Fprintf(stderr, "wd: %v\n", err)
			return exitError
		}
		tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		for _, r := range recs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.LookedUpAt.Local().Format(timeLayout), r.Word, r.Lang, r.Source)
		}
		tw.Flush()
	}
	return exitOK
}

func runMigrate(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("wd migrate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if code, ok := parse(fs, args); !ok {
		return code
	}

	cfg, code, ok := historyConfig(stderr)
	if !ok {
		return code
	}
	logger := app.NewLogger(cfg.Log)

	applied, err := postgres.Migrate(ctx, cfg.History.DSN, logger)
	if err != nil {
		fmt.Fprintf(stderr, "wd: %v\n", err)
		return exitError
	}
	if len(applied) == 0 {
		fmt.Fprintln(stdout, "no pending migrations")
		return exitOK
	}
	fmt.Fprintf(stdout, "applied %d migrations, now at version %d\n", len(applied), applied[len(applied)-1])
	return exitOK
}

// historyConfig loads the config and requires the history store to be set.
func historyConfig(stderr io.Writer) (*config.Config, int, bool) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "wd: load config: %v\n", err)
		return nil, exitError, false
	}
	if !cfg.History.Enabled() {
		fmt.Fprintln(stderr, "wd: lookup history is disabled, set history.dsn or WUDAO_HISTORY_DSN")
		return nil, exitError, false
	}
	return cfg, exitOK, true
}
