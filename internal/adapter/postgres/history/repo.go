// Package history implements the lookup history repository using PostgreSQL.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/wudao-dict/internal/adapter/postgres"
	"github.com/heartmarshall/wudao-dict/internal/domain"
)

const table = "lookup_history"

var columns = []string{"id", "word", "lang", "source", "looked_up_at"}

// Repo provides lookup history persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new history repository over a pool or transaction.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Record appends one lookup.
func (r *Repo) Record(ctx context.Context, rec domain.HistoryRecord) error {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(rec.ID, rec.Word, string(rec.Lang), rec.Source, rec.LookedUpAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build record query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "record lookup "+rec.ID.String())
	}
	return nil
}

// Prune deletes lookups older than before and returns how many were removed.
func (r *Repo) Prune(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Lt{"looked_up_at": before}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build prune query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "prune history")
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListRecent returns up to limit lookups, newest first.
// Returns an empty slice (not nil) when there is no history.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]domain.HistoryRecord, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("looked_up_at DESC", "id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "list history")
	}

	records, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, postgres.MapError(err, "list history")
	}
	if records == nil {
		records = []domain.HistoryRecord{}
	}
	return records, nil
}

// TopWords returns the most looked-up headwords, most frequent first.
// Ties are broken by the most recent lookup.
func (r *Repo) TopWords(ctx context.Context, limit int) ([]domain.WordCount, error) {
	query, args, err := postgres.Builder().
		Select("word", "lang", "count(*)", "max(looked_up_at)").
		From(table).
		GroupBy("word", "lang").
		OrderBy("count(*) DESC", "max(looked_up_at) DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build top words query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "top words")
	}

	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.WordCount, error) {
		var (
			wc   domain.WordCount
			lang string
		)
		err := row.Scan(&wc.Word, &lang, &wc.Count, &wc.Last)
		wc.Lang = domain.Lang(lang)
		return wc, err
	})
	if err != nil {
		return nil, postgres.MapError(err, "top words")
	}
	if counts == nil {
		counts = []domain.WordCount{}
	}
	return counts, nil
}

func scanRecord(row pgx.CollectableRow) (domain.HistoryRecord, error) {
	var (
		rec  domain.HistoryRecord
		lang string
	)
	if err := row.Scan(&rec.ID, &rec.Word, &lang, &rec.Source, &rec.LookedUpAt); err != nil {
		return domain.HistoryRecord{}, err
	}
	rec.Lang = domain.Lang(lang)
	return rec, nil
}
