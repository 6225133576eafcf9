package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/exp/slog"

	"notive/internal/domain/entry"
)

// Querier is the part of pgxpool.Pool the repository needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type EntryRepository struct {
	db  Querier
	log *slog.Logger
}

func NewEntryRepository(db Querier, log *slog.Logger) *EntryRepository {
	return &EntryRepository{
		db:  db,
		log: log.With("component", "entry_repository"),
	}
}

func (r *EntryRepository) Get(ctx context.Context, owner, dateKey string) (entry.Entry, error) {
	const query = `
		SELECT content, last_modified
		FROM entries
		WHERE owner = $1 AND date_key = $2`

	e := entry.Entry{Owner: owner, DateKey: dateKey}

	err := r.db.QueryRow(ctx, query, owner, dateKey).Scan(&e.Content, &e.LastModified)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return e, nil
		}
		r.log.Error("failed to get entry", "owner", owner, "date_key", dateKey, "error", err)
		return e, fmt.Errorf("get entry: %w", err)
	}

	return e, nil
}

func (r *EntryRepository) Put(ctx context.Context, owner, dateKey, content string) (entry.Entry, error) {
	const query = `
		INSERT INTO entries (owner, date_key, content, last_modified)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (owner, date_key)
		DO UPDATE SET content = EXCLUDED.content, last_modified = NOW()
		RETURNING last_modified`

	e := entry.Entry{Owner: owner, DateKey: dateKey, Content: content}

	var lastModified time.Time
	if err := r.db.QueryRow(ctx, query, owner, dateKey, content).Scan(&lastModified); err != nil {
		r.log.Error("failed to put entry", "owner", owner, "date_key", dateKey, "error", err)
		return e, fmt.Errorf("put entry: %w", err)
	}
	e.LastModified = lastModified

	return e, nil
}

func (r *EntryRepository) List(ctx context.Context, owner string) ([]string, error) {
	const query = `
		SELECT date_key
		FROM entries
		WHERE owner = $1
		ORDER BY date_key DESC`

	rows, err := r.db.Query(ctx, query, owner)
	if err != nil {
		r.log.Error("failed to list entries", "owner", owner, "error", err)
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan date key: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}
