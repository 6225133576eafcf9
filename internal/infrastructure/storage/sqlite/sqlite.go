package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"notive/internal/domain/entry"
)

const schema = `
	CREATE TABLE IF NOT EXISTS entries (
		owner         TEXT     NOT NULL,
		date_key      TEXT     NOT NULL,
		content       TEXT     NOT NULL DEFAULT '',
		last_modified DATETIME NOT NULL,
		PRIMARY KEY (owner, date_key)
	);`

type Storage struct {
	db  *sql.DB
	log *slog.Logger
	now func() time.Time
}

// Open открывает файл базы и создает таблицу entries при первом запуске.
func Open(path string, log *slog.Logger) (*Storage, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s, err := New(db, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func New(db *sql.DB, log *slog.Logger) (*Storage, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init tables: %w", err)
	}

	return &Storage{
		db:  db,
		log: log.With("component", "entry_sqlite"),
		now: time.Now,
	}, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) Get(ctx context.Context, owner, dateKey string) (entry.Entry, error) {
	e := entry.Entry{Owner: owner, DateKey: dateKey}

	err := s.db.QueryRowContext(ctx,
		`SELECT content, last_modified FROM entries WHERE owner = ? AND date_key = ?`,
		owner, dateKey,
	).Scan(&e.Content, &e.LastModified)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return e, nil
		}
		return e, fmt.Errorf("get entry: %w", err)
	}

	return e, nil
}

func (s *Storage) Put(ctx context.Context, owner, dateKey, content string) (entry.Entry, error) {
	e := entry.Entry{
		Owner:        owner,
		DateKey:      dateKey,
		Content:      content,
		LastModified: s.now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (owner, date_key, content, last_modified)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (owner, date_key)
		DO UPDATE SET content = excluded.content, last_modified = excluded.last_modified`,
		owner, dateKey, content, e.LastModified,
	)
	if err != nil {
		s.log.Error("failed to put entry", "owner", owner, "date_key", dateKey, "error", err)
		return e, fmt.Errorf("put entry: %w", err)
	}

	return e, nil
}

func (s *Storage) List(ctx context.Context, owner string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date_key FROM entries WHERE owner = ? ORDER BY date_key DESC`, owner)
	if err != nil {
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
