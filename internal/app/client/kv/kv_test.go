package kv

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

func TestStores(t *testing.T) {
	sqlite, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)

	stores := map[string]store{
		"sqlite": sqlite,
		"memory": NewMemoryStorage(),
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			defer s.Close()

			_, ok, err := s.Get(ctx, "notebook_tasks")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set(ctx, "notebook_tasks", []byte(`[]`)))
			require.NoError(t, s.Set(ctx, "notebook_tasks", []byte(`[{"id":"1"}]`)))

			v, ok, err := s.Get(ctx, "notebook_tasks")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.JSONEq(t, `[{"id":"1"}]`, string(v))
		})
	}
}

func TestSQLiteStorage_Errors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS kv")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	s, err := New(db)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv WHERE key = ?")).
		WithArgs("notebook_goals").
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv")).
		WithArgs("notebook_goals", []byte("[]"), sqlmock.AnyArg()).
		WillReturnError(errors.New("database is locked"))

	_, _, err = s.Get(context.Background(), "notebook_goals")
	assert.ErrorContains(t, err, "notebook_goals")

	err = s.Set(context.Background(), "notebook_goals", []byte("[]"))
	assert.ErrorContains(t, err, "database is locked")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStorage_InitError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("readonly"))

	_, err = New(db)
	assert.Error(t, err)
}
