package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestStorage_RoundTrip(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "notive.db"), slog.Default())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	got, err := s.Get(ctx, "alice", "2024-01-01")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())

	_, err = s.Put(ctx, "alice", "2024-01-01", "first")
	require.NoError(t, err)
	_, err = s.Put(ctx, "alice", "2024-01-01", "# Hi")
	require.NoError(t, err)
	_, err = s.Put(ctx, "alice", "2024-01-02", "next day")
	require.NoError(t, err)
	_, err = s.Put(ctx, "bob", "2024-01-01", "bob's")
	require.NoError(t, err)

	got, err = s.Get(ctx, "alice", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "# Hi", got.Content)
	assert.False(t, got.LastModified.IsZero())

	keys, err := s.List(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-02", "2024-01-01"}, keys)
}

func TestStorage_WithSQLMock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS entries")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	s, err := New(db, slog.Default())
	require.NoError(t, err)

	fixed := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	ctx := context.Background()

	t.Run("Put", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO entries").
			WithArgs("alice", "2024-01-01", "# Hi", fixed).
			WillReturnResult(sqlmock.NewResult(1, 1))

		e, err := s.Put(ctx, "alice", "2024-01-01", "# Hi")
		require.NoError(t, err)
		assert.Equal(t, fixed, e.LastModified)
	})

	t.Run("GetStorageError", func(t *testing.T) {
		mock.ExpectQuery("SELECT content, last_modified FROM entries").
			WithArgs("alice", "2024-01-01").
			WillReturnError(errors.New("database is locked"))

		_, err := s.Get(ctx, "alice", "2024-01-01")
		assert.ErrorContains(t, err, "database is locked")
	})

	t.Run("ListScanRows", func(t *testing.T) {
		mock.ExpectQuery("SELECT date_key FROM entries").
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"date_key"}).AddRow("2024-01-01"))

		keys, err := s.List(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, []string{"2024-01-01"}, keys)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
