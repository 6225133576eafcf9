package entry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Get(ctx context.Context, owner, dateKey string) (Entry, error) {
	args := m.Called(ctx, owner, dateKey)
	return args.Get(0).(Entry), args.Error(1)
}

func (m *MockRepository) Put(ctx context.Context, owner, dateKey, content string) (Entry, error) {
	args := m.Called(ctx, owner, dateKey, content)
	return args.Get(0).(Entry), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, owner string) ([]string, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestService_Read(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		dateKey     string
		repoEntry   Entry
		repoErr     error
		wantContent string
		wantErr     error
		callsRepo   bool
	}{
		{
			name:        "existing entry",
			dateKey:     "2024-01-01",
			repoEntry:   Entry{Content: "# Hi", LastModified: now},
			wantContent: "# Hi",
			callsRepo:   true,
		},
		{
			name:        "never written key is empty",
			dateKey:     "9999-99-99",
			repoEntry:   Entry{},
			wantContent: "",
			callsRepo:   true,
		},
		{
			name:      "storage failure",
			dateKey:   "2024-01-01",
			repoEntry: Entry{},
			repoErr:   errors.New("disk on fire"),
			wantErr:   ErrStorage,
			callsRepo: true,
		},
		{
			name:    "path traversal key",
			dateKey: "../etc",
			wantErr: ErrInvalidDateKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := NewService(repo, false, slog.Default())

			if tt.callsRepo {
				repo.On("Get", mock.Anything, "alice", tt.dateKey).Return(tt.repoEntry, tt.repoErr)
			}

			got, err := svc.Read(context.Background(), "alice", tt.dateKey)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantContent, got.Content)
			assert.Equal(t, tt.dateKey, got.DateKey)
			assert.Equal(t, "alice", got.Owner)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Write(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, false, slog.Default())

		saved := Entry{Owner: "alice", DateKey: "2024-01-01", Content: "# Hi", LastModified: time.Now()}
		repo.On("Put", mock.Anything, "alice", "2024-01-01", "# Hi").Return(saved, nil)

		got, err := svc.Write(context.Background(), "alice", "2024-01-01", strPtr("# Hi"))
		require.NoError(t, err)
		assert.Equal(t, saved, got)
		repo.AssertExpectations(t)
	})

	t.Run("Empty content is valid", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, false, slog.Default())

		repo.On("Put", mock.Anything, "alice", "2024-01-01", "").Return(Entry{}, nil)

		_, err := svc.Write(context.Background(), "alice", "2024-01-01", strPtr(""))
		assert.NoError(t, err)
	})

	t.Run("Missing content", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, false, slog.Default())

		_, err := svc.Write(context.Background(), "alice", "2024-01-01", nil)
		assert.ErrorIs(t, err, ErrMissingContent)
		repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Opaque key accepted", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, false, slog.Default())

		repo.On("Put", mock.Anything, "alice", "not-a-date", "x").Return(Entry{}, nil)

		_, err := svc.Write(context.Background(), "alice", "not-a-date", strPtr("x"))
		assert.NoError(t, err)
	})

	t.Run("Strict key rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, true, slog.Default())

		_, err := svc.Write(context.Background(), "alice", "2024-02-30", strPtr("x"))
		assert.ErrorIs(t, err, ErrInvalidDateKey)
	})

	t.Run("Storage failure", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, false, slog.Default())

		repo.On("Put", mock.Anything, "alice", "2024-01-01", "x").Return(Entry{}, errors.New("read-only fs"))

		_, err := svc.Write(context.Background(), "alice", "2024-01-01", strPtr("x"))
		assert.ErrorIs(t, err, ErrStorage)
		assert.Contains(t, err.Error(), "read-only fs")
	})

	t.Run("Invalid owner", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, false, slog.Default())

		_, err := svc.Write(context.Background(), "../bob", "2024-01-01", strPtr("x"))
		assert.ErrorIs(t, err, ErrInvalidOwner)
	})
}

func TestService_List(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, false, slog.Default())

	repo.On("List", mock.Anything, "alice").Return([]string{"2024-01-01", "2024-03-05", "2023-12-31"}, nil)
	repo.On("List", mock.Anything, "bob").Return(nil, nil)

	keys, err := svc.List(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-05", "2024-01-01", "2023-12-31"}, keys)

	keys, err = svc.List(context.Background(), "bob")
	require.NoError(t, err)
	assert.NotNil(t, keys)
	assert.Empty(t, keys)
}
