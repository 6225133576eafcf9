package widget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notive/internal/app/client/kv"
)

type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingKV) Set(context.Context, string, []byte) error        { return f.err }

func TestTasks(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStorage()

	tasks := NewTasks(store)
	n := 0
	tasks.newID = func() string { n++; return "task-" + string(rune('0'+n)) }

	_, err := tasks.Add("   ")
	assert.ErrorIs(t, err, ErrEmpty)

	milk, err := tasks.Add(" buy milk ")
	require.NoError(t, err)
	assert.Equal(t, "buy milk", milk.Text)
	_, err = tasks.Add("write diary")
	require.NoError(t, err)

	toggled, err := tasks.Toggle(milk.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	assert.Len(t, tasks.Filter(FilterAll), 2)
	assert.Equal(t, "write diary", tasks.Filter(FilterActive)[0].Text)
	assert.Equal(t, "buy milk", tasks.Filter(FilterCompleted)[0].Text)

	require.NoError(t, tasks.Save(ctx))

	reloaded := NewTasks(store)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, tasks.Items(), reloaded.Items())

	require.NoError(t, reloaded.Remove("task-2"))
	assert.Equal(t, 1, reloaded.Len())
	assert.ErrorIs(t, reloaded.Remove("task-9"), ErrNotFound)
	_, err = reloaded.Toggle("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTasks_IDPrefix(t *testing.T) {
	tasks := NewTasks(kv.NewMemoryStorage())

	a, err := tasks.Add("a")
	require.NoError(t, err)
	assert.Regexp(t, `^task-[0-9a-f-]{36}$`, a.ID)

	_, err = tasks.Toggle(a.ID[:10])
	require.NoError(t, err)
	assert.True(t, tasks.Items()[0].Completed)
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	f, err = ParseFilter("Active")
	require.NoError(t, err)
	assert.Equal(t, FilterActive, f)

	_, err = ParseFilter("someday")
	assert.Error(t, err)
}

func TestNotes(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStorage()

	notes := NewNotes(store)
	notes.now = func() time.Time { return time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC) }

	_, err := notes.Add("", "body")
	assert.ErrorIs(t, err, ErrEmpty)

	note, err := notes.Add("Ideas", "more sleep")
	require.NoError(t, err)
	assert.Equal(t, "March 15, 2024", note.Date)

	updated, err := notes.Update(0, "Ideas v2", "even more sleep")
	require.NoError(t, err)
	assert.Equal(t, "March 15, 2024", updated.Date)

	_, err = notes.Update(3, "x", "y")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, notes.Save(ctx))

	raw, ok, err := store.Get(ctx, NotesKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"title":"Ideas v2","content":"even more sleep","date":"March 15, 2024"}]`, string(raw))

	require.NoError(t, notes.Remove(0))
	assert.Equal(t, 0, notes.Len())
}

func TestGoals(t *testing.T) {
	goals := NewGoals(kv.NewMemoryStorage())

	g, err := goals.Add("Run a marathon", "", time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, noDescription, g.Description)
	assert.Equal(t, "October 1, 2024", g.DueDate)
	assert.Equal(t, 0, g.Progress)

	tests := []struct {
		in        int
		wantP     int
		wantColor string
	}{
		{in: -5, wantP: 0, wantColor: ColorLow},
		{in: 29, wantP: 29, wantColor: ColorLow},
		{in: 30, wantP: 30, wantColor: ColorMedium},
		{in: 69, wantP: 69, wantColor: ColorMedium},
		{in: 70, wantP: 70, wantColor: ColorHigh},
		{in: 250, wantP: 100, wantColor: ColorHigh},
	}

	for _, tt := range tests {
		g, err := goals.SetProgress(0, tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.wantP, g.Progress)
		assert.Equal(t, tt.wantColor, g.Color)
	}

	_, err = goals.SetProgress(1, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_Corrupt(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStorage()
	require.NoError(t, store.Set(ctx, TasksKey, []byte(`{not json`)))

	tasks := NewTasks(store)
	err := tasks.Load(ctx)

	assert.ErrorIs(t, err, ErrCorrupt)
	assert.Equal(t, 0, tasks.Len())
}

func TestList_KVError(t *testing.T) {
	boom := errors.New("disk full")
	goals := NewGoals(failingKV{err: boom})

	assert.ErrorIs(t, goals.Load(context.Background()), boom)
	assert.ErrorIs(t, goals.Save(context.Background()), boom)
}

func TestList_SaveEmpty(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStorage()

	require.NoError(t, NewNotes(store).Save(ctx))

	raw, _, err := store.Get(ctx, NotesKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestRender(t *testing.T) {
	assert.Equal(t, "No tasks.\n", RenderTasks(nil))
	assert.Equal(t, "[x] milk  (task-1)\n[ ] bread  (task-2)\n", RenderTasks([]Task{
		{ID: "task-1", Text: "milk", Completed: true},
		{ID: "task-2", Text: "bread"},
	}))

	assert.Equal(t, "1. Ideas  March 15, 2024\n   a\n   b\n", RenderNotes([]Note{
		{Title: "Ideas", Content: "a\nb", Date: "March 15, 2024"},
	}))

	assert.Equal(t, "[##########----------]", ProgressBar(50))
	assert.Equal(t, "[--------------------]", ProgressBar(-1))
	assert.Contains(t, RenderGoals([]Goal{{Title: "Run", Progress: 100, Description: "d"}}), "100%")
}
