// Package editor holds the diary buffer for one date: it loads the entry,
// keeps the preview in step with every edit and hands edits to autosave.
package editor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"notive/internal/app/client/autosave"
	"notive/internal/domain/entry"
)

const (
	StatusLoaded       = "Loaded"
	StatusLoadError    = "Error loading"
	ErrorLoadingBuffer = "# Error loading entry\n\nThere was a problem loading the entry for this date."
)

// Store reads and writes whole entries by date key.
type Store interface {
	Load(ctx context.Context, dateKey string) (string, error)
	Save(ctx context.Context, dateKey, content string) error
}

// Renderer turns markdown into preview markup. It must not fail.
type Renderer func(src string) string

// View is a snapshot of what the user sees.
type View struct {
	DateKey string
	Buffer  string
	Preview string
	Status  string
}

type Editor struct {
	store    Store
	render   Renderer
	now      func() time.Time
	delay    time.Duration
	clock    autosave.Clock
	onChange func(View)
	log      *slog.Logger

	mu      sync.Mutex
	dateKey string
	buffer  string
	preview string
	status  string
	sched   *autosave.Scheduler
}

type Option func(*Editor)

func WithNow(now func() time.Time) Option {
	return func(e *Editor) { e.now = now }
}

func WithDelay(d time.Duration) Option {
	return func(e *Editor) { e.delay = d }
}

// WithSchedulerClock drives the autosave timer, for tests.
func WithSchedulerClock(c autosave.Clock) Option {
	return func(e *Editor) { e.clock = c }
}

// WithOnChange is called after every buffer, preview or status change.
func WithOnChange(f func(View)) Option {
	return func(e *Editor) { e.onChange = f }
}

func WithLogger(log *slog.Logger) Option {
	return func(e *Editor) { e.log = log }
}

func New(store Store, render Renderer, opts ...Option) *Editor {
	e := &Editor{
		store:  store,
		render: render,
		now:    time.Now,
		delay:  autosave.DefaultDelay,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With(slog.String("component", "editor"))

	return e
}

// Open switches the editor to dateKey and loads it. A pending save for
// the previous date is flushed first.
func (e *Editor) Open(ctx context.Context, dateKey string) error {
	if err := entry.ValidateDateKey(dateKey, false); err != nil {
		return err
	}

	e.mu.Lock()
	prev := e.sched
	e.sched = nil
	e.mu.Unlock()

	if prev != nil {
		if err := prev.Flush(ctx); err != nil {
			e.log.Warn("flush before switching date", slog.String("error", err.Error()))
		}
		prev.Close()
	}

	e.mu.Lock()
	e.dateKey = dateKey
	e.sched = e.newScheduler(dateKey)
	e.mu.Unlock()

	return e.Load(ctx)
}

// Load fetches the entry for the current date. A failure is shown in
// the buffer instead of being returned to the caller.
func (e *Editor) Load(ctx context.Context) error {
	e.mu.Lock()
	dateKey := e.dateKey
	e.mu.Unlock()

	if dateKey == "" {
		return fmt.Errorf("editor: no date opened")
	}

	content, err := e.store.Load(ctx, dateKey)
	status := StatusLoaded
	if err != nil {
		e.log.Error("load entry", slog.String("date_key", dateKey), slog.String("error", err.Error()))
		content = ErrorLoadingBuffer
		status = StatusLoadError
	} else if content == "" && dateKey == entry.FormatDateKey(e.now()) {
		content = Template(e.now())
	}

	preview := e.render(content)

	e.mu.Lock()
	if e.dateKey != dateKey {
		// пока шла загрузка, открыли другую дату
		e.mu.Unlock()
		return nil
	}
	e.buffer = content
	e.preview = preview
	e.status = status
	view := e.viewLocked()
	e.mu.Unlock()

	e.changed(view)

	return nil
}

// Edit replaces the buffer, re-renders the preview and restarts the
// autosave window.
func (e *Editor) Edit(text string) {
	preview := e.render(text)

	e.mu.Lock()
	if e.sched == nil {
		e.mu.Unlock()
		return
	}
	e.buffer = text
	e.preview = preview
	sched := e.sched
	view := e.viewLocked()
	e.mu.Unlock()

	e.changed(view)
	sched.Edit(text)
}

func (e *Editor) Previous(ctx context.Context) error {
	return e.shift(ctx, -1)
}

func (e *Editor) Next(ctx context.Context) error {
	return e.shift(ctx, 1)
}

func (e *Editor) Today(ctx context.Context) error {
	return e.Open(ctx, entry.FormatDateKey(e.now()))
}

func (e *Editor) shift(ctx context.Context, days int) error {
	e.mu.Lock()
	dateKey := e.dateKey
	e.mu.Unlock()

	day, err := entry.ParseDateKey(dateKey, e.now().Location())
	if err != nil {
		return err
	}

	return e.Open(ctx, entry.FormatDateKey(day.AddDate(0, 0, days)))
}

// Flush saves a pending edit now.
func (e *Editor) Flush(ctx context.Context) error {
	e.mu.Lock()
	sched := e.sched
	e.mu.Unlock()

	if sched == nil {
		return nil
	}
	return sched.Flush(ctx)
}

// Close flushes pending edits and stops the autosave timer.
func (e *Editor) Close(ctx context.Context) error {
	e.mu.Lock()
	sched := e.sched
	e.sched = nil
	e.mu.Unlock()

	if sched == nil {
		return nil
	}

	err := sched.Flush(ctx)
	sched.Close()

	return err
}

func (e *Editor) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewLocked()
}

func (e *Editor) newScheduler(dateKey string) *autosave.Scheduler {
	opts := []autosave.Option{
		autosave.WithDelay(e.delay),
		autosave.WithLogger(e.log),
		autosave.WithStatus(func(st autosave.Status) { e.setStatus(dateKey, st.String()) }),
	}
	if e.clock != nil {
		opts = append(opts, autosave.WithClock(e.clock))
	}

	return autosave.New(func(ctx context.Context, content string) error {
		return e.store.Save(ctx, dateKey, content)
	}, opts...)
}

func (e *Editor) setStatus(dateKey, status string) {
	e.mu.Lock()
	if e.dateKey != dateKey {
		e.mu.Unlock()
		return
	}
	e.status = status
	view := e.viewLocked()
	e.mu.Unlock()

	e.changed(view)
}

func (e *Editor) viewLocked() View {
	return View{
		DateKey: e.dateKey,
		Buffer:  e.buffer,
		Preview: e.preview,
		Status:  e.status,
	}
}

func (e *Editor) changed(v View) {
	if e.onChange != nil {
		e.onChange(v)
	}
}

// Template is the starting text of a fresh entry for today.
func Template(now time.Time) string {
	return fmt.Sprintf("# Entry for %s\n\nWritten at %s\n\n",
		now.Format("Monday, January 2, 2006"),
		now.Format("15:04"),
	)
}
