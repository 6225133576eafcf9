// Package autosave debounces buffer edits into a single write once the
// user stops typing.
package autosave

import (
	"context"
	"sync"
	"time"

	"golang.org/x/exp/slog"
)

const DefaultDelay = time.Second

// SaveFunc persists a full snapshot of the buffer.
type SaveFunc func(ctx context.Context, content string) error

type Scheduler struct {
	save     SaveFunc
	delay    time.Duration
	clock    Clock
	onStatus func(Status)
	log      *slog.Logger

	mu       sync.Mutex
	idle     *sync.Cond
	state    State
	status   Status
	buffer   string
	gen      uint64
	timer    Timer
	inflight int
	closed   bool
}

type Option func(*Scheduler)

func WithDelay(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.delay = d
		}
	}
}

func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithStatus registers a callback for status changes. It is called
// outside the scheduler lock, possibly from a timer goroutine.
func WithStatus(f func(Status)) Option {
	return func(s *Scheduler) { s.onStatus = f }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Scheduler) { s.log = log }
}

func New(save SaveFunc, opts ...Option) *Scheduler {
	s := &Scheduler{
		save:  save,
		delay: DefaultDelay,
		clock: realClock{},
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(slog.String("component", "autosave"))
	s.idle = sync.NewCond(&s.mu)

	return s
}

// Edit records the new buffer and restarts the quiescence window.
// A write already in flight is left alone.
func (s *Scheduler) Edit(content string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	s.buffer = content
	s.gen++
	gen := s.gen

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = s.clock.AfterFunc(s.delay, func() { s.fire(gen) })
	s.state = PendingSave
	st := s.setStatus(StatusTyping, nil)
	s.mu.Unlock()

	s.notify(st)
}

// fire runs when the window for edit gen elapses. A timer that could not
// be stopped in time finds a newer generation and does nothing.
func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.gen || s.state != PendingSave {
		s.mu.Unlock()
		return
	}

	content := s.begin()
	st := s.setStatus(StatusSaving, nil)
	s.mu.Unlock()

	s.notify(st)

	go func() {
		_ = s.run(context.Background(), gen, content)
	}()
}

// Flush saves a pending buffer right away and waits for every write in
// flight. Used before switching dates and on exit.
func (s *Scheduler) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.closed || s.state != PendingSave {
		s.waitLocked()
		s.mu.Unlock()
		return nil
	}

	if s.timer != nil {
		s.timer.Stop()
	}
	gen := s.gen
	content := s.begin()
	st := s.setStatus(StatusSaving, nil)
	s.mu.Unlock()

	s.notify(st)

	err := s.run(ctx, gen, content)

	s.mu.Lock()
	s.waitLocked()
	s.mu.Unlock()

	return err
}

// Close stops the timer and waits for writes in flight. Unsaved edits
// are dropped; call Flush first to keep them.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.state == PendingSave {
		s.state = Idle
	}
	s.waitLocked()
	s.mu.Unlock()
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// begin moves to Saving and returns the snapshot to write. Caller holds mu.
func (s *Scheduler) begin() string {
	s.state = Saving
	s.timer = nil
	s.inflight++
	return s.buffer
}

func (s *Scheduler) run(ctx context.Context, gen uint64, content string) error {
	err := s.save(ctx, content)

	s.mu.Lock()
	// новая правка уже взвела таймер: остаемся в PendingSave
	if s.state == Saving && s.gen == gen {
		s.state = Idle
	}

	var st Status
	if err != nil {
		s.log.Warn("save failed", slog.String("error", err.Error()))
		st = s.setStatus(StatusError, err)
	} else {
		st = s.setStatus(StatusSaved, nil)
	}
	s.mu.Unlock()

	s.notify(st)

	// ожидающие Flush и Close видят уже доставленный статус
	s.mu.Lock()
	s.inflight--
	s.idle.Broadcast()
	s.mu.Unlock()

	return err
}

func (s *Scheduler) waitLocked() {
	for s.inflight > 0 {
		s.idle.Wait()
	}
}

func (s *Scheduler) setStatus(kind StatusKind, err error) Status {
	s.status = Status{Kind: kind, At: s.clock.Now(), Err: err}
	return s.status
}

func (s *Scheduler) notify(st Status) {
	if s.onStatus != nil {
		s.onStatus(st)
	}
}
