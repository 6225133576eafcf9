// Package widget holds the small notebook side panels (tasks, notes,
// goals). Each is an ordered in-memory list with explicit Load/Save
// against a key-value store and a pure render function.
package widget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys the lists are stored under.
const (
	TasksKey = "notebook_tasks"
	NotesKey = "notebook_notes"
	GoalsKey = "notebook_goals"
)

var (
	ErrCorrupt  = errors.New("widget data is corrupt")
	ErrNotFound = errors.New("widget item not found")
	ErrEmpty    = errors.New("title is required")
)

// KV is the persistence capability the widgets need.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// List is an ordered collection persisted as one JSON array.
type List[T any] struct {
	kv    KV
	key   string
	items []T
}

func NewList[T any](kv KV, key string) *List[T] {
	return &List[T]{kv: kv, key: key}
}

// Load replaces the items with the stored ones. On error the list is left empty.
func (l *List[T]) Load(ctx context.Context) error {
	l.items = nil

	raw, ok, err := l.kv.Get(ctx, l.key)
	if err != nil {
		return fmt.Errorf("load %s: %w", l.key, err)
	}
	if !ok || len(raw) == 0 {
		return nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCorrupt, l.key, err)
	}
	l.items = items

	return nil
}

func (l *List[T]) Save(ctx context.Context) error {
	items := l.items
	if items == nil {
		items = []T{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", l.key, err)
	}

	if err := l.kv.Set(ctx, l.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", l.key, err)
	}

	return nil
}

// Items returns a copy in display order.
func (l *List[T]) Items() []T {
	return append([]T(nil), l.items...)
}

func (l *List[T]) Len() int {
	return len(l.items)
}

func (l *List[T]) append(item T) {
	l.items = append(l.items, item)
}

func (l *List[T]) at(i int) (*T, error) {
	if i < 0 || i >= len(l.items) {
		return nil, fmt.Errorf("%w: #%d", ErrNotFound, i+1)
	}
	return &l.items[i], nil
}

func (l *List[T]) remove(i int) error {
	if _, err := l.at(i); err != nil {
		return err
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return nil
}
