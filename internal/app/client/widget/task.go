package widget

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(s)); f {
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	case "":
		return FilterAll, nil
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

func (f Filter) match(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	}
	return true
}

type Tasks struct {
	*List[Task]
	newID func() string
}

func NewTasks(kv KV) *Tasks {
	return &Tasks{
		List:  NewList[Task](kv, TasksKey),
		newID: func() string { return "task-" + uuid.NewString() },
	}
}

// Add appends a task. Blank text is ignored and reported as ErrEmpty.
func (t *Tasks) Add(text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmpty
	}

	task := Task{ID: t.newID(), Text: text}
	t.append(task)

	return task, nil
}

func (t *Tasks) Toggle(id string) (Task, error) {
	i := t.index(id)
	task, err := t.at(i)
	if err != nil {
		return Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	task.Completed = !task.Completed

	return *task, nil
}

func (t *Tasks) Remove(id string) error {
	if err := t.remove(t.index(id)); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (t *Tasks) Filter(f Filter) []Task {
	var out []Task
	for _, task := range t.items {
		if f.match(task) {
			out = append(out, task)
		}
	}
	return out
}

// index accepts a full ID or an unambiguous prefix of one.
func (t *Tasks) index(id string) int {
	if i := slices.IndexFunc(t.items, func(task Task) bool { return task.ID == id }); i >= 0 {
		return i
	}

	found := -1
	for i, task := range t.items {
		if id != "" && strings.HasPrefix(task.ID, id) {
			if found >= 0 {
				return -1
			}
			found = i
		}
	}
	return found
}
