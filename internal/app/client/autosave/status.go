package autosave

import (
	"fmt"
	"time"
)

type State int

const (
	Idle State = iota
	PendingSave
	Saving
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PendingSave:
		return "pending"
	case Saving:
		return "saving"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusTyping
	StatusSaving
	StatusSaved
	StatusError
)

// Status is what the editor shows next to the buffer.
type Status struct {
	Kind StatusKind
	At   time.Time
	Err  error
}

func (s Status) String() string {
	switch s.Kind {
	case StatusTyping:
		return "Typing..."
	case StatusSaving:
		return "Saving..."
	case StatusSaved:
		return "Saved at " + s.At.Format(time.Kitchen)
	case StatusError:
		return "Error saving at " + s.At.Format(time.Kitchen)
	}
	return ""
}
