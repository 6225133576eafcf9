package autosave

import "time"

// Timer is the handle of an armed callback.
type Timer interface {
	Stop() bool
}

// Clock abstracts time so the debounce can be driven from tests.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (realClock) Now() time.Time {
	return time.Now()
}
