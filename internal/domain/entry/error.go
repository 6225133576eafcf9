package entry

import (
	"errors"
)

var (
	ErrMissingContent = errors.New("content is required")
	ErrInvalidDateKey = errors.New("invalid date key")
	ErrInvalidOwner   = errors.New("invalid owner")
	ErrStorage        = errors.New("entry storage failure")
)
