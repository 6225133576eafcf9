package session

import "errors"

var (
	ErrNoToken      = errors.New("no session token provided")
	ErrInvalidToken = errors.New("invalid session token")
	ErrInvalidName  = errors.New("invalid username")
)
