package server

import "github.com/pkg/errors"

// ErrInvalidMaxSessions is returned when the session cap is negative.
var ErrInvalidMaxSessions = errors.New("max sessions must not be negative")
