package protocol

import "github.com/pkg/errors"

// ErrFormat is returned when a line does not fit the protocol in the machine's current state.
var ErrFormat = errors.New("protocol format error")
