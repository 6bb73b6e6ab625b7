package line

import "github.com/pkg/errors"

// ErrNonASCII is returned when the stream contains a byte above 127.
var ErrNonASCII = errors.New("non-ascii byte in stream")
