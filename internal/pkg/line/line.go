// Package line implements the newline-delimited, ASCII-only framing used on the wire.
package line

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Terminator ends every line on the wire.
const Terminator byte = '\n'

// MaxASCII is the largest byte value allowed on the wire.
const MaxASCII byte = 127

// ValidASCII reports ErrNonASCII for any byte above MaxASCII.
func ValidASCII(b byte) error {
	if b > MaxASCII {
		return errors.Wrapf(ErrNonASCII, "byte 0x%02x", b)
	}
	return nil
}

// Reader decodes lines from a byte stream.
type Reader struct {
	r *bufio.Reader
}

// NewReader creates a new Reader on top of r.
func NewReader(r io.Reader) *Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return &Reader{r: br}
	}
	return &Reader{r: bufio.NewReader(r)}
}

// ReadLine reads the next line, excluding the terminating LF.
// A carriage return before the LF is kept as part of the line.
//
// It returns io.EOF if the stream ends before any byte of the line is read,
// and io.ErrUnexpectedEOF if it ends part way through a line.
func (r *Reader) ReadLine() (string, error) {
	var sb strings.Builder
	for {
		b, err := r.r.ReadByte()
		if err == io.EOF {
			if sb.Len() == 0 {
				return "", io.EOF
			}
			return "", io.ErrUnexpectedEOF
		}
		if err != nil {
			return "", errors.Wrap(err, "read byte failed")
		}
		if b == Terminator {
			return sb.String(), nil
		}
		if err := ValidASCII(b); err != nil {
			return "", err
		}
		sb.WriteByte(b)
	}
}

// Writer encodes lines onto a byte stream.
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a new Writer on top of w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteLine writes s followed by the terminator and flushes.
func (w *Writer) WriteLine(s string) error {
	if _, err := w.w.WriteString(s); err != nil {
		return errors.Wrap(err, "write line failed")
	}
	if err := w.w.WriteByte(Terminator); err != nil {
		return errors.Wrap(err, "write terminator failed")
	}
	return errors.Wrap(w.w.Flush(), "flush line failed")
}
