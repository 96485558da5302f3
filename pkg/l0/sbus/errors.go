package sbus

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady indicates a full frame has not been accumulated yet.
	ErrNotReady = errors.New("not ready")
	// ErrHeaderMismatch indicates the accumulated frame doesn't start with 0x0F.
	// The accumulated bytes are discarded.
	ErrHeaderMismatch = errors.New("packet header does not match")
	// ErrFooterMismatch indicates the accumulated frame doesn't end with 0x00.
	// The accumulated bytes are discarded.
	ErrFooterMismatch = errors.New("packet footer does not match")
	// ErrFrameSize indicates a buffer is not exactly one frame long.
	ErrFrameSize = errors.New("invalid frame size")
)

// ReadErrorKind classifies hardware errors reported by a serial source.
type ReadErrorKind int

// Hardware read error kinds.
const (
	ReadOverrun ReadErrorKind = iota
	ReadBreak
	ReadParity
	ReadFraming
)

// String implements fmt.Stringer.
func (k ReadErrorKind) String() string {
	switch k {
	case ReadOverrun:
		return "overrun"
	case ReadBreak:
		return "break"
	case ReadParity:
		return "parity"
	case ReadFraming:
		return "framing"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// ReadError is returned by a Source when the UART reports a line error.
// It is never fatal: the bytes of that read are considered lost.
type ReadError struct {
	Kind ReadErrorKind
}

// Error implements error.
func (e *ReadError) Error() string {
	return "read error: " + e.Kind.String()
}

// IsReadError checks if err is (or wraps) a hardware ReadError.
func IsReadError(err error) bool {
	var re *ReadError
	return errors.As(err, &re)
}
