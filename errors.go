package rasterkit

import "errors"

// Kind tags a RasterError with one of the three error kinds the core
// needs: bad input, a malformed shader program, or exhausted memory.
type Kind int

const (
	InvalidArgument Kind = iota
	InvalidShader
	OutOfMemory
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case InvalidShader:
		return "InvalidShader"
	case OutOfMemory:
		return "OutOfMemory"
	default:
		return "Unknown"
	}
}

// ErrInvalidArgument, ErrInvalidShader and ErrOutOfMemory are sentinel
// errors every RasterError of the matching Kind wraps, so callers can
// test the kind with errors.Is without importing this package's Kind
// type.
var (
	ErrInvalidArgument = errors.New("rasterkit: invalid argument")
	ErrInvalidShader   = errors.New("rasterkit: invalid shader")
	ErrOutOfMemory     = errors.New("rasterkit: out of memory")
)

// RasterError is the concrete error type every fallible entry point in
// this package returns. It carries a Kind plus a human-readable reason
// and wraps the matching sentinel so errors.Is(err, ErrInvalidShader)
// works regardless of the message text.
type RasterError struct {
	Kind   Kind
	Reason string
}

func (e *RasterError) Error() string {
	return "rasterkit: " + e.Kind.String() + ": " + e.Reason
}

func (e *RasterError) Unwrap() error {
	switch e.Kind {
	case InvalidShader:
		return ErrInvalidShader
	case OutOfMemory:
		return ErrOutOfMemory
	default:
		return ErrInvalidArgument
	}
}

func newErr(kind Kind, reason string) error {
	return &RasterError{Kind: kind, Reason: reason}
}

func invalidArg(reason string) error { return newErr(InvalidArgument, reason) }
func invalidShader(reason string) error { return newErr(InvalidShader, reason) }
func outOfMemory(reason string) error { return newErr(OutOfMemory, reason) }
