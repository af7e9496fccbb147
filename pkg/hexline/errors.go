package hexline

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHex is wrapped by a DecodeError when a token holds a non-hex character.
	ErrInvalidHex = errors.New("invalid hex digit")
	// ErrOddLength is wrapped by a DecodeError when strict mode rejects a single trailing digit.
	ErrOddLength = errors.New("odd-length hex payload")
)

// DecodeError reports a payload token that could not be turned into a byte.
type DecodeError struct {
	Path   string // input file, empty when decoding a bare reader
	Line   int    // 1-based line number
	Column int    // 1-based character position of the offending character
	Token  string
	Err    error
}

func (e *DecodeError) Error() string {
	loc := fmt.Sprintf("line %d, column %d", e.Line, e.Column)
	if e.Path != "" {
		loc = fmt.Sprintf("%s: %s", e.Path, loc)
	}
	return fmt.Sprintf("%s: %v in token %q", loc, e.Err, e.Token)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ResourceError reports an input that could not be read or an output that could not be written.
type ResourceError struct {
	Op   string // "open", "read" or "write"
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to %s input: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}
