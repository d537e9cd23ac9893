package jot

import (
	"errors"
	"fmt"
)

// Classification sentinels for parse failures.  Every error returned by
// Decode and Unmarshal matches exactly one of these under errors.Is.
//
// ErrIncomplete means the input ended before the value did; extending the
// input could still yield a valid value.  ErrMalformed means the input can
// never become valid no matter what bytes follow.
var (
	ErrIncomplete = errors.New("incomplete JSON input")
	ErrMalformed  = errors.New("malformed JSON input")
)

// ParseError records a JSON parsing error.  It can include a small excerpt
// of input text at the point of error.  Offset is the byte position where
// parsing failed; for incomplete input it is the input length.  ParseError
// unwraps to ErrIncomplete or ErrMalformed.
type ParseError struct {
	Offset int64
	Msg    string

	kind error
}

func (pe *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", pe.kind, pe.Offset, pe.Msg)
}

func (pe *ParseError) Unwrap() error { return pe.kind }

// excerpt formats up to 20 bytes of input following off for inclusion in
// error messages.
func excerpt(in []byte, off int) string {
	if off < 0 || off >= len(in) {
		return ""
	}
	end := off + 20
	ellipsis := ""
	if end > len(in) {
		end = len(in)
	} else if end < len(in) {
		ellipsis = "..."
	}
	return fmt.Sprintf(" (at %q%s)", in[off:end], ellipsis)
}
