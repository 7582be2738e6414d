package tokenizer

import (
	"fmt"

	"github.com/vvka-141/pgm/pkg/pgm"
)

// ParseError reports a malformed dump with the location where scanning
// gave up. It unwraps to pgm.ErrParseFailed so callers can classify it
// without importing this package's types.
type ParseError struct {
	// Line is the 1-based line of the token that triggered the error,
	// or the last line of input when the error is premature EOF.
	Line int

	// Object is the name of the object being captured, when known.
	Object string

	// Message describes what was expected.
	Message string
}

func (e *ParseError) Error() string {
	if e.Object != "" {
		return fmt.Sprintf("parse error at line %d while extracting %q: %s", e.Line, e.Object, e.Message)
	}
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Message)
}

func (e *ParseError) Unwrap() error {
	return pgm.ErrParseFailed
}
