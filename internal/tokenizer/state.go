package tokenizer

import (
	"strings"

	"github.com/vvka-141/pgm/pkg/pgm"
)

// Object is one extracted schema object: the statement text exactly as
// it appeared in the dump, with its CREATE prefix normalized to a
// re-runnable form.
type Object struct {
	Category pgm.ObjectCategory
	Name     string
	Body     string
}

type mode int

const (
	// modeScanning looks for the start of an extractable statement.
	modeScanning mode = iota
	modeAfterCreate
	modeAfterOr
	modeAfterMaterialized
	modeExpectName
	modeSeekReturns
	modeAfterReturns
	modeSeekDelimiter
	modeCaptureBody
	modeCaptureTail
	modeCaptureView
)

// State is the scan state between tokens. It is a plain value: Step
// returns a new State and never mutates the receiver, so sequences of
// transitions can be tested without any I/O.
type State struct {
	mode     mode
	category pgm.ObjectCategory
	name     string
	// delimiter is the recorded dollar-quote tag, including both "$"s.
	delimiter string
	// body accumulates the statement text being captured.
	body string
	// pending holds tokens consumed while deciding whether a CREATE is
	// extractable; flushed to the residual when it is not.
	pending string
	// line of the token that started the current capture.
	startLine int
}

// StepResult is what one transition produced: residual text that
// belongs to the bootstrap migration, and a completed object when the
// token closed a capture.
type StepResult struct {
	Residual string
	Object   *Object
}

// NewState returns the initial scanning state.
func NewState() State {
	return State{mode: modeScanning}
}

// delimiterTag reports whether text is a standalone dollar-quote
// delimiter: "$", an optional identifier tag, "$".
func delimiterTag(text string) bool {
	if len(text) < 2 || text[0] != '$' || text[len(text)-1] != '$' {
		return false
	}
	for _, r := range text[1 : len(text)-1] {
		ok := r == '_' || r == '$' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			return false
		}
	}
	return true
}

// objectName extracts the object name from a name-block token: the
// substring before the first "(" when present.
func objectName(text string) string {
	if idx := strings.IndexByte(text, '('); idx >= 0 {
		return text[:idx]
	}
	return text
}

func endsStatement(text string) bool {
	return strings.HasSuffix(text, ";")
}

// Step consumes one token and returns the next state plus whatever the
// transition emitted. A returned error means the dump is malformed.
func (s State) Step(tok Token) (State, StepResult, error) {
	switch s.mode {
	case modeScanning:
		if strings.EqualFold(tok.Text, "CREATE") {
			s.mode = modeAfterCreate
			s.pending = tok.String()
			s.startLine = tok.Line
			return s, StepResult{}, nil
		}
		return s, StepResult{Residual: tok.String()}, nil

	case modeAfterCreate:
		switch {
		case strings.EqualFold(tok.Text, "FUNCTION"):
			s.mode = modeExpectName
			s.category = pgm.CategoryFunction
			s.body = "CREATE OR REPLACE FUNCTION "
			s.pending = ""
			return s, StepResult{}, nil
		case strings.EqualFold(tok.Text, "VIEW"):
			s.mode = modeExpectName
			s.category = pgm.CategoryView
			s.body = "CREATE OR REPLACE VIEW "
			s.pending = ""
			return s, StepResult{}, nil
		case strings.EqualFold(tok.Text, "OR"):
			// "CREATE OR REPLACE" in the input; the normalized prefix
			// already carries it.
			s.mode = modeAfterOr
			s.pending += tok.String()
			return s, StepResult{}, nil
		case strings.EqualFold(tok.Text, "MATERIALIZED"):
			s.mode = modeAfterMaterialized
			s.pending += tok.String()
			return s, StepResult{}, nil
		case strings.EqualFold(tok.Text, "CREATE"):
			// "CREATE" ends one non-extractable statement and starts a
			// fresh candidate.
			flushed := s.pending
			s.pending = tok.String()
			s.startLine = tok.Line
			return s, StepResult{Residual: flushed}, nil
		default:
			flushed := s.pending + tok.String()
			s = State{mode: modeScanning}
			return s, StepResult{Residual: flushed}, nil
		}

	case modeAfterOr:
		if strings.EqualFold(tok.Text, "REPLACE") {
			s.mode = modeAfterCreate
			s.pending += tok.String()
			return s, StepResult{}, nil
		}
		flushed := s.pending + tok.String()
		s = State{mode: modeScanning}
		return s, StepResult{Residual: flushed}, nil

	case modeAfterMaterialized:
		if strings.EqualFold(tok.Text, "VIEW") {
			s.mode = modeExpectName
			s.category = pgm.CategoryView
			s.body = "CREATE MATERIALIZED VIEW "
			s.pending = ""
			return s, StepResult{}, nil
		}
		flushed := s.pending + tok.String()
		s = State{mode: modeScanning}
		return s, StepResult{Residual: flushed}, nil

	case modeExpectName:
		s.name = objectName(tok.Text)
		s.body += tok.String()
		if s.category == pgm.CategoryView {
			s.mode = modeCaptureView
			if endsStatement(tok.Text) {
				return s.complete()
			}
			return s, StepResult{}, nil
		}
		s.mode = modeSeekReturns
		return s, StepResult{}, nil

	case modeSeekReturns:
		s.body += tok.String()
		if strings.EqualFold(tok.Text, "RETURNS") {
			s.mode = modeAfterReturns
		}
		return s, StepResult{}, nil

	case modeAfterReturns:
		if strings.EqualFold(strings.TrimSuffix(tok.Text, ";"), "TRIGGER") {
			s.category = pgm.CategoryTrigger
		}
		s.body += tok.String()
		s.mode = modeSeekDelimiter
		return s, StepResult{}, nil

	case modeSeekDelimiter:
		s.body += tok.String()
		if delimiterTag(tok.Text) {
			s.delimiter = tok.Text
			s.mode = modeCaptureBody
		}
		return s, StepResult{}, nil

	case modeCaptureBody:
		s.body += tok.String()
		if strings.Contains(tok.Text, s.delimiter) {
			if endsStatement(tok.Text) {
				return s.complete()
			}
			// Statement tail, e.g. a trailing LANGUAGE clause, runs to
			// the terminator.
			s.mode = modeCaptureTail
		}
		return s, StepResult{}, nil

	case modeCaptureTail:
		s.body += tok.String()
		if endsStatement(tok.Text) {
			return s.complete()
		}
		return s, StepResult{}, nil

	case modeCaptureView:
		s.body += tok.String()
		if endsStatement(tok.Text) {
			return s.complete()
		}
		return s, StepResult{}, nil
	}

	return s, StepResult{}, &ParseError{Line: tok.Line, Message: "invalid scan state"}
}

func (s State) complete() (State, StepResult, error) {
	obj := &Object{
		Category: s.category,
		Name:     s.name,
		Body:     strings.TrimRight(s.body, " \t\r\n") + "\n",
	}
	return State{mode: modeScanning}, StepResult{Object: obj}, nil
}

// Finish validates the state after the last token and returns any
// residual text still pending. An unterminated capture is a parse
// error rather than silent truncation.
func (s State) Finish(lastLine int) (string, error) {
	switch s.mode {
	case modeScanning:
		return "", nil
	case modeAfterCreate, modeAfterOr, modeAfterMaterialized:
		return s.pending, nil
	case modeExpectName:
		return "", &ParseError{Line: lastLine, Message: "CREATE statement ends before the object name"}
	case modeSeekReturns:
		return "", &ParseError{Line: lastLine, Object: s.name, Message: "expected RETURNS before end of input"}
	case modeAfterReturns, modeSeekDelimiter:
		return "", &ParseError{Line: lastLine, Object: s.name, Message: "expected a dollar-quoted body before end of input"}
	case modeCaptureBody:
		return "", &ParseError{Line: lastLine, Object: s.name, Message: "closing dollar-quote " + s.delimiter + " not found before end of input"}
	case modeCaptureTail, modeCaptureView:
		return "", &ParseError{Line: lastLine, Object: s.name, Message: "statement terminator not found before end of input"}
	}
	return "", &ParseError{Line: lastLine, Message: "invalid scan state"}
}
