package tokenizer

import (
	"strings"

	"github.com/vvka-141/pgm/pkg/pgm"
)

// Result is a tokenized dump: extracted objects plus the residual text
// that becomes the bootstrap migration.
type Result struct {
	Objects   []Object
	Bootstrap string
}

// Tokenizer splits a schema-only dump into function, trigger, and view
// artifacts plus a residual bootstrap migration.
type Tokenizer struct {
	logger pgm.Logger
}

// NewTokenizer creates a tokenizer. Panics if logger is nil.
func NewTokenizer(logger pgm.Logger) *Tokenizer {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Tokenizer{logger: logger}
}

// Tokenize scans dump text and extracts every CREATE FUNCTION, CREATE
// VIEW, and CREATE MATERIALIZED VIEW statement. Functions returning
// TRIGGER are classified as triggers. Everything else, minus dump-tool
// noise, becomes the bootstrap residual. When two objects in the same
// category share a name the later definition wins.
func (t *Tokenizer) Tokenize(dump string) (*Result, error) {
	tokens := Split(dump)

	var residual strings.Builder
	var objects []Object
	index := make(map[string]int)

	state := NewState()
	lastLine := 1
	for _, tok := range tokens {
		lastLine = tok.Line
		next, out, err := state.Step(tok)
		if err != nil {
			return nil, err
		}
		state = next
		residual.WriteString(out.Residual)
		if out.Object != nil {
			key := out.Object.Category.String() + "/" + out.Object.Name
			if prev, ok := index[key]; ok {
				t.logger.Error("Duplicate %s %q: keeping the later definition", out.Object.Category, out.Object.Name)
				objects[prev] = *out.Object
				continue
			}
			index[key] = len(objects)
			objects = append(objects, *out.Object)
		}
	}

	tail, err := state.Finish(lastLine)
	if err != nil {
		return nil, err
	}
	residual.WriteString(tail)

	return &Result{
		Objects:   objects,
		Bootstrap: CleanResidual(residual.String()),
	}, nil
}

// Dump-tool noise dropped from the residual. The search-path reset is
// invalid inside a DO block and the message-level directive would
// silence the apply notices.
var noiseLines = map[string]bool{
	"SELECT pg_catalog.set_config('search_path', '', false);": true,
	"SET client_min_messages = warning;":                      true,
}

// CleanResidual strips comment lines, known dump-tool noise, and blank
// lines from residual text, rejoining with newlines.
func CleanResidual(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") || noiseLines[trimmed] {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
