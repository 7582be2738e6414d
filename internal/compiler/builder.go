package compiler

import (
	"fmt"
	"strings"
)

// Stage identifies where a fragment sits in the compiled script. The
// assembler appends fragments in stage order; the order is part of the
// script's correctness contract, not cosmetic.
type Stage int

const (
	// StagePrologue opens the transactional block and sets session
	// settings for the run.
	StagePrologue Stage = iota
	// StageTracking creates the tracking tables if absent.
	StageTracking
	// StageBootstrap holds the bootstrap migration.
	StageBootstrap
	// StageObjectsFirstPass emits functions and triggers while body
	// checking is off, so forward references do not fail.
	StageObjectsFirstPass
	// StageMigrations holds all non-bootstrap migrations in filename
	// order.
	StageMigrations
	// StageViews emits views, hash bookkeeping included.
	StageViews
	// StageRecheck turns body checking back on.
	StageRecheck
	// StageObjectsSecondPass re-emits functions and triggers for
	// validation and records their hashes.
	StageObjectsSecondPass
	// StageEpilogue closes the block.
	StageEpilogue
)

// GuardKind selects how a fragment's body is gated at execution time.
type GuardKind int

const (
	// GuardNone emits the body verbatim.
	GuardNone GuardKind = iota
	// GuardHash wraps the body in a hash-comparison branch against a
	// tracking table.
	GuardHash
	// GuardExistence wraps the body in a presence check against the
	// migration ledger.
	GuardExistence
	// GuardUpsert emits bookkeeping only: the body never runs.
	GuardUpsert
)

// Fragment is one typed piece of the compiled script.
type Fragment struct {
	Stage  Stage
	Guard  GuardKind
	Table  string
	Name   string
	Hash   string
	Source string
	Body   string
	// Bookkeeping selects whether the apply branch records the hash.
	// Only meaningful for GuardHash.
	Bookkeeping bool
}

// Builder accumulates fragments and renders them into SQL text. Tests
// assert on the fragment list instead of matching rendered substrings.
type Builder struct {
	fragments []Fragment
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a fragment.
func (b *Builder) Add(f Fragment) {
	b.fragments = append(b.fragments, f)
}

// Fragments returns the accumulated fragments in insertion order.
func (b *Builder) Fragments() []Fragment {
	return b.fragments
}

// quote escapes a value for inclusion in a SQL string literal.
func quote(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}

// Render produces the script text. Blank lines are always stripped;
// comment lines are stripped too when minify is set, keeping the
// dry-run preview annotated while real executions stay compact.
func (b *Builder) Render(minify bool) string {
	var sb strings.Builder
	for _, f := range b.fragments {
		sb.WriteString(f.render())
	}
	return stripLines(sb.String(), minify)
}

func (f Fragment) render() string {
	switch f.Guard {
	case GuardHash:
		return f.renderHashGuard()
	case GuardExistence:
		return f.renderExistenceGuard()
	case GuardUpsert:
		return f.renderUpsert()
	default:
		return f.Body
	}
}

func (f Fragment) renderHashGuard() string {
	var bookkeeping string
	if f.Bookkeeping {
		bookkeeping = fmt.Sprintf(
			"    INSERT INTO %s (name, hash) VALUES ('%s', '%s') ON CONFLICT (name) DO UPDATE SET hash = EXCLUDED.hash, applied_at = CURRENT_TIMESTAMP;\n"+
				"    RAISE NOTICE '✅ Applied %s';\n"+
				"ELSE\n"+
				"    RAISE NOTICE '- Skipped %s (no changes)';\n",
			f.Table, quote(f.Name), f.Hash, quote(f.Source), quote(f.Source))
	}
	return fmt.Sprintf(
		"-- RUN %s --\n"+
			"IF (SELECT hash FROM %s WHERE name = '%s') IS DISTINCT FROM '%s' THEN\n"+
			"%s\n"+
			"%s"+
			"END IF;\n"+
			"-- DONE %s --\n",
		f.Source, f.Table, quote(f.Name), f.Hash, f.Body, bookkeeping, f.Source)
}

func (f Fragment) renderExistenceGuard() string {
	return fmt.Sprintf(
		"-- RUN %s --\n"+
			"IF NOT EXISTS (SELECT 1 FROM %s WHERE name = '%s') THEN\n"+
			"%s\n"+
			"INSERT INTO %s (name) VALUES ('%s');\n"+
			"RAISE NOTICE '✅ Applied migration: %s';\n"+
			"ELSE\n"+
			"RAISE NOTICE '- Skipped migration: %s (already applied)';\n"+
			"END IF;\n"+
			"-- DONE %s --\n",
		f.Source, f.Table, quote(f.Name), f.Body, f.Table, quote(f.Name), quote(f.Name), quote(f.Name), f.Source)
}

func (f Fragment) renderUpsert() string {
	if f.Hash == "" {
		return fmt.Sprintf(
			"-- Fake apply migration '%s'\n"+
				"INSERT INTO %s (name) VALUES ('%s') ON CONFLICT (name) DO NOTHING;\n"+
				"RAISE NOTICE '✅ Fake applied migration: %s';\n",
			f.Name, f.Table, quote(f.Name), quote(f.Name))
	}
	return fmt.Sprintf(
		"-- Fake apply %s '%s'\n"+
			"INSERT INTO %s (name, hash) VALUES ('%s', '%s') ON CONFLICT (name) DO UPDATE SET hash = EXCLUDED.hash, applied_at = CURRENT_TIMESTAMP;\n"+
			"RAISE NOTICE '✅ Fake applied: %s - %s';\n",
		f.Table, f.Name, f.Table, quote(f.Name), f.Hash, f.Table, quote(f.Name))
}

// stripLines removes blank lines, plus comment lines when minify is
// set.
func stripLines(text string, minify bool) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if minify && strings.HasPrefix(line, "--") {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
