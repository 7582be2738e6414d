package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_RenderHashGuard_Bookkeeping(t *testing.T) {
	b := NewBuilder()
	b.Add(Fragment{
		Guard:       GuardHash,
		Table:       "pgm_function",
		Name:        "add",
		Hash:        "abc123",
		Source:      "postgres/functions/add",
		Body:        "CREATE OR REPLACE FUNCTION add() RETURNS integer AS $$ SELECT 1; $$ LANGUAGE sql;",
		Bookkeeping: true,
	})

	out := b.Render(false)
	assert.Contains(t, out, "IF (SELECT hash FROM pgm_function WHERE name = 'add') IS DISTINCT FROM 'abc123' THEN")
	assert.Contains(t, out, "INSERT INTO pgm_function (name, hash) VALUES ('add', 'abc123') ON CONFLICT (name) DO UPDATE SET hash = EXCLUDED.hash, applied_at = CURRENT_TIMESTAMP;")
	assert.Contains(t, out, "RAISE NOTICE '✅ Applied postgres/functions/add';")
	assert.Contains(t, out, "ELSE")
	assert.Contains(t, out, "RAISE NOTICE '- Skipped postgres/functions/add (no changes)';")
	assert.Contains(t, out, "-- RUN postgres/functions/add --")
	assert.Contains(t, out, "-- DONE postgres/functions/add --")
}

func TestBuilder_RenderHashGuard_NoBookkeeping(t *testing.T) {
	b := NewBuilder()
	b.Add(Fragment{
		Guard:  GuardHash,
		Table:  "pgm_trigger",
		Name:   "touch",
		Hash:   "def456",
		Source: "postgres/triggers/touch",
		Body:   "CREATE OR REPLACE FUNCTION touch() RETURNS trigger AS $$ BEGIN RETURN NEW; END; $$ LANGUAGE plpgsql;",
	})

	out := b.Render(false)
	assert.Contains(t, out, "IS DISTINCT FROM 'def456' THEN")
	assert.NotContains(t, out, "INSERT INTO")
	assert.NotContains(t, out, "ELSE")
}

func TestBuilder_RenderExistenceGuard(t *testing.T) {
	b := NewBuilder()
	b.Add(Fragment{
		Guard:  GuardExistence,
		Table:  "pgm_migration",
		Name:   "00001",
		Source: "00001.sql",
		Body:   "ALTER TABLE accounts ADD COLUMN name text;",
	})

	out := b.Render(false)
	assert.Contains(t, out, "IF NOT EXISTS (SELECT 1 FROM pgm_migration WHERE name = '00001') THEN")
	assert.Contains(t, out, "ALTER TABLE accounts ADD COLUMN name text;")
	assert.Contains(t, out, "INSERT INTO pgm_migration (name) VALUES ('00001');")
	assert.Contains(t, out, "RAISE NOTICE '✅ Applied migration: 00001';")
	assert.Contains(t, out, "RAISE NOTICE '- Skipped migration: 00001 (already applied)';")
	assert.Contains(t, out, "-- RUN 00001.sql --")
}

func TestBuilder_RenderUpsert_ObjectAndMigration(t *testing.T) {
	b := NewBuilder()
	b.Add(Fragment{Guard: GuardUpsert, Table: "pgm_view", Name: "v", Hash: "beef"})
	b.Add(Fragment{Guard: GuardUpsert, Table: "pgm_migration", Name: "00001"})

	out := b.Render(false)
	assert.Contains(t, out, "INSERT INTO pgm_view (name, hash) VALUES ('v', 'beef') ON CONFLICT (name) DO UPDATE SET hash = EXCLUDED.hash, applied_at = CURRENT_TIMESTAMP;")
	assert.Contains(t, out, "RAISE NOTICE '✅ Fake applied: pgm_view - v';")
	assert.Contains(t, out, "INSERT INTO pgm_migration (name) VALUES ('00001') ON CONFLICT (name) DO NOTHING;")
	assert.Contains(t, out, "RAISE NOTICE '✅ Fake applied migration: 00001';")
}

func TestBuilder_Render_StripsBlankLines(t *testing.T) {
	b := NewBuilder()
	b.Add(Fragment{Body: "line one\n\n\nline two\n   \nline three\n"})

	out := b.Render(false)
	assert.Equal(t, "line one\nline two\nline three", out)
}

func TestBuilder_Render_MinifyStripsComments(t *testing.T) {
	b := NewBuilder()
	b.Add(Fragment{
		Guard:  GuardExistence,
		Table:  "pgm_migration",
		Name:   "00001",
		Source: "00001.sql",
		Body:   "SELECT 1;",
	})

	preview := b.Render(false)
	assert.Contains(t, preview, "-- RUN 00001.sql --")

	minified := b.Render(true)
	assert.NotContains(t, minified, "-- RUN")
	for _, line := range strings.Split(minified, "\n") {
		assert.NotEmpty(t, strings.TrimSpace(line))
		assert.False(t, strings.HasPrefix(line, "--"))
	}
}

func TestBuilder_QuotesSingleQuotesInNames(t *testing.T) {
	b := NewBuilder()
	b.Add(Fragment{
		Guard:  GuardExistence,
		Table:  "pgm_migration",
		Name:   "00001_o'brien",
		Source: "00001_o'brien.sql",
		Body:   "SELECT 1;",
	})

	out := b.Render(false)
	assert.Contains(t, out, "name = '00001_o''brien'")
}

func TestBuilder_FragmentsInsertionOrder(t *testing.T) {
	b := NewBuilder()
	b.Add(Fragment{Stage: StagePrologue, Body: "a"})
	b.Add(Fragment{Stage: StageEpilogue, Body: "b"})

	fragments := b.Fragments()
	require.Len(t, fragments, 2)
	assert.Equal(t, StagePrologue, fragments[0].Stage)
	assert.Equal(t, StageEpilogue, fragments[1].Stage)
}
