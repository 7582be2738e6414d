package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/pgm/internal/files/filesystem"
	"github.com/vvka-141/pgm/internal/logging"
	"github.com/vvka-141/pgm/pkg/pgm"
)

func TestNewWriter_PanicsOnNilDependencies(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem()
	logger := logging.NewNullLogger()

	assert.Panics(t, func() { NewWriter(nil, logger) })
	assert.Panics(t, func() { NewWriter(fs, nil) })
}

func TestWriteArtifacts(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem()
	w := NewWriter(fs, logging.NewNullLogger())

	objects := []pgm.SQLObject{
		{Category: pgm.CategoryFunction, Name: "get_user", Body: "CREATE OR REPLACE FUNCTION get_user() ...\n"},
		{Category: pgm.CategoryTrigger, Name: "audit_fn", Body: "CREATE OR REPLACE FUNCTION audit_fn() RETURNS trigger ...\n"},
		{Category: pgm.CategoryView, Name: "active_users", Body: "CREATE OR REPLACE VIEW active_users AS ...\n"},
	}

	err := w.WriteArtifacts("postgres", objects, "CREATE TABLE users (id INT);\n")
	require.NoError(t, err)

	fn, err := fs.ReadFile("postgres/functions/get_user.sql")
	require.NoError(t, err)
	assert.Equal(t, objects[0].Body, string(fn))

	tr, err := fs.ReadFile("postgres/triggers/audit_fn.sql")
	require.NoError(t, err)
	assert.Equal(t, objects[1].Body, string(tr))

	vw, err := fs.ReadFile("postgres/views/active_users.sql")
	require.NoError(t, err)
	assert.Equal(t, objects[2].Body, string(vw))

	bootstrap, err := fs.ReadFile("postgres/migrations/00000.sql")
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE users (id INT);\n", string(bootstrap))
}

func TestWriteArtifacts_EmptyObjectsStillWritesBootstrap(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem()
	w := NewWriter(fs, logging.NewNullLogger())

	err := w.WriteArtifacts("postgres", nil, "")
	require.NoError(t, err)

	bootstrap, err := fs.ReadFile("postgres/migrations/00000.sql")
	require.NoError(t, err)
	assert.Empty(t, string(bootstrap))
}
