package filesystem

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystem_ReadFile(t *testing.T) {
	m := NewMemoryFileSystem()
	m.AddFile("postgres/functions/f.sql", []byte("CREATE OR REPLACE FUNCTION f() ..."))

	content, err := m.ReadFile("postgres/functions/f.sql")
	require.NoError(t, err)
	assert.Equal(t, "CREATE OR REPLACE FUNCTION f() ...", string(content))
}

func TestMemoryFileSystem_ReadFile_NotExist(t *testing.T) {
	m := NewMemoryFileSystem()

	_, err := m.ReadFile("missing.sql")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_ReadDir_Sorted(t *testing.T) {
	m := NewMemoryFileSystem()
	m.AddFile("postgres/migrations/00002.sql", []byte("b"))
	m.AddFile("postgres/migrations/00000.sql", []byte("a"))
	m.AddFile("postgres/migrations/00001.sql", []byte("c"))

	infos, err := m.ReadDir("postgres/migrations")
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, "00000.sql", infos[0].Name())
	assert.Equal(t, "00001.sql", infos[1].Name())
	assert.Equal(t, "00002.sql", infos[2].Name())
}

func TestMemoryFileSystem_ReadDir_IncludesSubdirectories(t *testing.T) {
	m := NewMemoryFileSystem()
	m.AddFile("postgres/functions/f.sql", []byte("x"))
	m.AddFile("postgres/pgm.yaml", []byte("y"))

	infos, err := m.ReadDir("postgres")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "functions", infos[0].Name())
	assert.True(t, infos[0].IsDir())
	assert.Equal(t, "pgm.yaml", infos[1].Name())
	assert.False(t, infos[1].IsDir())
}

func TestMemoryFileSystem_ReadDir_NotExist(t *testing.T) {
	m := NewMemoryFileSystem()

	_, err := m.ReadDir("nowhere")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_WriteFile_ThenStat(t *testing.T) {
	m := NewMemoryFileSystem()

	require.NoError(t, m.WriteFile("out/build.sql", []byte("BEGIN;")))

	info, err := m.Stat("out/build.sql")
	require.NoError(t, err)
	assert.Equal(t, "build.sql", info.Name())
	assert.Equal(t, int64(6), info.Size())
	assert.False(t, info.IsDir())
}

func TestMemoryFileSystem_MkdirAll(t *testing.T) {
	m := NewMemoryFileSystem()

	require.NoError(t, m.MkdirAll("postgres/views"))

	info, err := m.Stat("postgres/views")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	infos, err := m.ReadDir("postgres/views")
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestMemoryFileSystem_NormalizesBackslashes(t *testing.T) {
	m := NewMemoryFileSystem()
	m.AddFile(`postgres\triggers\t.sql`, []byte("z"))

	content, err := m.ReadFile("postgres/triggers/t.sql")
	require.NoError(t, err)
	assert.Equal(t, "z", string(content))
}
