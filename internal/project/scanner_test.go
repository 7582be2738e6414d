package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgm/internal/checksum"
	"github.com/vvka-141/pgm/internal/files/filesystem"
	"github.com/vvka-141/pgm/internal/logging"
	"github.com/vvka-141/pgm/pkg/pgm"
)

func newTestScanner(fs filesystem.FileSystemProvider) *Scanner {
	return NewScanner(fs, checksum.New(), logging.NewNullLogger())
}

func TestNewScanner_PanicsOnNilDependencies(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem()
	calc := checksum.New()
	logger := logging.NewNullLogger()

	assert.Panics(t, func() { NewScanner(nil, calc, logger) })
	assert.Panics(t, func() { NewScanner(fs, nil, logger) })
	assert.Panics(t, func() { NewScanner(fs, calc, nil) })
}

func TestScanObjects_SortedByName(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem()
	fs.AddFile("postgres/functions/zebra.sql", []byte("CREATE OR REPLACE FUNCTION zebra() RETURNS void AS $$ BEGIN END $$ LANGUAGE plpgsql;"))
	fs.AddFile("postgres/functions/alpha.sql", []byte("CREATE OR REPLACE FUNCTION alpha() RETURNS void AS $$ BEGIN END $$ LANGUAGE plpgsql;"))

	objects, err := newTestScanner(fs).ScanObjects("postgres", pgm.CategoryFunction)
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "alpha", objects[0].Name)
	assert.Equal(t, "zebra", objects[1].Name)
	assert.Equal(t, pgm.CategoryFunction, objects[0].Category)
}

func TestScanObjects_HashCoversRawBytes(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem()
	body := "CREATE OR REPLACE VIEW v AS SELECT 1;\n"
	fs.AddFile("postgres/views/v.sql", []byte(body))

	objects, err := newTestScanner(fs).ScanObjects("postgres", pgm.CategoryView)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, body, objects[0].Body)
	assert.Equal(t, checksum.New().Calculate([]byte(body)), objects[0].Hash)
}

func TestScanObjects_MissingDirectoryIsEmpty(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem()

	objects, err := newTestScanner(fs).ScanObjects("postgres", pgm.CategoryTrigger)
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestScanObjects_SkipsNonSQLAndSubdirectories(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem()
	fs.AddFile("postgres/functions/f.sql", []byte("CREATE OR REPLACE FUNCTION f() RETURNS void AS $$ BEGIN END $$ LANGUAGE plpgsql;"))
	fs.AddFile("postgres/functions/README.md", []byte("docs"))
	fs.AddFile("postgres/functions/archive/old.sql", []byte("old"))

	objects, err := newTestScanner(fs).ScanObjects("postgres", pgm.CategoryFunction)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "f", objects[0].Name)
}

func TestScanObjects_RejectsInvalidUTF8(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem()
	fs.AddFile("postgres/functions/bad.sql", []byte{0xff, 0xfe, 0x00})

	_, err := newTestScanner(fs).ScanObjects("postgres", pgm.CategoryFunction)
	require.Error(t, err)
	assert.ErrorIs(t, err, pgm.ErrParseFailed)
}

func TestScanMigrations_BootstrapFlag(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem()
	fs.AddFile("postgres/migrations/00000.sql", []byte("CREATE TABLE accounts (id bigint);"))
	fs.AddFile("postgres/migrations/00001.sql", []byte("ALTER TABLE accounts ADD COLUMN name text;"))

	migrations, err := newTestScanner(fs).ScanMigrations("postgres")
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.True(t, migrations[0].Bootstrap)
	assert.Equal(t, "00000", migrations[0].Name)
	assert.Equal(t, "00000.sql", migrations[0].Filename)
	assert.False(t, migrations[1].Bootstrap)
	assert.Equal(t, "00001", migrations[1].Name)
}

func TestScanSeeds_Ordered(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem()
	fs.AddFile("postgres/seeds/00002_extra.sql", []byte("INSERT INTO accounts VALUES (2);"))
	fs.AddFile("postgres/seeds/00001_base.sql", []byte("INSERT INTO accounts VALUES (1);"))

	seeds, err := newTestScanner(fs).ScanSeeds("postgres")
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	assert.Equal(t, "00001_base", seeds[0].Name)
	assert.Equal(t, "00002_extra", seeds[1].Name)
	assert.False(t, seeds[0].Bootstrap)
}
