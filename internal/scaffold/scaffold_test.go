package scaffold

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/pgm/internal/files/filesystem"
	"github.com/vvka-141/pgm/internal/logging"
	"github.com/vvka-141/pgm/pkg/pgm"
)

// stubApprover records calls and returns a fixed decision.
type stubApprover struct {
	decision bool
	err      error
	calls    []string
}

func (a *stubApprover) RequestApproval(_ context.Context, target string) (bool, error) {
	a.calls = append(a.calls, target)
	return a.decision, a.err
}

func newScaffolder(t *testing.T) (*Scaffolder, *filesystem.MemoryFileSystem) {
	t.Helper()
	fs := filesystem.NewMemoryFileSystem()
	return NewScaffolder(fs, logging.NewNullLogger()), fs
}

func TestNewScaffolder_PanicsOnNilDependencies(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem()
	assert.Panics(t, func() { NewScaffolder(nil, logging.NewNullLogger()) })
	assert.Panics(t, func() { NewScaffolder(fs, nil) })
}

func TestInitProject_CreatesDirectoryTree(t *testing.T) {
	s, fs := newScaffolder(t)

	require.NoError(t, s.InitProject("postgres"))

	for _, dir := range []string{
		"postgres",
		"postgres/migrations",
		"postgres/functions",
		"postgres/triggers",
		"postgres/views",
		"postgres/seeds",
	} {
		info, err := fs.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}
}

func TestInitProject_RefusesExistingRoot(t *testing.T) {
	s, fs := newScaffolder(t)
	require.NoError(t, fs.MkdirAll("postgres"))

	err := s.InitProject("postgres")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pgm.ErrInvalidConfig))
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreateObject_WritesTemplateWithName(t *testing.T) {
	s, fs := newScaffolder(t)
	require.NoError(t, s.InitProject("postgres"))

	approver := &stubApprover{decision: true}
	created, err := s.CreateObject(context.Background(), "postgres", pgm.CategoryFunction, "get_user", approver)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Empty(t, approver.calls, "fresh file must not prompt")

	content, err := fs.ReadFile("postgres/functions/get_user.sql")
	require.NoError(t, err)
	assert.Contains(t, string(content), "CREATE OR REPLACE FUNCTION get_user()")
	assert.NotContains(t, string(content), namePlaceholder)
}

func TestCreateObject_TriggerTemplateReturnsTrigger(t *testing.T) {
	s, fs := newScaffolder(t)
	require.NoError(t, s.InitProject("postgres"))

	_, err := s.CreateObject(context.Background(), "postgres", pgm.CategoryTrigger, "audit_row", &stubApprover{decision: true})
	require.NoError(t, err)

	content, err := fs.ReadFile("postgres/triggers/audit_row.sql")
	require.NoError(t, err)
	assert.Contains(t, string(content), "RETURNS trigger")
	assert.Contains(t, string(content), "RETURN NEW;")
}

func TestCreateObject_ExistingFilePromptsApprover(t *testing.T) {
	s, fs := newScaffolder(t)
	require.NoError(t, s.InitProject("postgres"))
	fs.AddFile("postgres/views/report.sql", []byte("CREATE OR REPLACE VIEW report AS SELECT 2;\n"))

	t.Run("denied keeps the file", func(t *testing.T) {
		approver := &stubApprover{decision: false}
		created, err := s.CreateObject(context.Background(), "postgres", pgm.CategoryView, "report", approver)
		require.NoError(t, err)
		assert.False(t, created)
		require.Len(t, approver.calls, 1)
		assert.Equal(t, "View 'report'", approver.calls[0])

		content, err := fs.ReadFile("postgres/views/report.sql")
		require.NoError(t, err)
		assert.Contains(t, string(content), "SELECT 2")
	})

	t.Run("approved resets to template", func(t *testing.T) {
		approver := &stubApprover{decision: true}
		created, err := s.CreateObject(context.Background(), "postgres", pgm.CategoryView, "report", approver)
		require.NoError(t, err)
		assert.True(t, created)

		content, err := fs.ReadFile("postgres/views/report.sql")
		require.NoError(t, err)
		assert.Contains(t, string(content), "CREATE OR REPLACE VIEW report AS")
		assert.NotContains(t, string(content), "SELECT 2")
	})
}

func TestCreateObject_ApproverError(t *testing.T) {
	s, fs := newScaffolder(t)
	require.NoError(t, s.InitProject("postgres"))
	fs.AddFile("postgres/functions/f.sql", []byte("x"))

	wantErr := errors.New("input closed")
	_, err := s.CreateObject(context.Background(), "postgres", pgm.CategoryFunction, "f", &stubApprover{err: wantErr})
	assert.ErrorIs(t, err, wantErr)
}

func TestCreateObject_MissingProjectDir(t *testing.T) {
	s, _ := newScaffolder(t)

	_, err := s.CreateObject(context.Background(), "postgres", pgm.CategoryFunction, "f", &stubApprover{decision: true})
	assert.ErrorIs(t, err, pgm.ErrProjectNotFound)
}

func TestCreateMigration_SequencesFromExisting(t *testing.T) {
	s, fs := newScaffolder(t)
	require.NoError(t, s.InitProject("postgres"))
	fs.AddFile("postgres/migrations/00000.sql", []byte("bootstrap"))
	fs.AddFile("postgres/migrations/00004.sql", []byte("alter"))

	filename, err := s.CreateMigration("postgres")
	require.NoError(t, err)
	assert.Equal(t, "00005.sql", filename)

	content, err := fs.ReadFile("postgres/migrations/00005.sql")
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestCreateSeed_StartsAtOne(t *testing.T) {
	s, fs := newScaffolder(t)
	require.NoError(t, s.InitProject("postgres"))

	filename, err := s.CreateSeed("postgres")
	require.NoError(t, err)
	assert.Equal(t, "00001.sql", filename)

	_, err = fs.Stat("postgres/seeds/00001.sql")
	assert.NoError(t, err)
}

func TestTemplates_AllCategoriesEmbedded(t *testing.T) {
	for _, category := range pgm.Categories() {
		tmpl, err := template(category)
		require.NoError(t, err, category)
		assert.True(t, strings.Contains(tmpl, namePlaceholder), "%s template must carry the placeholder", category)
		assert.True(t, strings.HasSuffix(tmpl, "\n"), "%s template must end with a newline", category)
	}
}
