package compiler

import (
	"fmt"
	"path"

	"github.com/vvka-141/pgm/internal/files/filesystem"
	"github.com/vvka-141/pgm/internal/project"
	"github.com/vvka-141/pgm/pkg/pgm"
)

// Compiler assembles a project directory into one idempotent SQL
// script. Compilation is a pure transformation over one filesystem
// snapshot: list, read, hash, format.
type Compiler struct {
	fileSystem filesystem.FileSystemProvider
	scanner    *project.Scanner
	logger     pgm.Logger
}

// NewCompiler creates a compiler with injected dependencies.
// Panics if any dependency is nil.
func NewCompiler(
	fileSystem filesystem.FileSystemProvider,
	scanner *project.Scanner,
	logger pgm.Logger,
) *Compiler {
	if fileSystem == nil {
		panic("fileSystem cannot be nil")
	}
	if scanner == nil {
		panic("scanner cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Compiler{
		fileSystem: fileSystem,
		scanner:    scanner,
		logger:     logger,
	}
}

// checkProjectDir verifies the managed directory exists before any
// compilation starts, so failures never produce partial output.
func (c *Compiler) checkProjectDir(projectDir string) error {
	info, err := c.fileSystem.Stat(projectDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("directory '%s' not found, have you run 'pgm init'?: %w",
			projectDir, pgm.ErrProjectNotFound)
	}
	return nil
}

// sourcePath is the display path used in RUN/DONE markers and notices.
func sourcePath(projectDir string, category pgm.ObjectCategory, name string) string {
	return path.Join(projectDir, category.Dir(), name)
}

// objectFragment wraps one artifact in its hash guard. The body is
// always embedded in full; skipping unchanged objects happens at
// execution time, never at compile time.
func objectFragment(projectDir string, obj pgm.SQLObject, stage Stage, bookkeeping bool) Fragment {
	return Fragment{
		Stage:       stage,
		Guard:       GuardHash,
		Table:       obj.Category.Table(),
		Name:        obj.Name,
		Hash:        obj.Hash,
		Source:      sourcePath(projectDir, obj.Category, obj.Name),
		Body:        obj.Body,
		Bookkeeping: bookkeeping,
	}
}

// migrationFragment wraps one migration in its existence guard.
// Migrations are gated by presence only: editing an already-applied
// file has no effect on later compiles.
func migrationFragment(m pgm.MigrationFile, stage Stage) Fragment {
	return Fragment{
		Stage:  stage,
		Guard:  GuardExistence,
		Table:  pgm.MigrationTable,
		Name:   m.Name,
		Source: m.Filename,
		Body:   m.Body,
	}
}

// Build scans the project and assembles the full fragment list in the
// fixed stage order. Exposed separately from Compile so tests can
// assert on script structure.
func (c *Compiler) Build(projectDir string) (*Builder, error) {
	if err := c.checkProjectDir(projectDir); err != nil {
		return nil, err
	}

	functions, err := c.scanner.ScanObjects(projectDir, pgm.CategoryFunction)
	if err != nil {
		return nil, err
	}
	triggers, err := c.scanner.ScanObjects(projectDir, pgm.CategoryTrigger)
	if err != nil {
		return nil, err
	}
	views, err := c.scanner.ScanObjects(projectDir, pgm.CategoryView)
	if err != nil {
		return nil, err
	}
	migrations, err := c.scanner.ScanMigrations(projectDir)
	if err != nil {
		return nil, err
	}

	b := NewBuilder()
	b.Add(Fragment{Stage: StagePrologue, Body: "DO $pgm$ BEGIN\n" +
		"SET LOCAL check_function_bodies = false;\n" +
		"SET LOCAL client_min_messages = notice;\n"})
	b.Add(Fragment{Stage: StageTracking, Body: trackingTablesSQL})

	for _, m := range migrations {
		if m.Bootstrap {
			b.Add(migrationFragment(m, StageBootstrap))
		}
	}

	for _, obj := range functions {
		b.Add(objectFragment(projectDir, obj, StageObjectsFirstPass, false))
	}
	for _, obj := range triggers {
		b.Add(objectFragment(projectDir, obj, StageObjectsFirstPass, false))
	}

	for _, m := range migrations {
		if !m.Bootstrap {
			b.Add(migrationFragment(m, StageMigrations))
		}
	}

	for _, obj := range views {
		b.Add(objectFragment(projectDir, obj, StageViews, true))
	}

	b.Add(Fragment{Stage: StageRecheck, Body: "SET LOCAL check_function_bodies = true;\n"})

	for _, obj := range functions {
		b.Add(objectFragment(projectDir, obj, StageObjectsSecondPass, true))
	}
	for _, obj := range triggers {
		b.Add(objectFragment(projectDir, obj, StageObjectsSecondPass, true))
	}

	b.Add(Fragment{Stage: StageEpilogue, Body: "END $pgm$;\n"})
	return b, nil
}

// Compile produces the apply script. With minify set, comment lines
// are stripped; dry-run previews keep them.
func (c *Compiler) Compile(projectDir string, minify bool) (string, error) {
	b, err := c.Build(projectDir)
	if err != nil {
		return "", err
	}
	c.logger.Verbose("Compiled %d fragment(s) from %s", len(b.Fragments()), projectDir)
	return b.Render(minify), nil
}
