package project

import (
	"fmt"
	"path/filepath"

	"github.com/vvka-141/pgm/internal/files/filesystem"
	"github.com/vvka-141/pgm/pkg/pgm"
)

// Writer materializes tokenized dump output as project files: one file
// per extracted object in its category directory, plus the residual
// text as the bootstrap migration.
type Writer struct {
	fileSystem filesystem.FileSystemProvider
	logger     pgm.Logger
}

// NewWriter creates a project writer with injected dependencies.
// Panics if any dependency is nil.
func NewWriter(fileSystem filesystem.FileSystemProvider, logger pgm.Logger) *Writer {
	if fileSystem == nil {
		panic("fileSystem cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Writer{
		fileSystem: fileSystem,
		logger:     logger,
	}
}

// WriteArtifacts writes each object to <projectDir>/<category>/<name>.sql
// and the bootstrap text to the reserved bootstrap migration. The
// bootstrap file is written even when empty so a fresh project always
// has a baseline.
func (w *Writer) WriteArtifacts(projectDir string, objects []pgm.SQLObject, bootstrap string) error {
	for _, obj := range objects {
		dir := filepath.Join(projectDir, obj.Category.Dir())
		if err := w.fileSystem.MkdirAll(dir); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", obj.Category.Dir(), err)
		}

		path := filepath.Join(dir, obj.Name+".sql")
		if err := w.fileSystem.WriteFile(path, []byte(obj.Body)); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		w.logger.Verbose("Wrote %s", path)
	}

	migrationsDir := filepath.Join(projectDir, MigrationsDir)
	if err := w.fileSystem.MkdirAll(migrationsDir); err != nil {
		return fmt.Errorf("failed to create migrations directory: %w", err)
	}

	bootstrapPath := filepath.Join(migrationsDir, pgm.BootstrapMigrationName)
	if err := w.fileSystem.WriteFile(bootstrapPath, []byte(bootstrap)); err != nil {
		return fmt.Errorf("failed to write bootstrap migration: %w", err)
	}
	w.logger.Verbose("Wrote %s", bootstrapPath)

	return nil
}
