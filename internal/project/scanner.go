package project

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/vvka-141/pgm/internal/checksum"
	"github.com/vvka-141/pgm/internal/files/filesystem"
	"github.com/vvka-141/pgm/pkg/pgm"
)

// MigrationsDir and SeedsDir are the project subdirectories holding
// ordered scripts. Object directories come from ObjectCategory.Dir.
const (
	MigrationsDir = "migrations"
	SeedsDir      = "seeds"
)

// Scanner reads schema objects and migration scripts from a project
// directory. Missing subdirectories are treated as empty.
type Scanner struct {
	fileSystem filesystem.FileSystemProvider
	calculator checksum.Calculator
	logger     pgm.Logger
}

// NewScanner creates a project scanner with injected dependencies.
// Panics if any dependency is nil.
func NewScanner(
	fileSystem filesystem.FileSystemProvider,
	calculator checksum.Calculator,
	logger pgm.Logger,
) *Scanner {
	if fileSystem == nil {
		panic("fileSystem cannot be nil")
	}
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Scanner{
		fileSystem: fileSystem,
		calculator: calculator,
		logger:     logger,
	}
}

// ScanObjects reads all .sql files from the category's directory under
// projectDir and returns them sorted by name. The object name is the
// filename without the .sql extension; the hash covers the raw bytes.
func (s *Scanner) ScanObjects(projectDir string, category pgm.ObjectCategory) ([]pgm.SQLObject, error) {
	dir := filepath.Join(projectDir, category.Dir())
	names, err := s.listSQLFiles(dir)
	if err != nil {
		return nil, err
	}

	objects := make([]pgm.SQLObject, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		content, err := s.readSQL(path)
		if err != nil {
			return nil, err
		}
		objects = append(objects, pgm.SQLObject{
			Category: category,
			Name:     strings.TrimSuffix(name, ".sql"),
			Body:     string(content),
			Hash:     s.calculator.Calculate(content),
		})
	}
	s.logger.Verbose("Scanned %d %s file(s) from %s", len(objects), category, dir)
	return objects, nil
}

// ScanMigrations reads all .sql files from the migrations directory,
// sorted by filename. The bootstrap script 00000.sql, when present, is
// flagged so the compiler can emit it ahead of schema objects.
func (s *Scanner) ScanMigrations(projectDir string) ([]pgm.MigrationFile, error) {
	return s.scanOrdered(filepath.Join(projectDir, MigrationsDir))
}

// ScanSeeds reads all .sql files from the seeds directory, sorted by
// filename.
func (s *Scanner) ScanSeeds(projectDir string) ([]pgm.MigrationFile, error) {
	return s.scanOrdered(filepath.Join(projectDir, SeedsDir))
}

func (s *Scanner) scanOrdered(dir string) ([]pgm.MigrationFile, error) {
	names, err := s.listSQLFiles(dir)
	if err != nil {
		return nil, err
	}

	files := make([]pgm.MigrationFile, 0, len(names))
	for _, name := range names {
		content, err := s.readSQL(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		files = append(files, pgm.MigrationFile{
			Name:      strings.TrimSuffix(name, ".sql"),
			Filename:  name,
			Body:      string(content),
			Bootstrap: name == pgm.BootstrapMigrationName,
		})
	}
	s.logger.Verbose("Scanned %d script(s) from %s", len(files), dir)
	return files, nil
}

// listSQLFiles returns the sorted .sql filenames in dir, or an empty
// slice when the directory does not exist.
func (s *Scanner) listSQLFiles(dir string) ([]string, error) {
	if _, err := s.fileSystem.Stat(dir); err != nil {
		return nil, nil
	}
	infos, err := s.fileSystem.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var names []string
	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".sql") {
			continue
		}
		names = append(names, info.Name())
	}
	return names, nil
}

func (s *Scanner) readSQL(path string) ([]byte, error) {
	content, err := s.fileSystem.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", pgm.ErrParseFailed, path)
	}
	return content, nil
}
