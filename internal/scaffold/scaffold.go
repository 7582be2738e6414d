package scaffold

import (
	"context"
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vvka-141/pgm/internal/files/filesystem"
	"github.com/vvka-141/pgm/internal/project"
	"github.com/vvka-141/pgm/pkg/pgm"
)

//go:embed all:templates
var templatesFS embed.FS

// namePlaceholder is replaced with the artifact name when a template is
// instantiated.
const namePlaceholder = "<name_placeholder>"

// Scaffolder creates the managed directory tree and new artifact files
// from embedded templates.
type Scaffolder struct {
	fileSystem filesystem.FileSystemProvider
	logger     pgm.Logger
}

// NewScaffolder creates a scaffolder with injected dependencies.
// Panics if any dependency is nil.
func NewScaffolder(fileSystem filesystem.FileSystemProvider, logger pgm.Logger) *Scaffolder {
	if fileSystem == nil {
		panic("fileSystem cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Scaffolder{
		fileSystem: fileSystem,
		logger:     logger,
	}
}

// InitProject creates the managed directory tree: the project root plus
// migrations/, functions/, triggers/, views/, and seeds/. It refuses to
// run when the root already exists, to avoid clobbering a project.
func (s *Scaffolder) InitProject(projectDir string) error {
	if _, err := s.fileSystem.Stat(projectDir); err == nil {
		return fmt.Errorf("directory '%s' already exists: %w", projectDir, pgm.ErrInvalidConfig)
	}

	dirs := []string{
		projectDir,
		filepath.Join(projectDir, project.MigrationsDir),
		filepath.Join(projectDir, project.SeedsDir),
	}
	for _, category := range pgm.Categories() {
		dirs = append(dirs, filepath.Join(projectDir, category.Dir()))
	}

	for _, dir := range dirs {
		if err := s.fileSystem.MkdirAll(dir); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		s.logger.Verbose("Created directory %s", dir)
	}
	return nil
}

// CreateObject writes the category's template into the project with the
// given name. When the file already exists the approver is asked before
// overwriting; a denial aborts without error. Returns whether the file
// was written.
func (s *Scaffolder) CreateObject(
	ctx context.Context,
	projectDir string,
	category pgm.ObjectCategory,
	name string,
	approver pgm.Approver,
) (bool, error) {
	if approver == nil {
		panic("approver cannot be nil")
	}
	if err := s.checkProjectDir(projectDir); err != nil {
		return false, err
	}

	dir := filepath.Join(projectDir, category.Dir())
	if err := s.fileSystem.MkdirAll(dir); err != nil {
		return false, fmt.Errorf("failed to create %s directory: %w", category.Dir(), err)
	}

	path := filepath.Join(dir, name+".sql")
	if _, err := s.fileSystem.Stat(path); err == nil {
		target := fmt.Sprintf("%s '%s'", titleCase(category.String()), name)
		approved, err := approver.RequestApproval(ctx, target)
		if err != nil {
			return false, err
		}
		if !approved {
			return false, nil
		}
	}

	tmpl, err := template(category)
	if err != nil {
		return false, err
	}
	content := strings.ReplaceAll(tmpl, namePlaceholder, name)
	if err := s.fileSystem.WriteFile(path, []byte(content)); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.logger.Verbose("Wrote %s", path)
	return true, nil
}

// CreateMigration creates the next empty migration file and returns its
// filename.
func (s *Scaffolder) CreateMigration(projectDir string) (string, error) {
	return s.createSequenced(projectDir, project.MigrationsDir)
}

// CreateSeed creates the next empty seed file and returns its filename.
func (s *Scaffolder) CreateSeed(projectDir string) (string, error) {
	return s.createSequenced(projectDir, project.SeedsDir)
}

func (s *Scaffolder) createSequenced(projectDir, subdir string) (string, error) {
	if err := s.checkProjectDir(projectDir); err != nil {
		return "", err
	}

	dir := filepath.Join(projectDir, subdir)
	if err := s.fileSystem.MkdirAll(dir); err != nil {
		return "", fmt.Errorf("failed to create %s directory: %w", subdir, err)
	}

	seq, err := project.NextSequence(s.fileSystem, dir)
	if err != nil {
		return "", err
	}

	filename := seq + ".sql"
	path := filepath.Join(dir, filename)
	if err := s.fileSystem.WriteFile(path, nil); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.logger.Verbose("Wrote %s", path)
	return filename, nil
}

func (s *Scaffolder) checkProjectDir(projectDir string) error {
	if _, err := s.fileSystem.Stat(projectDir); err != nil {
		return fmt.Errorf("directory '%s' not found, have you run 'pgm init'?: %w", projectDir, pgm.ErrProjectNotFound)
	}
	return nil
}

// template returns the embedded template body for a category.
func template(category pgm.ObjectCategory) (string, error) {
	data, err := templatesFS.ReadFile("templates/" + category.String() + ".sql")
	if err != nil {
		return "", fmt.Errorf("no template for category %s: %w", category, err)
	}
	return string(data), nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
