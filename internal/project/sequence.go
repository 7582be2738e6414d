package project

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vvka-141/pgm/internal/files/filesystem"
	"github.com/vvka-141/pgm/pkg/pgm"
)

// NextSequence returns the next zero-padded sequence prefix for an
// ordered directory (migrations or seeds). Filenames whose first five
// characters are not digits are ignored. An empty or missing directory
// yields "00001"; 00000 stays reserved for the bootstrap script.
func NextSequence(fileSystem filesystem.FileSystemProvider, dir string) (string, error) {
	highest := 0
	if _, err := fileSystem.Stat(dir); err == nil {
		infos, err := fileSystem.ReadDir(dir)
		if err != nil {
			return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
		}
		for _, info := range infos {
			if info.IsDir() || !strings.HasSuffix(info.Name(), ".sql") {
				continue
			}
			seq, ok := parseSequence(info.Name())
			if ok && seq > highest {
				highest = seq
			}
		}
	}
	return FormatSequence(highest + 1), nil
}

// FormatSequence renders a sequence number with the fixed zero padding
// used by ordered script filenames.
func FormatSequence(n int) string {
	return fmt.Sprintf("%0*d", pgm.SequenceWidth, n)
}

func parseSequence(name string) (int, bool) {
	if len(name) < pgm.SequenceWidth {
		return 0, false
	}
	n, err := strconv.Atoi(name[:pgm.SequenceWidth])
	if err != nil {
		return 0, false
	}
	return n, true
}

// SequencePaths is a small helper bundling the ordered directories for
// a project root.
func SequencePaths(projectDir string) (migrations, seeds string) {
	return filepath.Join(projectDir, MigrationsDir), filepath.Join(projectDir, SeedsDir)
}
