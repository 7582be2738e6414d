package filesystem

import (
	"os"
	"sort"
)

// OSFileSystem implements FileSystemProvider using the real operating
// system filesystem.
type OSFileSystem struct{}

// Ensure OSFileSystem implements FileSystemProvider.
var _ FileSystemProvider = (*OSFileSystem)(nil)

// NewOSFileSystem creates a new OS filesystem provider.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (f *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (f *OSFileSystem) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func (f *OSFileSystem) ReadDir(path string) ([]FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	infos := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name() < infos[j].Name()
	})
	return infos, nil
}

func (f *OSFileSystem) Stat(path string) (FileInfo, error) {
	return os.Stat(path)
}

func (f *OSFileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}
