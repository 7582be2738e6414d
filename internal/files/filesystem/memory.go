package filesystem

import (
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files.
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (fi *memoryFileInfo) Name() string       { return fi.name }
func (fi *memoryFileInfo) Size() int64        { return fi.size }
func (fi *memoryFileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi *memoryFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *memoryFileInfo) IsDir() bool        { return fi.isDir }
func (fi *memoryFileInfo) Sys() interface{}   { return nil }

// MemoryFileSystem implements FileSystemProvider with an in-memory file
// map. Paths are normalized to forward slashes so tests behave the same
// on every platform.
type MemoryFileSystem struct {
	files map[string][]byte
	dirs  map[string]bool
}

// Ensure MemoryFileSystem implements FileSystemProvider.
var _ FileSystemProvider = (*MemoryFileSystem)(nil)

// NewMemoryFileSystem creates an empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return path.Clean(p)
}

// AddFile adds a file to the memory filesystem, creating parent
// directories implicitly.
func (m *MemoryFileSystem) AddFile(filePath string, content []byte) {
	filePath = normalize(filePath)
	m.files[filePath] = content
	m.addParents(filePath)
}

func (m *MemoryFileSystem) addParents(filePath string) {
	for dir := path.Dir(filePath); dir != "." && dir != "/"; dir = path.Dir(dir) {
		m.dirs[dir] = true
	}
}

func (m *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	filePath = normalize(filePath)
	content, ok := m.files[filePath]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}
	out := make([]byte, len(content))
	copy(out, content)
	return out, nil
}

func (m *MemoryFileSystem) WriteFile(filePath string, data []byte) error {
	m.AddFile(filePath, data)
	return nil
}

func (m *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	dirPath = normalize(dirPath)
	if !m.dirs[dirPath] {
		return nil, &fs.PathError{Op: "open", Path: dirPath, Err: fs.ErrNotExist}
	}
	var infos []FileInfo
	for filePath, content := range m.files {
		if path.Dir(filePath) == dirPath {
			infos = append(infos, &memoryFileInfo{
				name: path.Base(filePath),
				size: int64(len(content)),
				mode: 0o644,
			})
		}
	}
	for dir := range m.dirs {
		if path.Dir(dir) == dirPath {
			infos = append(infos, &memoryFileInfo{
				name:  path.Base(dir),
				mode:  fs.ModeDir | 0o755,
				isDir: true,
			})
		}
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name() < infos[j].Name()
	})
	return infos, nil
}

func (m *MemoryFileSystem) Stat(filePath string) (FileInfo, error) {
	filePath = normalize(filePath)
	if content, ok := m.files[filePath]; ok {
		return &memoryFileInfo{
			name: path.Base(filePath),
			size: int64(len(content)),
			mode: 0o644,
		}, nil
	}
	if m.dirs[filePath] {
		return &memoryFileInfo{
			name:  path.Base(filePath),
			mode:  fs.ModeDir | 0o755,
			isDir: true,
		}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: filePath, Err: os.ErrNotExist}
}

func (m *MemoryFileSystem) MkdirAll(dirPath string) error {
	dirPath = normalize(dirPath)
	m.dirs[dirPath] = true
	m.addParents(dirPath + "/x")
	return nil
}
