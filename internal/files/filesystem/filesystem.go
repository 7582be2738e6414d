package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// FileSystemProvider abstracts the filesystem operations pgm performs:
// flat directory listings, whole-file reads, and artifact writes.
// Implementations: OSFileSystem (production) and MemoryFileSystem (tests).
type FileSystemProvider interface {
	// ReadFile reads a specific file at the given path.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to the given path, creating or truncating it.
	WriteFile(path string, data []byte) error

	// ReadDir reads the directory entries at the given path, sorted by name.
	ReadDir(path string) ([]FileInfo, error)

	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)

	// MkdirAll creates the directory at path along with any missing parents.
	MkdirAll(path string) error
}
