// Package filesystem provides the filesystem abstraction used by the
// project scanners, tokenizer output, and scaffolding.
//
// Production code uses OSFileSystem; tests use MemoryFileSystem so
// directory layouts can be constructed without touching disk.
package filesystem
