// Package checksum provides content hashing for change detection.
//
// Artifact files (functions, triggers, views) are hash-gated: the compiled
// script re-applies a body only when the stored hash differs from the hash of
// the on-disk file. Hashes are computed over the raw file bytes, so any byte
// change flips the guard from skip to apply.
package checksum
