// Package compiler assembles a project directory into a single
// idempotent, transactional SQL script.
//
// Three variants share one scanner: the apply script (hash-gated
// objects, existence-gated migrations, fixed stage order inside one DO
// block), the fake-apply script (bookkeeping only), and the seed script
// (untracked, re-run every time).
//
// Functions and triggers appear twice in the apply script: a first pass
// with function body checking off, so definitions may reference objects
// created later, and a second pass with checking on that validates the
// bodies and records their hashes. Unchanged artifacts are skipped at
// execution time by the guards, never at compile time.
package compiler
