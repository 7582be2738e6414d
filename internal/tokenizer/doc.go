// Package tokenizer reverse-engineers a schema-only dump into named
// function, trigger, and view artifacts plus a residual bootstrap
// migration.
//
// The dump is split into whitespace-preserving tokens and scanned by a
// small state machine (State.Step), so extracted statement text is
// byte-identical to the dump. CREATE FUNCTION and CREATE [MATERIALIZED]
// VIEW statements are lifted out with their prefixes normalized to
// re-runnable forms; functions whose return type is TRIGGER land in the
// trigger category. Extraction relies on the dump tool's convention of
// unique dollar-quote tags per function body.
package tokenizer
