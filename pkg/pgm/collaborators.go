package pgm

import "context"

// ScriptExecutor is the SQL-executing collaborator. It receives one compiled
// multi-statement script and runs it as a single batch; atomicity inside the
// script comes from the script's own anonymous block, not from the executor.
type ScriptExecutor interface {
	// Execute runs the compiled script against the target database.
	// Notices raised by the script (applied/skipped lines) are relayed to
	// the executor's output as they arrive.
	Execute(ctx context.Context, script string) error
}

// SchemaDumper is the dump-producing collaborator. It returns the schema-only
// textual export of the connected database's definitions, suitable for the
// dump tokenizer.
type SchemaDumper interface {
	Dump(ctx context.Context) (string, error)
}

// Approver abstracts confirmation of destructive operations, such as
// resetting an existing artifact file to its template.
type Approver interface {
	// RequestApproval asks for confirmation to overwrite the named target.
	// Returns true if the operation should proceed.
	RequestApproval(ctx context.Context, target string) (bool, error)
}
