package pgm

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Command completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect to database
	ExitApprovalDenied  = 12 // User denied an overwrite confirmation
	ExitExecutionFailed = 13 // SQL execution failed
	ExitProjectMissing  = 14 // Project directory not found
	ExitParseError      = 15 // Schema dump could not be tokenized
)

// Tracking table names. The compiled script creates these idempotently and
// uses them as the idempotency ledger inside the target database.
const (
	MigrationTable = "pgm_migration"
	FunctionTable  = "pgm_function"
	TriggerTable   = "pgm_trigger"
	ViewTable      = "pgm_view"
)

const (
	// DefaultProjectDir is the directory pgm manages when --path is not given.
	DefaultProjectDir = "postgres"

	// BootstrapMigrationName is the reserved filename of the bootstrap
	// migration. It is always applied first and is excluded from ordinary
	// sequence numbering.
	BootstrapMigrationName = "00000.sql"

	// SequenceWidth is the zero-padded width of migration and seed sequence
	// numbers. "00001.sql", "00002.sql", ...
	SequenceWidth = 5

	// DefaultManagementDB is the database to connect to when no target
	// database is specified anywhere.
	DefaultManagementDB = "postgres"
)
