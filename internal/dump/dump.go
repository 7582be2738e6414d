package dump

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/vvka-141/pgm/pkg/pgm"
)

// PGDump produces a schema-only export of the target database by
// running the pg_dump client tool. It implements pgm.SchemaDumper.
//
// Connection parameters are passed as a connection string via --dbname;
// when the string is empty pg_dump falls back to the standard PG*
// environment variables, matching psql behavior.
type PGDump struct {
	connString string
	logger     pgm.Logger
}

// NewPGDump creates a pg_dump-backed schema dumper.
// Panics if logger is nil.
func NewPGDump(connString string, logger pgm.Logger) *PGDump {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &PGDump{
		connString: connString,
		logger:     logger,
	}
}

// args builds the pg_dump argument list. Extracted for testability.
func (d *PGDump) args() []string {
	args := []string{"--no-owner", "--schema-only"}
	if d.connString != "" {
		args = append(args, "--dbname", d.connString)
	}
	return args
}

// Dump runs pg_dump and returns its stdout as text.
func (d *PGDump) Dump(ctx context.Context) (string, error) {
	args := d.args()
	d.logger.Verbose("Running pg_dump %s", strings.Join(args[:2], " "))

	cmd := exec.CommandContext(ctx, "pg_dump", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("pg_dump not found, ensure the PostgreSQL client tools are installed and in your PATH: %w", err)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("pg_dump failed: %s: %w", msg, err)
		}
		return "", fmt.Errorf("pg_dump failed: %w", err)
	}

	return stdout.String(), nil
}

// Verify PGDump implements the SchemaDumper interface at compile time
var _ pgm.SchemaDumper = (*PGDump)(nil)
