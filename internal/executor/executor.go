// Package executor runs compiled scripts against PostgreSQL through a
// pgx connection pool.
package executor

import (
	"context"
	"fmt"

	"github.com/vvka-141/pgm/pkg/pgm"
)

// PoolExecutor implements pgm.ScriptExecutor on top of a Connector.
// The whole script goes to the server as one batch; atomicity comes
// from the script's own anonymous block.
type PoolExecutor struct {
	connector pgm.Connector
	logger    pgm.Logger
}

// Ensure PoolExecutor implements ScriptExecutor.
var _ pgm.ScriptExecutor = (*PoolExecutor)(nil)

// NewPoolExecutor creates an executor. Panics if any dependency is nil.
func NewPoolExecutor(connector pgm.Connector, logger pgm.Logger) *PoolExecutor {
	if connector == nil {
		panic("connector cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &PoolExecutor{connector: connector, logger: logger}
}

// Execute connects, runs the script, and classifies failures so the
// caller can distinguish connection problems from script problems.
func (e *PoolExecutor) Execute(ctx context.Context, script string) error {
	pool, err := e.connector.Connect(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", pgm.ErrConnectionFailed, err)
	}
	defer pool.Close()

	e.logger.Verbose("Executing compiled script (%d bytes)", len(script))
	if _, err := pool.Exec(ctx, script); err != nil {
		return fmt.Errorf("%w: %w", pgm.ErrExecutionFailed, err)
	}
	return nil
}
