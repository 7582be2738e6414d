package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vvka-141/pgm/pkg/pgm"
)

// ForcedApprover implements the Approver interface for non-interactive
// approval. It is selected by --force and when stdin is not a terminal,
// so CI pipelines never hang on a prompt.
type ForcedApprover struct {
	verbose bool
	output  io.Writer
}

// NewForcedApprover creates a new ForcedApprover.
func NewForcedApprover(verbose bool) pgm.Approver {
	return &ForcedApprover{
		verbose: verbose,
		output:  os.Stderr,
	}
}

// RequestApproval approves the overwrite, noting it on the output.
func (a *ForcedApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	fmt.Fprintf(a.output, "%s already exists, resetting it.\n", target)
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ pgm.Approver = (*ForcedApprover)(nil)
