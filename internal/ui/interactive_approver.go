package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/pgm/pkg/pgm"
)

// InteractiveApprover implements the Approver interface for console-based
// confirmation. It asks a y/N question before an existing artifact file
// is reset to its template.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer
}

// NewInteractiveApprover creates a new InteractiveApprover reading from
// stdin and writing prompts to stderr.
func NewInteractiveApprover(verbose bool) pgm.Approver {
	return &InteractiveApprover{
		verbose: verbose,
		input:   os.Stdin,
		output:  os.Stderr,
	}
}

// RequestApproval asks whether the named target may be overwritten.
// Anything other than "y" (case-insensitive) is a denial.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	fmt.Fprintf(a.output, "%s already exists. Do you want to reset it? (y/N): ", target)

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if strings.EqualFold(input, "y") {
			return true, nil
		}
		fmt.Fprintf(a.output, "Keeping existing file.\n")
		return false, nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ pgm.Approver = (*InteractiveApprover)(nil)
