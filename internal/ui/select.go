package ui

import (
	"os"

	"github.com/vvka-141/pgm/pkg/pgm"
	"golang.org/x/term"
)

// SelectApprover picks the approver implementation for the current
// invocation. The interactive prompt is only usable when stdin is a
// terminal; otherwise (pipes, CI), approval is forced so commands never
// block waiting for input that cannot arrive.
func SelectApprover(force, verbose bool) pgm.Approver {
	if force || !IsTerminal() {
		return NewForcedApprover(verbose)
	}
	return NewInteractiveApprover(verbose)
}

// IsTerminal reports whether stdin is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
