package ui

import (
	"fmt"
	"io"

	"github.com/vvka-141/pgsqlclient/pkg/pgsqlclient"
)

// ConsoleReporter renders run progress as plain text.
//
// In normal mode every file produces one progress line followed by its
// outcome. In silent mode successful files produce nothing and failed files
// print only their accumulated error text.
type ConsoleReporter struct {
	out    io.Writer
	silent bool
}

// NewConsoleReporter creates a ConsoleReporter writing to out.
func NewConsoleReporter(out io.Writer, silent bool) *ConsoleReporter {
	return &ConsoleReporter{out: out, silent: silent}
}

// Begin prints the run header.
func (r *ConsoleReporter) Begin(total int) {
	if r.silent {
		return
	}
	fmt.Fprint(r.out, "\nPerform:\n")
}

// FileStarted prints the progress prefix for a file.
func (r *ConsoleReporter) FileStarted(index, total int, path string) {
	if r.silent {
		return
	}
	fmt.Fprintf(r.out, "%d/%d: %s", index, total, path)
}

// FileFinished prints the outcome of a file.
func (r *ConsoleReporter) FileFinished(result pgsqlclient.FileResult) {
	if result.Succeeded() {
		if !r.silent {
			fmt.Fprint(r.out, " (SUCCESSFUL).\n")
		}
		return
	}

	if r.silent {
		fmt.Fprint(r.out, result.ErrorText())
		return
	}
	fmt.Fprintf(r.out, " (ERRORs).\nReasons:\n%s\n", result.ErrorText())
}

var _ pgsqlclient.Reporter = (*ConsoleReporter)(nil)
