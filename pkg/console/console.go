// Package console implements the interactive command loop. It reads one
// line at a time, normalizes it, and dispatches against a fixed literal
// command set. The loop ends only on "x" or end of input.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/perfclinic/memlab/internal/metrics"
	"github.com/perfclinic/memlab/pkg/filedemo"
	"github.com/perfclinic/memlab/pkg/heap"
	"github.com/perfclinic/memlab/pkg/strdemo"
	"github.com/perfclinic/memlab/pkg/verify"
)

const unknownHint = `Unknown command. Type "list" to see available commands.`

const listing = `Available commands:
  list              show this listing
  bad string        concatenate 10000 strings by rebinding an immutable value
  good string       append 10000 strings into one growable buffer
  bad file          write 10000 files, leaking every handle
  good file         write 10000 files, closing every handle
  clear file        delete the goodfile/ and badfile/ directories
  force collection  run the garbage collector now
  stats             print the metrics collected so far
  verify good       print a Merkle root over goodfile/
  verify bad        print a Merkle root over badfile/
  x                 exit`

// Loop is one interactive session. Fields are set by New to production
// defaults; tests override the roots and counts.
type Loop struct {
	In  io.Reader
	Out io.Writer

	BadRoot    string
	GoodRoot   string
	Iterations int
	FileCount  int
}

// New returns a session over in/out with the fixed production directories
// and iteration counts.
func New(in io.Reader, out io.Writer) *Loop {
	return &Loop{
		In:         in,
		Out:        out,
		BadRoot:    filedemo.BadRoot,
		GoodRoot:   filedemo.GoodRoot,
		Iterations: strdemo.Iterations,
		FileCount:  filedemo.DefaultCount,
	}
}

// Run prints the listing, clears leftovers from earlier sessions, and
// serves commands until "x" or EOF. Errors from the released file demo and
// from cleanup propagate and end the session; the leaky demo handles its
// own per-index failures.
func (l *Loop) Run() error {
	fmt.Fprintln(l.Out, listing)

	if err := filedemo.RemoveDirs(l.BadRoot, l.GoodRoot); err != nil {
		return fmt.Errorf("startup cleanup: %w", err)
	}

	scanner := bufio.NewScanner(l.In)
	for {
		fmt.Fprint(l.Out, "> ")
		if !scanner.Scan() {
			// End of input is treated exactly like "x".
			fmt.Fprintln(l.Out)
			return scanner.Err()
		}

		cmd := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch cmd {
		case "x":
			return nil
		case "list":
			fmt.Fprintln(l.Out, listing)
		case "bad string":
			strdemo.RunBad(l.Out, l.Iterations)
		case "good string":
			strdemo.RunGood(l.Out, l.Iterations)
		case "force collection":
			heap.Collect(l.Out)
		case "bad file":
			if err := filedemo.Run(l.Out, filedemo.Leaky, l.BadRoot, l.FileCount); err != nil {
				return err
			}
		case "good file":
			if err := filedemo.Run(l.Out, filedemo.Released, l.GoodRoot, l.FileCount); err != nil {
				return err
			}
		case "clear file":
			if err := filedemo.RemoveDirs(l.BadRoot, l.GoodRoot); err != nil {
				return err
			}
			fmt.Fprintln(l.Out, "Demo directories removed.")
		case "stats":
			if err := metrics.Dump(l.Out); err != nil {
				return err
			}
		case "verify good":
			l.report(l.GoodRoot)
		case "verify bad":
			l.report(l.BadRoot)
		default:
			fmt.Fprintln(l.Out, unknownHint)
		}
	}
}

// report prints a verification summary. Verification is a read-only
// inspection aid, so a failure (usually a missing directory) is reported
// and the loop keeps going.
func (l *Loop) report(root string) {
	if err := verify.Report(l.Out, root); err != nil {
		fmt.Fprintf(l.Out, "verify: %v\n", err)
	}
}
