// Package filedemo contrasts unmanaged and deterministic file-handle
// lifetime. Both variants run the same open/write/maybe-release loop; the
// leaky variant skips the release step and swallows per-index errors, the
// released variant closes every handle and aborts on the first failure.
package filedemo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/perfclinic/memlab/internal/metrics"
	"github.com/perfclinic/memlab/internal/platform"
)

const (
	// BadRoot and GoodRoot are the fixed directories the interactive tool
	// writes under. Tests pass their own roots.
	BadRoot  = "badfile"
	GoodRoot = "goodfile"

	// DefaultCount is the fixed number of files each demo writes.
	DefaultCount = 10000

	leakyLine    = "I'm a bad file writer"
	releasedLine = "I'm a good file writer!"
)

// Variant selects the handle-lifetime policy for a demo run.
type Variant int

const (
	// Leaky never releases handles and logs per-index errors without
	// aborting. Open descriptors accumulate until the runtime finalizes
	// the dropped *os.File values on a later collection.
	Leaky Variant = iota

	// Released closes writer and file on every exit path, each iteration.
	Released
)

func (v Variant) String() string {
	if v == Leaky {
		return "leaky"
	}
	return "released"
}

func (v Variant) displayName() string {
	if v == Leaky {
		return "bad"
	}
	return "good"
}

func (v Variant) demoLabel() string {
	if v == Leaky {
		return "bad_file"
	}
	return "good_file"
}

// fileName keeps the two historical naming schemes: the leaky variant uses
// a hyphen, the released one does not. The mismatch is load-bearing for
// fixtures, so both are preserved verbatim.
func (v Variant) fileName(i int) string {
	if v == Leaky {
		return fmt.Sprintf("%d-example.txt", i)
	}
	return fmt.Sprintf("%dexample.txt", i)
}

func (v Variant) line() string {
	if v == Leaky {
		return leakyLine
	}
	return releasedLine
}

// Run writes count fixed-content files under root using the variant's
// handle policy. A failed ensure-dir aborts either variant; per-file
// failures abort only the released variant.
func Run(w io.Writer, v Variant, root string, count int) error {
	if err := EnsureDir(root); err != nil {
		return fmt.Errorf("ensure %s: %w", root, err)
	}

	fmt.Fprintf(w, "Started %s file demo (%d files under %s%c)\n", v.displayName(), count, root, os.PathSeparator)
	start := time.Now()

	written := 0
	for i := 0; i < count; i++ {
		path := platform.LongPathname(filepath.Join(root, v.fileName(i)))

		if err := writeOne(path, v.line(), v == Released); err != nil {
			if v == Released {
				metrics.ObserveDemo(start, v.demoLabel(), "error")
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(w, "file %d failed: %v\n", i, err)
			metrics.AddFileError(v.String())
			continue
		}
		written++
	}

	metrics.AddFilesWritten(v.String(), written)
	metrics.ObserveDemo(start, v.demoLabel(), "success")

	elapsed := time.Since(start).Round(time.Millisecond)
	if v == Leaky {
		metrics.SetLeakedHandles(written)
		fmt.Fprintf(w, "Finished bad file demo in %v (%d files written, %d handles left open)\n", elapsed, written, written)
	} else {
		fmt.Fprintf(w, "Finished good file demo in %v (%d files written, every handle closed)\n", elapsed, written)
	}

	return nil
}

// writeOne opens path create-or-open for read-write, writes one line
// through a buffered writer, and releases the handle only when release is
// set. The flush always happens; the leak under demonstration is the
// descriptor, not the buffer.
func writeOne(path, line string, release bool) (err error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}

	if release {
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
	}

	bw := bufio.NewWriter(f)
	if _, err = bw.WriteString(line + "\n"); err != nil {
		return err
	}
	return bw.Flush()
}

// EnsureDir creates root if it does not exist yet. It checks first, so
// repeated calls are idempotent.
func EnsureDir(root string) error {
	info, err := os.Stat(root)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", root)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.Mkdir(root, 0o755)
}

// RemoveDirs deletes each root recursively if present. Absent roots are
// skipped. A failing removal propagates; there is deliberately no retry or
// recovery here.
func RemoveDirs(roots ...string) error {
	for _, root := range roots {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}
		if err := os.RemoveAll(root); err != nil {
			return fmt.Errorf("remove %s: %w", root, err)
		}
	}
	return nil
}
