// Package strdemo contrasts unbounded string concatenation with a single
// growable buffer. The bad variant rebinds an immutable string every
// iteration, so each step copies the whole accumulated value; the good
// variant appends into one strings.Builder.
package strdemo

import (
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/perfclinic/memlab/internal/metrics"
)

// Iterations is the fixed loop count for both variants.
const Iterations = 10000

// sink keeps the demo result reachable so the compiler cannot elide the
// allocations the demo exists to show.
var sink string

// RunBad builds a string by rebinding it through n concatenations.
// O(n²) work, one transient allocation of growing size per iteration.
func RunBad(w io.Writer, n int) {
	fmt.Fprintf(w, "Started bad string demo (%d concatenations)\n", n)

	start := time.Now()
	allocated := measureAlloc(func() {
		sink = concat(n)
	})

	metrics.AddStringBytes("concat", len(sink))
	metrics.ObserveDemo(start, "bad_string", "success")
	fmt.Fprintf(w, "Finished bad string demo in %v (%d bytes allocated)\n",
		time.Since(start).Round(time.Microsecond), allocated)
}

// RunGood builds the same string by appending into one mutable buffer.
// Amortized O(n) work via growth doubling.
func RunGood(w io.Writer, n int) {
	fmt.Fprintf(w, "Started good string demo (%d appends)\n", n)

	start := time.Now()
	allocated := measureAlloc(func() {
		sink = build(n)
	})

	metrics.AddStringBytes("builder", len(sink))
	metrics.ObserveDemo(start, "good_string", "success")
	fmt.Fprintf(w, "Finished good string demo in %v (%d bytes allocated)\n",
		time.Since(start).Round(time.Microsecond), allocated)
}

func concat(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s = s + strconv.Itoa(i)
	}
	return s
}

func build(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(strconv.Itoa(i))
	}
	return b.String()
}

// measureAlloc reports how many bytes fn allocated, by TotalAlloc delta.
func measureAlloc(fn func()) uint64 {
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	fn()
	runtime.ReadMemStats(&after)
	return after.TotalAlloc - before.TotalAlloc
}
