// Package heap exposes the force-collection command. Go has a tracing
// collector, so this is a real operation, not an advisory stub; it also
// finalizes any *os.File handles a leaky demo dropped without closing.
package heap

import (
	"fmt"
	"io"
	"runtime"
)

// Collect runs a full garbage collection and reports the heap delta.
func Collect(w io.Writer) {
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	runtime.GC()
	runtime.ReadMemStats(&after)

	fmt.Fprintf(w, "Forced collection: heap in use %s -> %s (freed %s, %d collections total)\n",
		humanBytes(before.HeapInuse),
		humanBytes(after.HeapInuse),
		humanBytes(delta(before.HeapInuse, after.HeapInuse)),
		after.NumGC)
}

func delta(before, after uint64) uint64 {
	if after >= before {
		return 0
	}
	return before - after
}

func humanBytes(n uint64) string {
	const (
		kib = 1 << 10
		mib = 1 << 20
	)
	switch {
	case n >= mib:
		return fmt.Sprintf("%.1f MiB", float64(n)/mib)
	case n >= kib:
		return fmt.Sprintf("%.1f KiB", float64(n)/kib)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
