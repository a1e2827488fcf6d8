package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

const namespace = "memlab"

var (
	// Registry is a dedicated Prometheus registry for all memlab metrics.
	Registry = prometheus.NewRegistry()

	// DemoDuration measures how long each demo routine takes end to end.
	DemoDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "demo_duration_ms",
			Help:      "Duration of demo routines in milliseconds",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		},
		[]string{"demo"}, // bad_string | good_string | bad_file | good_file
	)

	// DemoTotal counts demo runs by routine and outcome.
	DemoTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "demo_total",
			Help:      "Total number of demo runs",
		},
		[]string{"demo", "outcome"},
	)

	// FilesWrittenTotal counts demo files successfully written per variant.
	FilesWrittenTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_written_total",
			Help:      "Number of demo files written",
		},
		[]string{"variant"}, // leaky | released
	)

	// FileErrorsTotal counts per-index failures during file demos.
	FileErrorsTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "file_errors_total",
			Help:      "Number of per-file errors during file demos",
		},
		[]string{"variant"},
	)

	// LeakedHandles reports file handles opened by the last leaky run and
	// never explicitly released.
	LeakedHandles = promauto.With(Registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "leaked_handles",
			Help:      "File handles left open by the most recent leaky file demo",
		},
	)

	// StringBytesTotal accumulates bytes appended during string demos.
	StringBytesTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "string_bytes_total",
			Help:      "Bytes appended to the message buffer during string demos",
		},
		[]string{"variant"}, // concat | builder
	)
)

func init() {
	Registry.MustRegister(prometheus.NewGoCollector())
}

// ObserveDemo records timing and the run counter for a demo routine.
func ObserveDemo(start time.Time, demo, outcome string) {
	elapsed := float64(time.Since(start)) / float64(time.Millisecond)
	DemoDuration.WithLabelValues(demo).Observe(elapsed)
	DemoTotal.WithLabelValues(demo, outcome).Inc()
}

// AddFilesWritten increments the written-file counter for a variant.
func AddFilesWritten(variant string, count int) {
	if count <= 0 {
		return
	}
	FilesWrittenTotal.WithLabelValues(variant).Add(float64(count))
}

// AddFileError records one per-index failure for a variant.
func AddFileError(variant string) {
	FileErrorsTotal.WithLabelValues(variant).Inc()
}

// SetLeakedHandles reports how many handles the last leaky run left open.
func SetLeakedHandles(count int) {
	if count < 0 {
		count = 0
	}
	LeakedHandles.Set(float64(count))
}

// AddStringBytes accumulates appended bytes for a string demo variant.
func AddStringBytes(variant string, n int) {
	if n <= 0 {
		return
	}
	StringBytesTotal.WithLabelValues(variant).Add(float64(n))
}

// Dump renders every metric in the registry to w in the Prometheus text
// exposition format. There is no HTTP endpoint; the console is the only
// surface this tool exposes.
func Dump(w io.Writer) error {
	mfs, err := Registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metric %s: %w", mf.GetName(), err)
		}
	}

	return nil
}
