// Package metrics records named duration and count measurements for
// catalogue operations.
package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation names recorded by the catalogue.
const (
	OpListProductsN1        = "catalog.list.products.with.n1.bug"
	OpListProductsOptimized = "catalog.list.products.optimized"
	OpListProducts          = "catalog.list.products"
	OpComparePerformance    = "catalog.products.performance.comparison"
	OpStoreFindAll          = "catalog.store.find.all"
	OpStoreFindAllJoined    = "catalog.store.find.all.with.reviews"
	OpStoreFindReviews      = "catalog.store.find.reviews.by.product"
)

// Recorder receives explicit instrumentation calls.
type Recorder interface {
	// ObserveDuration records how long a named operation took.
	ObserveDuration(operation string, d time.Duration)

	// IncCount increments the invocation counter of a named operation.
	IncCount(operation string)
}

type nopRecorder struct{}

// Nop returns a Recorder that discards all measurements.
func Nop() Recorder {
	return nopRecorder{}
}

func (nopRecorder) ObserveDuration(string, time.Duration) {}
func (nopRecorder) IncCount(string)                       {}

// prometheusRecorder exports measurements as prometheus series labelled by operation.
type prometheusRecorder struct {
	durations *prometheus.HistogramVec
	counts    *prometheus.CounterVec
}

// NewPrometheusRecorder creates a Recorder and registers its collectors with reg.
func NewPrometheusRecorder(reg prometheus.Registerer) Recorder {
	r := &prometheusRecorder{
		durations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_operation_duration_seconds",
				Help:    "Duration of catalogue operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		counts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_operation_total",
				Help: "Number of catalogue operation invocations",
			},
			[]string{"operation"},
		),
	}
	reg.MustRegister(r.durations, r.counts)
	return r
}

func (r *prometheusRecorder) ObserveDuration(operation string, d time.Duration) {
	r.durations.WithLabelValues(LabelValue(operation)).Observe(d.Seconds())
}

func (r *prometheusRecorder) IncCount(operation string) {
	r.counts.WithLabelValues(LabelValue(operation)).Inc()
}

// LabelValue converts a dotted operation name to its label form.
func LabelValue(operation string) string {
	return strings.ReplaceAll(operation, ".", "_")
}

// Time records the duration and count of a single operation.
//
//	defer metrics.Time(recorder, metrics.OpStoreFindAll)()
func Time(r Recorder, operation string) func() {
	start := time.Now()
	return func() {
		r.ObserveDuration(operation, time.Since(start))
		r.IncCount(operation)
	}
}
