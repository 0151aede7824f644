// Package metrics holds the Prometheus collectors for structure conversion.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the registry every nanodesign collector is registered on
var Registry = prometheus.NewRegistry()

var (
	buildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nanodesign_builds_total",
			Help: "Number of structures built, by lattice.",
		},
		[]string{"lattice"},
	)
	buildErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nanodesign_build_errors_total",
			Help: "Number of designs that failed to build, by reason.",
		},
		[]string{"reason"},
	)
	basesBuiltTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nanodesign_bases_built_total",
			Help: "Total number of bases created by structure builds.",
		},
	)
	strandsBuiltTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nanodesign_strands_built_total",
			Help: "Total number of strands assembled, by role.",
		},
		[]string{"role"},
	)
	staplesRemovedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nanodesign_staples_removed_total",
			Help: "Total number of staple strands removed by staple operations.",
		},
	)
	staplesGeneratedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nanodesign_staples_generated_total",
			Help: "Total number of staple strands created by maximal staple set generation.",
		},
	)
	sequenceAssignmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nanodesign_sequence_assignments_total",
			Help: "Number of sequence assignments, by source.",
		},
		[]string{"source"},
	)

	buildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nanodesign_build_duration_seconds",
			Help:    "Time taken to build a structure from a design.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	Registry.MustRegister(
		buildsTotal,
		buildErrorsTotal,
		basesBuiltTotal,
		strandsBuiltTotal,
		staplesRemovedTotal,
		staplesGeneratedTotal,
		sequenceAssignmentsTotal,
		buildDuration,
	)
}

// ObserveBuild records a successful build
func ObserveBuild(lattice string, bases, scaffolds, staples int, took time.Duration) {
	buildsTotal.WithLabelValues(lattice).Inc()
	basesBuiltTotal.Add(float64(bases))
	strandsBuiltTotal.WithLabelValues("scaffold").Add(float64(scaffolds))
	strandsBuiltTotal.WithLabelValues("staple").Add(float64(staples))
	buildDuration.Observe(took.Seconds())
}

// ObserveBuildError records a failed build
func ObserveBuildError(reason string) {
	buildErrorsTotal.WithLabelValues(reason).Inc()
}

// ObserveStapleOperation records strands removed and generated by a staple edit
func ObserveStapleOperation(removed, generated int) {
	staplesRemovedTotal.Add(float64(removed))
	staplesGeneratedTotal.Add(float64(generated))
}

// ObserveSequenceAssignment records an assignment from a name or a table
func ObserveSequenceAssignment(source string) {
	sequenceAssignmentsTotal.WithLabelValues(source).Inc()
}

// Handler exposes the registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// WriteTextfile dumps the registry to path for the node exporter textfile collector
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
