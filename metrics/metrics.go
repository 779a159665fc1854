// Package metrics provides Prometheus metrics for museumwalk conversions
// and vocabulary lookups.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DocumentsTotal tracks converted documents by source and status
	DocumentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "museumwalk",
			Subsystem: "pipeline",
			Name:      "documents_total",
			Help:      "Total number of source documents processed by status",
		},
		[]string{"source", "status"},
	)

	// DocumentDuration tracks per-document conversion time in seconds
	DocumentDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "museumwalk",
			Subsystem: "pipeline",
			Name:      "document_duration_seconds",
			Help:      "Duration of a single document conversion in seconds",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"source"},
	)

	// LookupsTotal tracks vocabulary lookups by the strategy that answered
	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "museumwalk",
			Subsystem: "vocab",
			Name:      "lookups_total",
			Help:      "Total number of vocabulary lookups by answering strategy",
		},
		[]string{"source", "category", "strategy"},
	)

	// CacheHits tracks lookups answered from the per-run cache
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "museumwalk",
			Subsystem: "vocab",
			Name:      "cache_hits_total",
			Help:      "Total number of vocabulary lookups answered from cache",
		},
	)

	// RemoteRequestsTotal tracks SPARQL requests by service and outcome
	RemoteRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "museumwalk",
			Subsystem: "sparql",
			Name:      "requests_total",
			Help:      "Total number of SPARQL requests by service and outcome",
		},
		[]string{"service", "outcome"},
	)

	// RemoteRequestDuration tracks SPARQL request duration in seconds
	RemoteRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "museumwalk",
			Subsystem: "sparql",
			Name:      "request_duration_seconds",
			Help:      "Duration of SPARQL requests in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"service"},
	)
)

// Outcomes recorded for remote requests.
const (
	OutcomeMatch   = "match"
	OutcomeNoMatch = "no_match"
	OutcomeError   = "error"
)

// RecordDocument records one processed document.
func RecordDocument(source, status string, durationSeconds float64) {
	DocumentsTotal.WithLabelValues(source, status).Inc()
	DocumentDuration.WithLabelValues(source).Observe(durationSeconds)
}

// RecordLookup records the strategy that answered a lookup.
func RecordLookup(source, category, strategy string) {
	LookupsTotal.WithLabelValues(source, category, strategy).Inc()
}

// RecordRemoteRequest records one SPARQL request.
func RecordRemoteRequest(service, outcome string, durationSeconds float64) {
	RemoteRequestsTotal.WithLabelValues(service, outcome).Inc()
	RemoteRequestDuration.WithLabelValues(service).Observe(durationSeconds)
}

// WriteTextfile writes the default registry in the Prometheus text format,
// for pickup by a node_exporter textfile collector after a batch run.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
