// Package metrics holds the Prometheus collectors of the export service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weyl"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Number of HTTP requests by route and status code."},
		[]string{"route", "code"},
	)
	RenderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: namespace, Name: "render_duration_seconds", Help: "Time spent rendering an artifact.", Buckets: prometheus.DefBuckets},
		[]string{"artifact"},
	)
	RenderErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "render_errors_total", Help: "Number of failed artifact renders by artifact and kind."},
		[]string{"artifact", "kind"},
	)
	ReducerFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "reducer_fallbacks_total", Help: "Number of bodies emitted unreduced because of malformed component markup."},
	)
	IndexedDocuments = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: namespace, Name: "indexed_documents", Help: "Number of public documents in the last loaded index, by collection."},
		[]string{"collection"},
	)
	ExportRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "export_runs_total", Help: "Number of static export runs by result."},
		[]string{"result"},
	)
	LogRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "log_records_total", Help: "Number of warning and error log records by level."},
		[]string{"level"},
	)
)

// RegisterCollectors registers every collector with reg.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(RenderDuration)
	reg.MustRegister(RenderErrors)
	reg.MustRegister(ReducerFallbacks)
	reg.MustRegister(IndexedDocuments)
	reg.MustRegister(ExportRuns)
	reg.MustRegister(LogRecords)
}
