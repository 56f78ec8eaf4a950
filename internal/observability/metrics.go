package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	PagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "reviews", Name: "pages_total", Help: "Listing pages by outcome."},
		[]string{"outcome"}, // ok|transport_failure|missing_payload
	)
	ItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "reviews", Name: "items_total", Help: "Review items by outcome."},
		[]string{"outcome"}, // ingested|malformed_item
	)
	FetchLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "reviews", Name: "fetch_duration_seconds",
			Help:    "Listing page fetch duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
	CleanedRows = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "reviews", Name: "cleaned_rows", Help: "Rows left after cleaning and dedup."},
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(PagesTotal, ItemsTotal, FetchLatency, CleanedRows)
	return reg
}

func ObservePage(outcome string) { PagesTotal.WithLabelValues(outcome).Inc() }

func ObserveItem(outcome string) { ItemsTotal.WithLabelValues(outcome).Inc() }

func ObserveFetch(d time.Duration) { FetchLatency.Observe(d.Seconds()) }

func SetCleanedRows(n int) { CleanedRows.Set(float64(n)) }

// WriteTextfile dumps the registry in the node-exporter textfile format.
// An empty path disables the export.
func WriteTextfile(path string, reg *prometheus.Registry) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, reg)
}
