package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "safearchive",
		Name:      "http_requests_total",
		Help:      "HTTP requests handled, by route and status code.",
	}, []string{"route", "code"})

	BackupBytesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "safearchive",
		Name:      "backup_bytes_total",
		Help:      "Bytes written into stored archives.",
	})

	ArchivesStoredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "safearchive",
		Name:      "archives_stored_total",
		Help:      "Archives written to the backup store.",
	})

	ArchivesRemovedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "safearchive",
		Name:      "archives_removed_total",
		Help:      "Archives removed from the backup store, by reason.",
	}, []string{"reason"})

	UploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "safearchive",
		Name:      "uploads_total",
		Help:      "Off-site uploads attempted, by provider and result.",
	}, []string{"provider", "result"})
)

// Registry is the registry all SafeArchive metrics register on.
var Registry = NewRegistry(true)

// NewRegistry creates a new registry holding the SafeArchive metrics.
// If collectProcessMetrics is true, the Go and process collectors are
// registered as well.
func NewRegistry(collectProcessMetrics bool) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	if collectProcessMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	registry.MustRegister(
		RequestsTotal,
		BackupBytesTotal,
		ArchivesStoredTotal,
		ArchivesRemovedTotal,
		UploadsTotal,
	)
	return registry
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
