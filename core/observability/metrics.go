package observability

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SyncTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_sync_total",
			Help: "Folder syncs by outcome (ok, partial, failed)",
		},
		[]string{"folder", "outcome"},
	)

	SyncDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_sync_duration_seconds",
			Help:    "Wall time of folder syncs",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"folder"},
	)

	CacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_cache_requests_total",
			Help: "Snapshot lookups by result (hit, miss, refreshed, stale, failed)",
		},
		[]string{"folder", "result"},
	)

	SnapshotRecords = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "inventory_snapshot_records",
			Help: "Records in the current snapshot of each folder",
		},
		[]string{"folder"},
	)

	RemoteRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_remote_retries_total",
			Help: "Retried remote storage calls",
		},
		[]string{"operation"},
	)
)

var registerOnce sync.Once

// Register adds all collectors to reg. Subsequent calls are no-ops.
func Register(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(SyncTotal, SyncDuration, CacheRequests, SnapshotRecords, RemoteRetries)
	})
}

// Handler exposes the default Prometheus gatherer as a fiber handler.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
