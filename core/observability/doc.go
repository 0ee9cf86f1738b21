// Package observability holds the Prometheus collectors for folder syncs, the snapshot
// cache and remote storage retries, and the fiber handler that serves them on /metrics.
package observability
