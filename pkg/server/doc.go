// Package server hosts the map-processing pipeline.
//
// It owns the processor registry, the compiled map instances, and the
// observability plumbing (metrics, query log), and exposes a small HTTP
// admin surface:
//
//	POST /eval     evaluate the configured map blocks against a request
//	GET  /healthz  liveness probe
//	GET  /metrics  Prometheus metrics (when enabled)
//
// Map blocks can be hot-reloaded: the Watcher observes the configuration
// file and swaps the compiled instances atomically, so in-flight requests
// always see a consistent set.
package server
