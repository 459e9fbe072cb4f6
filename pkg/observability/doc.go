/*
Package observability provides Prometheus metrics and lifecycle hooks for the
techseo engine.

Hooks log every schema and cross-post event through slog and count it in the
registered collectors; the HTTP adapter records request counts and latencies
through the same Metrics value.
*/
package observability
