/*
Package observability provides tools for monitoring the Digits engine.

Metrics exposes Prometheus collectors fed by the engine's lifecycle hooks:
query counts per kind and cache outcome, search latency, and the number of
states expanded by each search.
*/
package observability
