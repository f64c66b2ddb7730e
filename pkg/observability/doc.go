// Package observability packages Prometheus collectors as story lifecycle
// hooks, so hosts can meter story runs without touching step code.
package observability
