// Package server exposes the Prometheus metrics, a health probe and the
// latest orchestration state over HTTP. It is started by the application when
// --metrics-addr is set and runs alongside every mode.
package server
