// Package logging provides a unified logging interface for the response
// comparison dashboard. It abstracts the underlying logging implementation,
// allowing consistent logging across components while supporting multiple
// backends: structured JSON or console output through zerolog, and plain
// prefixed lines through the standard library logger.
package logging
