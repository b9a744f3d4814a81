// Package ui renders user-facing output for the reltag commands: prefixed
// status lines on standard output and human-readable command lifecycle
// messages for console logging.
package ui
