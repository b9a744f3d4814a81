// Package versionsync mirrors the manifest version into the descriptor file
// and stages the descriptor for the in-progress commit. It backs the
// pre-commit "sync" command.
package versionsync
