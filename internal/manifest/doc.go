// Package manifest reads the JSON manifest that serves as the single source
// of truth for the product version.
package manifest
