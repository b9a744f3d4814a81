// Package gitrepo exposes repository-level git operations built on top of the
// execshell executor abstraction.
package gitrepo
