// Package tagging creates and pushes annotated release tags after
// version-changing commits on release branches. It backs the post-commit
// "tag" command.
package tagging
