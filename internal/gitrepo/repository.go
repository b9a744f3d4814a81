package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/reltag/internal/execshell"
)

const (
	executorNotConfiguredMessageConstant = "git executor not configured"
	revParseSubcommandConstant           = "rev-parse"
	abbrevRefFlagConstant                = "--abbrev-ref"
	verifyFlagConstant                   = "--verify"
	quietFlagConstant                    = "--quiet"
	headReferenceConstant                = "HEAD"
	diffSubcommandConstant               = "diff"
	nameOnlyFlagConstant                 = "--name-only"
	addSubcommandConstant                = "add"
	tagSubcommandConstant                = "tag"
	annotateFlagConstant                 = "-a"
	messageFlagConstant                  = "-m"
	pushSubcommandConstant               = "push"
	changedFileSeparatorConstant         = "\n"
)

// ErrExecutorNotConfigured reports a RepositoryManager constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// GitExecutor exposes the subset of shell execution used by the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager performs git operations against a repository working tree.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager validates the executor dependency and constructs a RepositoryManager.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// CurrentBranch resolves the name of the currently checked-out branch.
func (manager *RepositoryManager) CurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{revParseSubcommandConstant, abbrevRefFlagConstant, headReferenceConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// RevisionExists reports whether the provided revision name resolves in the repository.
// A non-zero rev-parse exit code means the revision does not exist and is not an error.
func (manager *RepositoryManager) RevisionExists(executionContext context.Context, repositoryPath string, revision string) (bool, error) {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{revParseSubcommandConstant, verifyFlagConstant, quietFlagConstant, revision},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		commandFailure := execshell.CommandFailedError{}
		if errors.As(executionError, &commandFailure) {
			return false, nil
		}
		return false, executionError
	}
	return true, nil
}

// ChangedFiles lists the paths modified between the base and target revisions.
// A failing diff (for example a root commit without a parent) yields an empty list.
func (manager *RepositoryManager) ChangedFiles(executionContext context.Context, repositoryPath string, baseRevision string, targetRevision string) ([]string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{diffSubcommandConstant, nameOnlyFlagConstant, baseRevision, targetRevision},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		commandFailure := execshell.CommandFailedError{}
		if errors.As(executionError, &commandFailure) {
			return nil, nil
		}
		return nil, executionError
	}

	changedFiles := make([]string, 0)
	for _, changedLine := range strings.Split(executionResult.StandardOutput, changedFileSeparatorConstant) {
		trimmedLine := strings.TrimSpace(changedLine)
		if len(trimmedLine) == 0 {
			continue
		}
		changedFiles = append(changedFiles, trimmedLine)
	}
	return changedFiles, nil
}

// StageFile adds the provided path to the staging area of the in-progress commit.
func (manager *RepositoryManager) StageFile(executionContext context.Context, repositoryPath string, filePath string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{addSubcommandConstant, filePath},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// CreateAnnotatedTag creates an annotated tag carrying the provided message.
func (manager *RepositoryManager) CreateAnnotatedTag(executionContext context.Context, repositoryPath string, tagName string, tagMessage string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{tagSubcommandConstant, annotateFlagConstant, tagName, messageFlagConstant, tagMessage},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// PushTag pushes the provided tag to the named remote.
func (manager *RepositoryManager) PushTag(executionContext context.Context, repositoryPath string, remoteName string, tagName string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{pushSubcommandConstant, remoteName, tagName},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}
