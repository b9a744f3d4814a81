package gitrepo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/reltag/internal/execshell"
	"github.com/temirov/reltag/internal/gitrepo"
)

const (
	testRepositoryPathConstant = "/tmp/repo"
	testRemoteNameConstant     = "origin"
	testTagNameConstant        = "v2.1.0"
	testTagMessageConstant     = "Release version 2.1.0"
)

type scriptedGitExecutor struct {
	results          []execshell.ExecutionResult
	failures         []error
	recordedCommands []execshell.CommandDetails
}

func (executor *scriptedGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, details)

	var executionResult execshell.ExecutionResult
	if len(executor.results) > 0 {
		executionResult = executor.results[0]
		executor.results = executor.results[1:]
	}

	var executionFailure error
	if len(executor.failures) > 0 {
		executionFailure = executor.failures[0]
		executor.failures = executor.failures[1:]
	}
	if executionFailure != nil {
		return execshell.ExecutionResult{}, executionFailure
	}
	return executionResult, nil
}

func TestNewRepositoryManagerRequiresExecutor(testInstance *testing.T) {
	manager, creationError := gitrepo.NewRepositoryManager(nil)
	require.Nil(testInstance, manager)
	require.ErrorIs(testInstance, creationError, gitrepo.ErrExecutorNotConfigured)
}

func TestCurrentBranchTrimsOutput(testInstance *testing.T) {
	executor := &scriptedGitExecutor{results: []execshell.ExecutionResult{{StandardOutput: "main\n"}}}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	branchName, branchError := manager.CurrentBranch(context.Background(), testRepositoryPathConstant)
	require.NoError(testInstance, branchError)
	require.Equal(testInstance, "main", branchName)
	require.Equal(testInstance, []string{"rev-parse", "--abbrev-ref", "HEAD"}, executor.recordedCommands[0].Arguments)
	require.Equal(testInstance, testRepositoryPathConstant, executor.recordedCommands[0].WorkingDirectory)
}

func TestRevisionExistsInterpretsExitCodes(testInstance *testing.T) {
	testCases := []struct {
		name           string
		failure        error
		expectedExists bool
		expectError    bool
	}{
		{
			name:           "resolvable_revision",
			failure:        nil,
			expectedExists: true,
		},
		{
			name:           "unresolvable_revision",
			failure:        execshell.CommandFailedError{Result: execshell.ExecutionResult{ExitCode: 1}},
			expectedExists: false,
		},
		{
			name:        "execution_failure",
			failure:     execshell.CommandExecutionError{Cause: errors.New("git missing")},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &scriptedGitExecutor{failures: []error{testCase.failure}}
			manager, creationError := gitrepo.NewRepositoryManager(executor)
			require.NoError(testInstance, creationError)

			revisionExists, existenceError := manager.RevisionExists(context.Background(), testRepositoryPathConstant, testTagNameConstant)
			if testCase.expectError {
				require.Error(testInstance, existenceError)
				return
			}
			require.NoError(testInstance, existenceError)
			require.Equal(testInstance, testCase.expectedExists, revisionExists)
		})
	}
}

func TestChangedFilesSplitsAndFiltersOutput(testInstance *testing.T) {
	executor := &scriptedGitExecutor{results: []execshell.ExecutionResult{{StandardOutput: "manifest.json\n\npubspec.yaml\n"}}}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	changedFiles, changedFilesError := manager.ChangedFiles(context.Background(), testRepositoryPathConstant, "HEAD~1", "HEAD")
	require.NoError(testInstance, changedFilesError)
	require.Equal(testInstance, []string{"manifest.json", "pubspec.yaml"}, changedFiles)
	require.Equal(testInstance, []string{"diff", "--name-only", "HEAD~1", "HEAD"}, executor.recordedCommands[0].Arguments)
}

func TestChangedFilesTreatsDiffFailureAsEmpty(testInstance *testing.T) {
	executor := &scriptedGitExecutor{failures: []error{execshell.CommandFailedError{Result: execshell.ExecutionResult{ExitCode: 128}}}}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	changedFiles, changedFilesError := manager.ChangedFiles(context.Background(), testRepositoryPathConstant, "HEAD~1", "HEAD")
	require.NoError(testInstance, changedFilesError)
	require.Empty(testInstance, changedFiles)
}

func TestTagAndPushCommandShapes(testInstance *testing.T) {
	executor := &scriptedGitExecutor{}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	require.NoError(testInstance, manager.CreateAnnotatedTag(context.Background(), testRepositoryPathConstant, testTagNameConstant, testTagMessageConstant))
	require.NoError(testInstance, manager.PushTag(context.Background(), testRepositoryPathConstant, testRemoteNameConstant, testTagNameConstant))
	require.NoError(testInstance, manager.StageFile(context.Background(), testRepositoryPathConstant, "pubspec.yaml"))

	require.Equal(testInstance, []string{"tag", "-a", testTagNameConstant, "-m", testTagMessageConstant}, executor.recordedCommands[0].Arguments)
	require.Equal(testInstance, []string{"push", testRemoteNameConstant, testTagNameConstant}, executor.recordedCommands[1].Arguments)
	require.Equal(testInstance, []string{"add", "pubspec.yaml"}, executor.recordedCommands[2].Arguments)
}
