package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/reltag/internal/execshell"
	"github.com/temirov/reltag/internal/ui"
)

func TestConsoleCommandEventLoggerRendersLifecycle(testInstance *testing.T) {
	observerCore, observedLogs := observer.New(zap.DebugLevel)
	eventLogger := ui.NewConsoleCommandEventLogger(zap.New(observerCore))

	command := execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        []string{"push", "origin", "v2.1.0"},
			WorkingDirectory: "/tmp/repo",
		},
	}

	eventLogger.CommandStarted(command)
	eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
	eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 1, StandardError: "rejected"})
	eventLogger.CommandExecutionFailed(command, errors.New("git not found"))

	loggedEntries := observedLogs.All()
	require.Len(testInstance, loggedEntries, 4)
	require.Equal(testInstance, "Pushing v2.1.0 to origin from /tmp/repo", loggedEntries[0].Message)
	require.Equal(testInstance, zap.InfoLevel, loggedEntries[0].Level)
	require.Equal(testInstance, "Pushed v2.1.0 to origin from /tmp/repo", loggedEntries[1].Message)
	require.Equal(testInstance, zap.WarnLevel, loggedEntries[2].Level)
	require.Equal(testInstance, "Failed to push v2.1.0 to origin from /tmp/repo (exit code 1: rejected)", loggedEntries[2].Message)
	require.Equal(testInstance, zap.ErrorLevel, loggedEntries[3].Level)
}

func TestConsoleCommandEventLoggerToleratesNilLogger(testInstance *testing.T) {
	eventLogger := ui.NewConsoleCommandEventLogger(nil)
	require.NotPanics(testInstance, func() {
		eventLogger.CommandStarted(execshell.ShellCommand{Name: execshell.CommandGit})
	})
}
