// Package dependencies provides default wiring for collaborators shared by
// the reltag commands.
package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/reltag/internal/execshell"
	"github.com/temirov/reltag/internal/gitrepo"
	"github.com/temirov/reltag/internal/ui"
)

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
// Human-readable logging attaches a console event observer in place of structured logs.
func ResolveGitExecutor(existing gitrepo.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (gitrepo.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, humanReadableLogging)
	if creationError != nil {
		return nil, creationError
	}
	if humanReadableLogging {
		shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}
	return shellExecutor, nil
}

// ResolveRepositoryManager returns the provided manager or constructs one from the executor.
func ResolveRepositoryManager(existing *gitrepo.RepositoryManager, executor gitrepo.GitExecutor) (*gitrepo.RepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryManager(executor)
}
