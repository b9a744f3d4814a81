package versionsync

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/reltag/internal/dependencies"
	"github.com/temirov/reltag/internal/gitrepo"
)

const (
	commandUseConstant                    = "sync"
	commandShortDescriptionConstant       = "Mirror the manifest version into the descriptor file"
	commandLongDescriptionConstant        = "sync reads the manifest's version field, rewrites the descriptor's version: line when it diverges, and stages the descriptor for the in-progress commit. Intended to run as a pre-commit hook."
	commandExecutionErrorTemplateConstant = "version sync failed: %w"
	unexpectedArgumentsMessageConstant    = "sync does not accept positional arguments"
	flagRootNameConstant                  = "root"
	flagRootDescriptionConstant           = "Repository root containing the manifest and descriptor"
	flagManifestNameConstant              = "manifest"
	flagManifestDescriptionConstant       = "Manifest file name relative to the repository root"
	flagDescriptorNameConstant            = "descriptor"
	flagDescriptorDescriptionConstant     = "Descriptor file name relative to the repository root"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the Cobra command for version synchronization.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  gitrepo.GitExecutor
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() Configuration
}

// Build constructs the sync command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagRootNameConstant, "", flagRootDescriptionConstant)
	command.Flags().String(flagManifestNameConstant, "", flagManifestDescriptionConstant)
	command.Flags().String(flagDescriptorNameConstant, "", flagDescriptorDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New(unexpectedArgumentsMessageConstant)
	}

	options := builder.resolveOptions(command)
	logger := resolveLogger(builder.LoggerProvider)

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := dependencies.ResolveRepositoryManager(nil, gitExecutor)
	if managerError != nil {
		return managerError
	}

	service, serviceError := NewService(Dependencies{
		Stager: repositoryManager,
		Logger: logger,
		Output: command.OutOrStdout(),
	})
	if serviceError != nil {
		return serviceError
	}

	if _, syncError := service.Sync(command.Context(), options); syncError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, syncError)
	}

	return nil
}

func (builder *CommandBuilder) resolveOptions(command *cobra.Command) Options {
	configuration := builder.resolveConfiguration()

	repositoryRoot := configuration.RepositoryRoot
	manifestFileName := configuration.ManifestFileName
	descriptorFileName := configuration.DescriptorFileName

	if command != nil {
		if flagValue := changedFlagValue(command, flagRootNameConstant); len(flagValue) > 0 {
			repositoryRoot = flagValue
		}
		if flagValue := changedFlagValue(command, flagManifestNameConstant); len(flagValue) > 0 {
			manifestFileName = flagValue
		}
		if flagValue := changedFlagValue(command, flagDescriptorNameConstant); len(flagValue) > 0 {
			descriptorFileName = flagValue
		}
	}

	return Options{
		RepositoryRoot:     repositoryRoot,
		ManifestFileName:   manifestFileName,
		DescriptorFileName: descriptorFileName,
	}
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func changedFlagValue(command *cobra.Command, flagName string) string {
	if !command.Flags().Changed(flagName) {
		return ""
	}
	flagValue, flagError := command.Flags().GetString(flagName)
	if flagError != nil {
		return ""
	}
	return strings.TrimSpace(flagValue)
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
