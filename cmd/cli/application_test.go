package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewApplicationRegistersHookCommands(testInstance *testing.T) {
	application := NewApplication()

	registeredCommandNames := make([]string, 0)
	for _, registeredCommand := range application.rootCommand.Commands() {
		registeredCommandNames = append(registeredCommandNames, registeredCommand.Name())
	}

	require.Contains(testInstance, registeredCommandNames, "sync")
	require.Contains(testInstance, registeredCommandNames, "tag")
}

func TestRootCommandHelpListsSubcommands(testInstance *testing.T) {
	application := NewApplication()
	outputBuffer := &bytes.Buffer{}
	application.rootCommand.SetOut(outputBuffer)
	application.rootCommand.SetErr(outputBuffer)
	application.rootCommand.SetArgs([]string{"--help"})

	require.NoError(testInstance, application.Execute())
	helpOutput := outputBuffer.String()
	require.Contains(testInstance, helpOutput, "sync")
	require.Contains(testInstance, helpOutput, "tag")
}

func TestInitializeConfigurationAppliesDefaults(testInstance *testing.T) {
	application := NewApplication()

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	require.Equal(testInstance, "info", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "console", application.configuration.Common.LogFormat)
	require.True(testInstance, application.humanReadableLoggingEnabled())

	sanitizedSync := application.configuration.Tools.Sync.Sanitize()
	require.Equal(testInstance, ".", sanitizedSync.RepositoryRoot)
	require.Equal(testInstance, "manifest.json", sanitizedSync.ManifestFileName)
	require.Equal(testInstance, "pubspec.yaml", sanitizedSync.DescriptorFileName)

	sanitizedTag := application.configuration.Tools.Tag.Sanitize()
	require.Equal(testInstance, "origin", sanitizedTag.RemoteName)
	require.Equal(testInstance, []string{"main", "master"}, sanitizedTag.ReleaseBranches)
}

func TestInitializeConfigurationHonorsLogFormatFlagOverride(testInstance *testing.T) {
	application := NewApplication()
	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set("log-format", "structured"))

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	require.Equal(testInstance, "structured", application.configuration.Common.LogFormat)
	require.False(testInstance, application.humanReadableLoggingEnabled())
}

func TestEmbeddedDefaultConfigurationIsPresent(testInstance *testing.T) {
	configurationContent, configurationType := EmbeddedDefaultConfiguration()
	require.NotEmpty(testInstance, configurationContent)
	require.Equal(testInstance, "yaml", configurationType)
}
