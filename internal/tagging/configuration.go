package tagging

import "strings"

const (
	defaultRepositoryRootConstant     = "."
	defaultManifestFileNameConstant   = "manifest.json"
	defaultDescriptorFileNameConstant = "pubspec.yaml"
	defaultRemoteNameConstant         = "origin"
)

var defaultReleaseBranches = []string{"main", "master"}

// Configuration aggregates settings for the tag command.
type Configuration struct {
	RepositoryRoot     string   `mapstructure:"root"`
	ManifestFileName   string   `mapstructure:"manifest"`
	DescriptorFileName string   `mapstructure:"descriptor"`
	RemoteName         string   `mapstructure:"remote"`
	ReleaseBranches    []string `mapstructure:"branches"`
}

// DefaultConfiguration supplies baseline values for the tag command.
func DefaultConfiguration() Configuration {
	return Configuration{
		RepositoryRoot:     defaultRepositoryRootConstant,
		ManifestFileName:   defaultManifestFileNameConstant,
		DescriptorFileName: defaultDescriptorFileNameConstant,
		RemoteName:         defaultRemoteNameConstant,
		ReleaseBranches:    append([]string(nil), defaultReleaseBranches...),
	}
}

// DefaultConfigurationValues exposes the tag defaults keyed beneath the
// provided configuration prefix for registration with the configuration loader.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		configurationPrefix + ".root":       defaults.RepositoryRoot,
		configurationPrefix + ".manifest":   defaults.ManifestFileName,
		configurationPrefix + ".descriptor": defaults.DescriptorFileName,
		configurationPrefix + ".remote":     defaults.RemoteName,
		configurationPrefix + ".branches":   defaults.ReleaseBranches,
	}
}

// Sanitize trims configured values and backfills defaults for empty entries.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	sanitized.RepositoryRoot = valueOrDefault(configuration.RepositoryRoot, defaultRepositoryRootConstant)
	sanitized.ManifestFileName = valueOrDefault(configuration.ManifestFileName, defaultManifestFileNameConstant)
	sanitized.DescriptorFileName = valueOrDefault(configuration.DescriptorFileName, defaultDescriptorFileNameConstant)
	sanitized.RemoteName = valueOrDefault(configuration.RemoteName, defaultRemoteNameConstant)
	sanitized.ReleaseBranches = sanitizeBranches(configuration.ReleaseBranches)
	return sanitized
}

func sanitizeBranches(candidateBranches []string) []string {
	sanitizedBranches := make([]string, 0, len(candidateBranches))
	for _, candidateBranch := range candidateBranches {
		trimmedBranch := strings.TrimSpace(candidateBranch)
		if len(trimmedBranch) == 0 {
			continue
		}
		sanitizedBranches = append(sanitizedBranches, trimmedBranch)
	}
	if len(sanitizedBranches) == 0 {
		return append([]string(nil), defaultReleaseBranches...)
	}
	return sanitizedBranches
}

func valueOrDefault(candidateValue string, defaultValue string) string {
	trimmedValue := strings.TrimSpace(candidateValue)
	if len(trimmedValue) == 0 {
		return defaultValue
	}
	return trimmedValue
}
