package versionsync

import "strings"

const (
	defaultRepositoryRootConstant     = "."
	defaultManifestFileNameConstant   = "manifest.json"
	defaultDescriptorFileNameConstant = "pubspec.yaml"
)

// Configuration aggregates settings for the sync command.
type Configuration struct {
	RepositoryRoot     string `mapstructure:"root"`
	ManifestFileName   string `mapstructure:"manifest"`
	DescriptorFileName string `mapstructure:"descriptor"`
}

// DefaultConfiguration supplies baseline values for the sync command.
func DefaultConfiguration() Configuration {
	return Configuration{
		RepositoryRoot:     defaultRepositoryRootConstant,
		ManifestFileName:   defaultManifestFileNameConstant,
		DescriptorFileName: defaultDescriptorFileNameConstant,
	}
}

// DefaultConfigurationValues exposes the sync defaults keyed beneath the
// provided configuration prefix for registration with the configuration loader.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		configurationPrefix + ".root":       defaults.RepositoryRoot,
		configurationPrefix + ".manifest":   defaults.ManifestFileName,
		configurationPrefix + ".descriptor": defaults.DescriptorFileName,
	}
}

// Sanitize trims configured values and backfills defaults for empty entries.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	sanitized.RepositoryRoot = valueOrDefault(configuration.RepositoryRoot, defaultRepositoryRootConstant)
	sanitized.ManifestFileName = valueOrDefault(configuration.ManifestFileName, defaultManifestFileNameConstant)
	sanitized.DescriptorFileName = valueOrDefault(configuration.DescriptorFileName, defaultDescriptorFileNameConstant)
	return sanitized
}

func valueOrDefault(candidateValue string, defaultValue string) string {
	trimmedValue := strings.TrimSpace(candidateValue)
	if len(trimmedValue) == 0 {
		return defaultValue
	}
	return trimmedValue
}
