package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/reltag/internal/manifest"
)

const (
	testManifestFileNameConstant = "manifest.json"
	testManifestVersionConstant  = "2.1.0"
)

func writeManifestFile(testInstance *testing.T, content string) string {
	testInstance.Helper()
	manifestPath := filepath.Join(testInstance.TempDir(), testManifestFileNameConstant)
	require.NoError(testInstance, os.WriteFile(manifestPath, []byte(content), 0o644))
	return manifestPath
}

func TestLoadReturnsVersionField(testInstance *testing.T) {
	manifestPath := writeManifestFile(testInstance, `{"name": "example", "version": "2.1.0"}`)

	document, loadError := manifest.Load(manifestPath)
	require.NoError(testInstance, loadError)

	versionValue, versionPresent, versionError := document.Version()
	require.NoError(testInstance, versionError)
	require.True(testInstance, versionPresent)
	require.Equal(testInstance, testManifestVersionConstant, versionValue)
}

func TestLoadReportsAbsentVersionField(testInstance *testing.T) {
	manifestPath := writeManifestFile(testInstance, `{"name": "example"}`)

	document, loadError := manifest.Load(manifestPath)
	require.NoError(testInstance, loadError)

	_, versionPresent, versionError := document.Version()
	require.NoError(testInstance, versionError)
	require.False(testInstance, versionPresent)
}

func TestLoadTreatsEmptyVersionAsAbsent(testInstance *testing.T) {
	manifestPath := writeManifestFile(testInstance, `{"version": "  "}`)

	document, loadError := manifest.Load(manifestPath)
	require.NoError(testInstance, loadError)

	_, versionPresent, versionError := document.Version()
	require.NoError(testInstance, versionError)
	require.False(testInstance, versionPresent)
}

func TestLoadRejectsNonStringVersion(testInstance *testing.T) {
	manifestPath := writeManifestFile(testInstance, `{"version": 3}`)

	document, loadError := manifest.Load(manifestPath)
	require.NoError(testInstance, loadError)

	_, versionPresent, versionError := document.Version()
	require.True(testInstance, versionPresent)
	require.Error(testInstance, versionError)
}

func TestLoadFailsOnMissingFile(testInstance *testing.T) {
	_, loadError := manifest.Load(filepath.Join(testInstance.TempDir(), testManifestFileNameConstant))
	require.Error(testInstance, loadError)
}

func TestLoadFailsOnMalformedJSON(testInstance *testing.T) {
	manifestPath := writeManifestFile(testInstance, `{"version": `)

	_, loadError := manifest.Load(manifestPath)
	require.Error(testInstance, loadError)
}
