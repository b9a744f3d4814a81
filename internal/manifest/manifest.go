package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const (
	versionKeyConstant                     = "version"
	readManifestErrorTemplateConstant      = "unable to read manifest %s: %w"
	parseManifestErrorTemplateConstant     = "unable to parse manifest %s: %w"
	versionNotTextualErrorTemplateConstant = "manifest %s field %s is not a string"
)

// Document represents a parsed manifest file.
type Document struct {
	path   string
	fields map[string]any
}

// Load reads and parses the manifest at the provided path.
// Missing files and malformed JSON are hard errors; field absence is not.
func Load(manifestPath string) (Document, error) {
	manifestContent, readError := os.ReadFile(manifestPath)
	if readError != nil {
		return Document{}, fmt.Errorf(readManifestErrorTemplateConstant, manifestPath, readError)
	}

	parsedFields := map[string]any{}
	if unmarshalError := json.Unmarshal(manifestContent, &parsedFields); unmarshalError != nil {
		return Document{}, fmt.Errorf(parseManifestErrorTemplateConstant, manifestPath, unmarshalError)
	}

	return Document{path: manifestPath, fields: parsedFields}, nil
}

// Version returns the manifest version string and whether the field is present.
// An empty version is treated as absent; a non-string value is an error.
func (document Document) Version() (string, bool, error) {
	rawVersion, versionPresent := document.fields[versionKeyConstant]
	if !versionPresent {
		return "", false, nil
	}

	versionText, versionIsText := rawVersion.(string)
	if !versionIsText {
		return "", true, fmt.Errorf(versionNotTextualErrorTemplateConstant, document.path, versionKeyConstant)
	}

	trimmedVersion := strings.TrimSpace(versionText)
	if len(trimmedVersion) == 0 {
		return "", false, nil
	}

	return trimmedVersion, true, nil
}
