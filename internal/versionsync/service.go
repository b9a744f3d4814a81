package versionsync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/reltag/internal/manifest"
	"github.com/temirov/reltag/internal/ui"
)

const (
	stagerNotConfiguredMessageConstant         = "descriptor stager not configured"
	repositoryRootRequiredMessageConstant      = "repository root is required"
	manifestFileNameRequiredMessageConstant    = "manifest file name is required"
	descriptorFileNameRequiredMessageConstant  = "descriptor file name is required"
	descriptorVersionLinePatternConstant       = `(?m)^version:[ \t]*(.+)$`
	descriptorVersionLineTemplateConstant      = "version: %s"
	readDescriptorErrorTemplateConstant        = "unable to read descriptor %s: %w"
	statDescriptorErrorTemplateConstant        = "unable to stat descriptor %s: %w"
	writeDescriptorErrorTemplateConstant       = "unable to write descriptor %s: %w"
	stageDescriptorErrorTemplateConstant       = "unable to stage descriptor %s: %w"
	manifestVersionMissingStatusTemplate       = "No version found in %s"
	descriptorVersionMissingStatusTemplate     = "No version found in %s"
	manifestVersionStatusTemplateConstant      = "Manifest version: %s"
	versionsInSyncStatusMessageConstant        = "Versions already in sync"
	syncingVersionStatusTemplateConstant       = "Syncing version: %s -> %s"
	descriptorUpdatedStatusTemplateConstant    = "%s updated and staged"
	syncCompletedLogMessageConstant            = "descriptor version synchronized"
	logFieldManifestVersionConstant            = "manifest_version"
	logFieldPreviousDescriptorVersionConstant  = "previous_descriptor_version"
	logFieldDescriptorPathFieldConstant        = "descriptor_path"
	versionLineMatchSubmatchExpectedConstant   = 4
	descriptorVersionCaptureStartIndexConstant = 2
)

var descriptorVersionLinePattern = regexp.MustCompile(descriptorVersionLinePatternConstant)

// ErrStagerNotConfigured reports a Service constructed without a descriptor stager.
var ErrStagerNotConfigured = errors.New(stagerNotConfiguredMessageConstant)

// DescriptorStager stages files into the in-progress commit.
type DescriptorStager interface {
	StageFile(executionContext context.Context, repositoryPath string, filePath string) error
}

// Dependencies captures collaborators required by the sync service.
type Dependencies struct {
	Stager DescriptorStager
	Logger *zap.Logger
	Output io.Writer
}

// Options configures a single sync run.
type Options struct {
	RepositoryRoot     string
	ManifestFileName   string
	DescriptorFileName string
}

// Result reports the observable outcome of a sync run.
type Result struct {
	ManifestVersion   string
	DescriptorVersion string
	Updated           bool
}

// Service synchronizes the descriptor version field with the manifest version.
type Service struct {
	stager   DescriptorStager
	logger   *zap.Logger
	reporter *ui.StatusReporter
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Stager == nil {
		return nil, ErrStagerNotConfigured
	}

	serviceLogger := dependencies.Logger
	if serviceLogger == nil {
		serviceLogger = zap.NewNop()
	}

	return &Service{
		stager:   dependencies.Stager,
		logger:   serviceLogger,
		reporter: ui.NewStatusReporter(dependencies.Output),
	}, nil
}

// Sync ensures the descriptor's version field matches the manifest's version
// field, rewriting and staging the descriptor only on divergence. Absent
// version fields are reported skips; missing or unparseable files are errors.
func (service *Service) Sync(executionContext context.Context, options Options) (Result, error) {
	if validationError := validateOptions(options); validationError != nil {
		return Result{}, validationError
	}

	manifestPath := filepath.Join(options.RepositoryRoot, options.ManifestFileName)
	manifestDocument, manifestError := manifest.Load(manifestPath)
	if manifestError != nil {
		return Result{}, manifestError
	}

	manifestVersion, versionPresent, versionError := manifestDocument.Version()
	if versionError != nil {
		return Result{}, versionError
	}
	if !versionPresent {
		service.reporter.Warning(manifestVersionMissingStatusTemplate, options.ManifestFileName)
		return Result{}, nil
	}

	service.reporter.Progress(manifestVersionStatusTemplateConstant, manifestVersion)

	descriptorPath := filepath.Join(options.RepositoryRoot, options.DescriptorFileName)
	descriptorContent, readError := os.ReadFile(descriptorPath)
	if readError != nil {
		return Result{}, fmt.Errorf(readDescriptorErrorTemplateConstant, descriptorPath, readError)
	}

	matchIndexes := descriptorVersionLinePattern.FindSubmatchIndex(descriptorContent)
	if len(matchIndexes) < versionLineMatchSubmatchExpectedConstant {
		service.reporter.Warning(descriptorVersionMissingStatusTemplate, options.DescriptorFileName)
		return Result{ManifestVersion: manifestVersion}, nil
	}

	captureStart := matchIndexes[descriptorVersionCaptureStartIndexConstant]
	captureEnd := matchIndexes[descriptorVersionCaptureStartIndexConstant+1]
	descriptorVersion := strings.TrimSpace(string(descriptorContent[captureStart:captureEnd]))

	syncResult := Result{ManifestVersion: manifestVersion, DescriptorVersion: descriptorVersion}
	if descriptorVersion == manifestVersion {
		service.reporter.Success(versionsInSyncStatusMessageConstant)
		return syncResult, nil
	}

	service.reporter.Progress(syncingVersionStatusTemplateConstant, descriptorVersion, manifestVersion)

	// Only the first matched line is replaced; every other byte is preserved.
	replacementLine := fmt.Sprintf(descriptorVersionLineTemplateConstant, manifestVersion)
	updatedContent := make([]byte, 0, len(descriptorContent)+len(replacementLine))
	updatedContent = append(updatedContent, descriptorContent[:matchIndexes[0]]...)
	updatedContent = append(updatedContent, replacementLine...)
	updatedContent = append(updatedContent, descriptorContent[matchIndexes[1]:]...)

	descriptorInfo, statError := os.Stat(descriptorPath)
	if statError != nil {
		return Result{}, fmt.Errorf(statDescriptorErrorTemplateConstant, descriptorPath, statError)
	}
	if writeError := os.WriteFile(descriptorPath, updatedContent, descriptorInfo.Mode().Perm()); writeError != nil {
		return Result{}, fmt.Errorf(writeDescriptorErrorTemplateConstant, descriptorPath, writeError)
	}

	if stageError := service.stager.StageFile(executionContext, options.RepositoryRoot, options.DescriptorFileName); stageError != nil {
		return Result{}, fmt.Errorf(stageDescriptorErrorTemplateConstant, options.DescriptorFileName, stageError)
	}

	service.reporter.Success(descriptorUpdatedStatusTemplateConstant, options.DescriptorFileName)
	service.logger.Info(syncCompletedLogMessageConstant,
		zap.String(logFieldManifestVersionConstant, manifestVersion),
		zap.String(logFieldPreviousDescriptorVersionConstant, descriptorVersion),
		zap.String(logFieldDescriptorPathFieldConstant, descriptorPath),
	)

	syncResult.Updated = true
	return syncResult, nil
}

func validateOptions(options Options) error {
	if len(strings.TrimSpace(options.RepositoryRoot)) == 0 {
		return errors.New(repositoryRootRequiredMessageConstant)
	}
	if len(strings.TrimSpace(options.ManifestFileName)) == 0 {
		return errors.New(manifestFileNameRequiredMessageConstant)
	}
	if len(strings.TrimSpace(options.DescriptorFileName)) == 0 {
		return errors.New(descriptorFileNameRequiredMessageConstant)
	}
	return nil
}
