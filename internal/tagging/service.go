package tagging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/reltag/internal/execshell"
	"github.com/temirov/reltag/internal/manifest"
	"github.com/temirov/reltag/internal/ui"
)

const (
	repositoryNotConfiguredMessageConstant    = "repository manager not configured"
	repositoryRootRequiredMessageConstant     = "repository root is required"
	manifestFileNameRequiredMessageConstant   = "manifest file name is required"
	descriptorFileNameRequiredMessageConstant = "descriptor file name is required"
	remoteNameRequiredMessageConstant         = "remote name is required"
	releaseBranchesRequiredMessageConstant    = "at least one release branch is required"
	tagNamePrefixConstant                     = "v"
	tagMessageTemplateConstant                = "Release version %s"
	previousCommitRevisionConstant            = "HEAD~1"
	headRevisionConstant                      = "HEAD"
	resolveBranchErrorTemplateConstant        = "unable to resolve current branch: %w"
	verifyTagErrorTemplateConstant            = "unable to verify tag %s: %w"
	listChangedFilesErrorTemplateConstant     = "unable to list changed files: %w"
	createTagErrorTemplateConstant            = "unable to create tag %s: %w"
	missingVersionStatusTemplateConstant      = "No version found in %s, skipping tag creation"
	notReleaseBranchStatusTemplateConstant    = "Not on release branch (%s), skipping tag creation"
	tagExistsStatusTemplateConstant           = "Tag %s already exists, skipping"
	noVersionChangesStatusMessageConstant     = "No version changes in this commit, skipping tag creation"
	creatingTagStatusTemplateConstant         = "Creating tag: %s"
	tagCreatedStatusTemplateConstant          = "Tag %s created successfully"
	pushingTagStatusTemplateConstant          = "Pushing tag %s to %s..."
	tagPushedStatusTemplateConstant           = "Tag %s pushed successfully"
	automationNoticeStatusMessageConstant     = "Release automation will now build and publish the release"
	pushFailedStatusTemplateConstant          = "Failed to push tag: %s"
	manualPushHintTemplateConstant            = "You can manually push with: git push %s %s"
	tagCreatedLogMessageConstant              = "release tag created"
	tagPushFailedLogMessageConstant           = "release tag push failed"
	logFieldTagNameConstant                   = "tag_name"
	logFieldBranchNameConstant                = "branch_name"
	logFieldRemoteNameConstant                = "remote_name"
)

// ErrRepositoryNotConfigured reports a Service constructed without a repository manager.
var ErrRepositoryNotConfigured = errors.New(repositoryNotConfiguredMessageConstant)

// ReleaseRepository exposes the git operations consumed by the tagging service.
type ReleaseRepository interface {
	CurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	RevisionExists(executionContext context.Context, repositoryPath string, revision string) (bool, error)
	ChangedFiles(executionContext context.Context, repositoryPath string, baseRevision string, targetRevision string) ([]string, error)
	CreateAnnotatedTag(executionContext context.Context, repositoryPath string, tagName string, tagMessage string) error
	PushTag(executionContext context.Context, repositoryPath string, remoteName string, tagName string) error
}

// Dependencies captures collaborators required by the tagging service.
type Dependencies struct {
	Repository ReleaseRepository
	Logger     *zap.Logger
	Output     io.Writer
}

// Options configures a single tag creation run.
type Options struct {
	RepositoryRoot     string
	ManifestFileName   string
	DescriptorFileName string
	RemoteName         string
	ReleaseBranches    []string
}

// Result reports the observable outcome of a tag creation run.
type Result struct {
	Version string
	TagName string
	Created bool
	Pushed  bool
}

// Service creates annotated release tags for version-changing commits.
type Service struct {
	repository ReleaseRepository
	logger     *zap.Logger
	reporter   *ui.StatusReporter
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Repository == nil {
		return nil, ErrRepositoryNotConfigured
	}

	serviceLogger := dependencies.Logger
	if serviceLogger == nil {
		serviceLogger = zap.NewNop()
	}

	return &Service{
		repository: dependencies.Repository,
		logger:     serviceLogger,
		reporter:   ui.NewStatusReporter(dependencies.Output),
	}, nil
}

// CreateTag evaluates the release gates in order and, when every gate passes,
// creates the annotated tag and pushes it to the configured remote. A failed
// push is reported with a manual recovery hint but is not an error.
func (service *Service) CreateTag(executionContext context.Context, options Options) (Result, error) {
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
		service.reporter.Warning(missingVersionStatusTemplateConstant, options.ManifestFileName)
		return Result{}, nil
	}

	currentBranch, branchError := service.repository.CurrentBranch(executionContext, options.RepositoryRoot)
	if branchError != nil {
		return Result{}, fmt.Errorf(resolveBranchErrorTemplateConstant, branchError)
	}
	if !containsBranch(options.ReleaseBranches, currentBranch) {
		service.reporter.Information(notReleaseBranchStatusTemplateConstant, currentBranch)
		return Result{Version: manifestVersion}, nil
	}

	tagName := tagNamePrefixConstant + manifestVersion
	tagResult := Result{Version: manifestVersion, TagName: tagName}

	tagExists, verifyError := service.repository.RevisionExists(executionContext, options.RepositoryRoot, tagName)
	if verifyError != nil {
		return Result{}, fmt.Errorf(verifyTagErrorTemplateConstant, tagName, verifyError)
	}
	if tagExists {
		service.reporter.Information(tagExistsStatusTemplateConstant, tagName)
		return tagResult, nil
	}

	changedFiles, changedFilesError := service.repository.ChangedFiles(executionContext, options.RepositoryRoot, previousCommitRevisionConstant, headRevisionConstant)
	if changedFilesError != nil {
		return Result{}, fmt.Errorf(listChangedFilesErrorTemplateConstant, changedFilesError)
	}
	if !containsVersionFile(changedFiles, options.ManifestFileName, options.DescriptorFileName) {
		service.reporter.Information(noVersionChangesStatusMessageConstant)
		return tagResult, nil
	}

	service.reporter.Progress(creatingTagStatusTemplateConstant, tagName)
	tagMessage := fmt.Sprintf(tagMessageTemplateConstant, manifestVersion)
	if creationError := service.repository.CreateAnnotatedTag(executionContext, options.RepositoryRoot, tagName, tagMessage); creationError != nil {
		return Result{}, fmt.Errorf(createTagErrorTemplateConstant, tagName, creationError)
	}
	tagResult.Created = true
	service.reporter.Success(tagCreatedStatusTemplateConstant, tagName)
	service.logger.Info(tagCreatedLogMessageConstant,
		zap.String(logFieldTagNameConstant, tagName),
		zap.String(logFieldBranchNameConstant, currentBranch),
	)

	service.reporter.Progress(pushingTagStatusTemplateConstant, tagName, options.RemoteName)
	if pushError := service.repository.PushTag(executionContext, options.RepositoryRoot, options.RemoteName, tagName); pushError != nil {
		service.reporter.Warning(pushFailedStatusTemplateConstant, pushFailureDetail(pushError))
		service.reporter.Detail(manualPushHintTemplateConstant, options.RemoteName, tagName)
		service.logger.Warn(tagPushFailedLogMessageConstant,
			zap.String(logFieldTagNameConstant, tagName),
			zap.String(logFieldRemoteNameConstant, options.RemoteName),
			zap.Error(pushError),
		)
		return tagResult, nil
	}

	tagResult.Pushed = true
	service.reporter.Success(tagPushedStatusTemplateConstant, tagName)
	service.reporter.Information(automationNoticeStatusMessageConstant)
	return tagResult, nil
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
	if len(strings.TrimSpace(options.RemoteName)) == 0 {
		return errors.New(remoteNameRequiredMessageConstant)
	}
	if len(options.ReleaseBranches) == 0 {
		return errors.New(releaseBranchesRequiredMessageConstant)
	}
	return nil
}

func containsBranch(releaseBranches []string, candidateBranch string) bool {
	for _, releaseBranch := range releaseBranches {
		if strings.TrimSpace(releaseBranch) == candidateBranch {
			return true
		}
	}
	return false
}

func containsVersionFile(changedFiles []string, manifestFileName string, descriptorFileName string) bool {
	for _, changedFile := range changedFiles {
		if changedFile == manifestFileName || changedFile == descriptorFileName {
			return true
		}
	}
	return false
}

func pushFailureDetail(pushError error) string {
	commandFailure := execshell.CommandFailedError{}
	if errors.As(pushError, &commandFailure) {
		standardError := strings.TrimSpace(commandFailure.Result.StandardError)
		if len(standardError) > 0 {
			return standardError
		}
	}
	return pushError.Error()
}
