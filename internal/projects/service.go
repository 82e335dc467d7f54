package projects

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	repoerrors "github.com/temirov/workon/internal/repos/errors"
	"github.com/temirov/workon/internal/repos/shared"
)

const (
	inspectorMissingMessageConstant          = "repository inspector not configured"
	editorExecutorMissingMessageConstant     = "editor executor not configured"
	fileSystemMissingMessageConstant         = "filesystem not configured"
	discovererMissingMessageConstant         = "workspace discoverer not configured"
	sourceMissingMessageConstant             = "source location must be configured to start a project"
	workspaceDirectoryMissingMessageConstant = "workspace directory must be provided"
	settingUpMessageConstant                 = "Setting up project"
	openingMessageConstant                   = "Opening project"
	finishingMessageConstant                 = "Finishing up project"
	removingMessageConstant                  = "Removing project directory"
	deletingStrayFileMessageConstant         = "Deleting stray file"
	projectSkippedMessageConstant            = "Project left in place"
	strayFileDeletionFailedMessageConstant   = "Failed to delete stray file"
	projectMissingTemplateConstant           = "No project named %q found under your working directory"
	projectNotInWorkspaceTemplateConstant    = "%q not found in %q"
	workspaceUnreadableMessageConstant       = "Oops, can't access working directory"
	projectRemovalFailedMessageConstant      = "Oops, can't remove project directory"
	projectPathResolutionMessageConstant     = "Oops, can't resolve project directory"
	removedReportTemplateConstant            = "REMOVED: %s\n"
	skippedReportTemplateConstant            = "SKIPPED: %s: %s\n"
	deletedReportTemplateConstant            = "DELETED: %s\n"
	logFieldProjectConstant                  = "project"
	logFieldPathConstant                     = "path"
	logFieldSourceURLConstant                = "source_url"
	logFieldFailureKindConstant              = "failure_kind"
)

// ErrInspectorNotConfigured indicates the repository inspector dependency was missing.
var ErrInspectorNotConfigured = errors.New(inspectorMissingMessageConstant)

// ErrEditorExecutorNotConfigured indicates the editor executor dependency was missing.
var ErrEditorExecutorNotConfigured = errors.New(editorExecutorMissingMessageConstant)

// ErrFileSystemNotConfigured indicates the filesystem dependency was missing.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// ErrDiscovererNotConfigured indicates the workspace discoverer dependency was missing.
var ErrDiscovererNotConfigured = errors.New(discovererMissingMessageConstant)

// ErrSourceNotConfigured indicates start was invoked without a source location.
var ErrSourceNotConfigured = errors.New(sourceMissingMessageConstant)

// ErrWorkspaceDirectoryRequired indicates an empty workspace directory.
var ErrWorkspaceDirectoryRequired = errors.New(workspaceDirectoryMissingMessageConstant)

// EnvironmentLookup resolves environment variables.
type EnvironmentLookup func(key string) (string, bool)

// ServiceDependencies enumerates collaborators required by the lifecycle service.
type ServiceDependencies struct {
	Logger            *zap.Logger
	Inspector         shared.RepositoryInspector
	EditorExecutor    shared.EditorExecutor
	FileSystem        shared.FileSystem
	Discoverer        shared.WorkspaceDiscoverer
	Reporter          shared.Reporter
	EnvironmentLookup EnvironmentLookup
}

// StartOptions configures a start invocation.
type StartOptions struct {
	Project            shared.ProjectName
	SourceURL          string
	WorkspaceDirectory string
	Editor             string
	OpenPolicy         shared.OpenPolicy
}

// StartResult describes the cloned project.
type StartResult struct {
	ProjectPath string
	SourceURL   string
	Opened      bool
	Editor      string
}

// OpenOptions configures an open invocation.
type OpenOptions struct {
	Project            shared.ProjectName
	WorkspaceDirectory string
	Editor             string
}

// OpenResult names the editor the project was handed to.
type OpenResult struct {
	ProjectPath string
	Editor      string
}

// DoneOptions configures a done invocation. An empty Project finishes every
// project under the workspace directory.
type DoneOptions struct {
	Project            shared.ProjectName
	WorkspaceDirectory string
	SafetyPolicy       shared.SafetyCheckPolicy
}

// SkippedProject records a project that batch mode left in place.
type SkippedProject struct {
	Project string
	Reason  error
}

// DoneResult summarizes a done invocation.
type DoneResult struct {
	RemovedProjects   []string
	SkippedProjects   []SkippedProject
	DeletedStrayFiles []string
}

// Service coordinates the start, open and done lifecycle operations.
type Service struct {
	logger            *zap.Logger
	inspector         shared.RepositoryInspector
	editorExecutor    shared.EditorExecutor
	fileSystem        shared.FileSystem
	discoverer        shared.WorkspaceDiscoverer
	reporter          shared.Reporter
	environmentLookup EnvironmentLookup
	safetyEvaluator   SafetyEvaluator
}

// NewService constructs a Service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Inspector == nil {
		return nil, ErrInspectorNotConfigured
	}
	if dependencies.EditorExecutor == nil {
		return nil, ErrEditorExecutorNotConfigured
	}
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	if dependencies.Discoverer == nil {
		return nil, ErrDiscovererNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = silentReporter{}
	}
	environmentLookup := dependencies.EnvironmentLookup
	if environmentLookup == nil {
		environmentLookup = os.LookupEnv
	}

	return &Service{
		logger:            logger,
		inspector:         dependencies.Inspector,
		editorExecutor:    dependencies.EditorExecutor,
		fileSystem:        dependencies.FileSystem,
		discoverer:        dependencies.Discoverer,
		reporter:          reporter,
		environmentLookup: environmentLookup,
		safetyEvaluator:   SafetyEvaluator{Inspector: dependencies.Inspector},
	}, nil
}

// Start clones the project from the source location into the workspace and
// opens it unless the open policy says otherwise. Clone failures are returned unchanged.
func (service *Service) Start(executionContext context.Context, options StartOptions) (StartResult, error) {
	workspaceDirectory, workspaceError := requireWorkspaceDirectory(options.WorkspaceDirectory)
	if workspaceError != nil {
		return StartResult{}, workspaceError
	}
	if len(strings.TrimSpace(options.SourceURL)) == 0 {
		return StartResult{}, ErrSourceNotConfigured
	}

	sourceURL := BuildSourceURL(options.SourceURL, options.Project)
	projectPath := filepath.Join(workspaceDirectory, options.Project.String())
	service.logger.Info(
		settingUpMessageConstant,
		zap.String(logFieldProjectConstant, options.Project.String()),
		zap.String(logFieldSourceURLConstant, sourceURL),
		zap.String(logFieldPathConstant, projectPath),
	)

	if cloneError := service.inspector.Clone(executionContext, sourceURL, projectPath); cloneError != nil {
		return StartResult{}, cloneError
	}

	result := StartResult{ProjectPath: projectPath, SourceURL: sourceURL}
	if !options.OpenPolicy.ShouldOpen() {
		return result, nil
	}

	openResult, openError := service.Open(executionContext, OpenOptions{
		Project:            options.Project,
		WorkspaceDirectory: workspaceDirectory,
		Editor:             options.Editor,
	})
	if openError != nil {
		return result, openError
	}
	result.ProjectPath = openResult.ProjectPath
	result.Opened = true
	result.Editor = openResult.Editor
	return result, nil
}

// Open launches an editor on an existing project directory.
func (service *Service) Open(executionContext context.Context, options OpenOptions) (OpenResult, error) {
	workspaceDirectory, workspaceError := requireWorkspaceDirectory(options.WorkspaceDirectory)
	if workspaceError != nil {
		return OpenResult{}, workspaceError
	}

	project := options.Project.String()
	service.logger.Info(openingMessageConstant, zap.String(logFieldProjectConstant, project))

	projectPath, pathError := service.fileSystem.Abs(filepath.Join(workspaceDirectory, project))
	if pathError != nil {
		return OpenResult{}, repoerrors.Wrap(repoerrors.KindOperationFailed, projectPathResolutionMessageConstant, pathError)
	}

	projectInfo, statError := service.fileSystem.Stat(projectPath)
	if statError != nil || !projectInfo.IsDir() {
		return OpenResult{}, repoerrors.New(repoerrors.KindNotFound, fmt.Sprintf(projectMissingTemplateConstant, project), "")
	}

	editorName, launchError := service.launchEditor(executionContext, project, projectPath, options.Editor)
	if launchError != nil {
		return OpenResult{}, launchError
	}
	return OpenResult{ProjectPath: projectPath, Editor: editorName}, nil
}

// Done removes finished projects. A named project must exist and every failure
// is returned. Without a name, each project is attempted in turn, failures are
// logged and skipped, and stray files left in the workspace are deleted.
func (service *Service) Done(executionContext context.Context, options DoneOptions) (DoneResult, error) {
	workspaceDirectory, workspaceError := requireWorkspaceDirectory(options.WorkspaceDirectory)
	if workspaceError != nil {
		return DoneResult{}, workspaceError
	}

	entries, discoveryError := service.discoverer.DiscoverWorkspace(workspaceDirectory)
	if discoveryError != nil {
		return DoneResult{}, repoerrors.Wrap(repoerrors.KindOperationFailed, workspaceUnreadableMessageConstant, discoveryError)
	}

	result := DoneResult{}

	if len(options.Project) > 0 {
		project := options.Project.String()
		if !lo.Contains(entries.ProjectNames, project) {
			return DoneResult{}, repoerrors.New(repoerrors.KindNotFound, fmt.Sprintf(projectNotInWorkspaceTemplateConstant, project, workspaceDirectory), "")
		}
		if removalError := service.finishProject(executionContext, workspaceDirectory, project, options.SafetyPolicy); removalError != nil {
			return DoneResult{}, removalError
		}
		result.RemovedProjects = append(result.RemovedProjects, project)
		return result, nil
	}

	for _, project := range entries.ProjectNames {
		removalError := service.finishProject(executionContext, workspaceDirectory, project, options.SafetyPolicy)
		if removalError != nil {
			service.logger.Warn(projectSkippedMessageConstant, skippedProjectFields(project, removalError)...)
			service.reporter.Warning(skippedReportTemplateConstant, project, firstLine(removalError))
			result.SkippedProjects = append(result.SkippedProjects, SkippedProject{Project: project, Reason: removalError})
			continue
		}
		result.RemovedProjects = append(result.RemovedProjects, project)
	}

	for _, strayFile := range entries.StrayFiles {
		strayFilePath := filepath.Join(workspaceDirectory, strayFile)
		service.logger.Debug(deletingStrayFileMessageConstant, zap.String(logFieldPathConstant, strayFilePath))
		if removeError := service.fileSystem.Remove(strayFilePath); removeError != nil && !errors.Is(removeError, fs.ErrNotExist) {
			service.logger.Error(strayFileDeletionFailedMessageConstant, zap.String(logFieldPathConstant, strayFilePath), zap.Error(removeError))
			continue
		}
		service.reporter.Printf(deletedReportTemplateConstant, strayFilePath)
		result.DeletedStrayFiles = append(result.DeletedStrayFiles, strayFile)
	}

	return result, nil
}

func (service *Service) finishProject(executionContext context.Context, workspaceDirectory string, project string, policy shared.SafetyCheckPolicy) error {
	service.logger.Info(finishingMessageConstant, zap.String(logFieldProjectConstant, project))
	projectPath := filepath.Join(workspaceDirectory, project)

	if policy.ShouldInspect() {
		if dirtyError := service.safetyEvaluator.Evaluate(executionContext, projectPath).Err(); dirtyError != nil {
			return dirtyError
		}
	}

	service.logger.Debug(removingMessageConstant, zap.String(logFieldPathConstant, projectPath))
	if removeError := service.fileSystem.RemoveAll(projectPath); removeError != nil {
		return repoerrors.Wrap(repoerrors.KindOperationFailed, projectRemovalFailedMessageConstant, removeError)
	}
	service.reporter.Success(removedReportTemplateConstant, projectPath)
	return nil
}

func requireWorkspaceDirectory(workspaceDirectory string) (string, error) {
	trimmed := strings.TrimSpace(workspaceDirectory)
	if len(trimmed) == 0 {
		return "", ErrWorkspaceDirectoryRequired
	}
	return trimmed, nil
}

func skippedProjectFields(project string, removalError error) []zap.Field {
	fields := []zap.Field{zap.String(logFieldProjectConstant, project), zap.Error(removalError)}
	if kind, classified := repoerrors.KindOf(removalError); classified {
		fields = append(fields, zap.String(logFieldFailureKindConstant, string(kind)))
	}
	return fields
}

func firstLine(err error) string {
	message, _, _ := strings.Cut(err.Error(), "\n")
	return message
}

type silentReporter struct{}

func (silentReporter) Printf(string, ...any) {}

func (silentReporter) Success(string, ...any) {}

func (silentReporter) Warning(string, ...any) {}
