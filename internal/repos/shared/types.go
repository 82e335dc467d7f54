package shared

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/temirov/workon/internal/execshell"
)

const (
	projectNameRequiredMessageConstant        = "project name must be provided"
	projectNameInvalidTemplateConstant        = "invalid project name %q: %s"
	projectNameSeparatorReasonConstant        = "must not contain path separators"
	projectNameRelativeReasonConstant         = "must not reference the current or parent directory"
	projectNameControlCharacterReasonConstant = "must not contain control characters"
	currentDirectoryNameConstant              = "."
	parentDirectoryNameConstant               = ".."
	pathSeparatorCharactersConstant           = `/\`
)

// ErrProjectNameRequired indicates an empty project name.
var ErrProjectNameRequired = errors.New(projectNameRequiredMessageConstant)

// ProjectName is a validated project directory name under a workspace root.
type ProjectName string

// NewProjectName trims and validates a raw project name.
func NewProjectName(raw string) (ProjectName, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", ErrProjectNameRequired
	}
	if strings.ContainsAny(trimmed, pathSeparatorCharactersConstant) {
		return "", fmt.Errorf(projectNameInvalidTemplateConstant, trimmed, projectNameSeparatorReasonConstant)
	}
	if trimmed == currentDirectoryNameConstant || trimmed == parentDirectoryNameConstant {
		return "", fmt.Errorf(projectNameInvalidTemplateConstant, trimmed, projectNameRelativeReasonConstant)
	}
	for _, character := range trimmed {
		if character < 0x20 || character == 0x7f {
			return "", fmt.Errorf(projectNameInvalidTemplateConstant, trimmed, projectNameControlCharacterReasonConstant)
		}
	}
	return ProjectName(trimmed), nil
}

// String returns the project name.
func (name ProjectName) String() string {
	return string(name)
}

// FileSystem exposes filesystem operations required by the lifecycle controller.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	Remove(path string) error
	RemoveAll(path string) error
	Abs(path string) (string, error)
}

// GitExecutor exposes the subset of shell execution used by the git inspector.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// EditorExecutor launches an interactive editor process.
type EditorExecutor interface {
	ExecuteEditor(executionContext context.Context, editorName string, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryInspector answers the safety questions asked before a project directory is removed.
type RepositoryInspector interface {
	IsStashEmpty(executionContext context.Context, repositoryPath string) bool
	GetUnpushedBranchesInfo(executionContext context.Context, repositoryPath string) string
	GetUnstagedInfo(executionContext context.Context, repositoryPath string) string
	Clone(executionContext context.Context, sourceURL string, destinationPath string) error
}

// WorkspaceEntries partitions the immediate children of a workspace root.
type WorkspaceEntries struct {
	ProjectNames []string
	StrayFiles   []string
}

// WorkspaceDiscoverer lists the projects and stray files of a workspace root.
type WorkspaceDiscoverer interface {
	DiscoverWorkspace(workspaceRoot string) (WorkspaceEntries, error)
}
