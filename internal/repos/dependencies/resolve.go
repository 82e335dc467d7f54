package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/workon/internal/execshell"
	"github.com/temirov/workon/internal/gitrepo"
	"github.com/temirov/workon/internal/repos/discovery"
	"github.com/temirov/workon/internal/repos/filesystem"
	"github.com/temirov/workon/internal/repos/shared"
	"github.com/temirov/workon/internal/ui"
)

// ResolveWorkspaceDiscoverer returns the provided discoverer or a filesystem-backed default.
func ResolveWorkspaceDiscoverer(existing shared.WorkspaceDiscoverer, fileSystem shared.FileSystem) shared.WorkspaceDiscoverer {
	if existing != nil {
		return existing
	}
	return discovery.NewWorkspaceEntryDiscoverer(fileSystem)
}

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing shared.FileSystem) shared.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveShellExecutor constructs a shell-backed executor. When humanReadable is
// set, command lifecycle events are echoed through a console event logger.
func ResolveShellExecutor(logger *zap.Logger, humanReadable bool) (*execshell.ShellExecutor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var options []execshell.ShellExecutorOption
	if humanReadable {
		options = append(options, execshell.WithCommandEventObserver(ui.NewConsoleCommandEventLogger(logger)))
	}
	return execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), options...)
}

// ResolveGitExecutor returns the provided executor or the fallback shell executor.
func ResolveGitExecutor(existing shared.GitExecutor, fallback *execshell.ShellExecutor) shared.GitExecutor {
	if existing != nil {
		return existing
	}
	return fallback
}

// ResolveEditorExecutor returns the provided executor or the fallback shell executor.
func ResolveEditorExecutor(existing shared.EditorExecutor, fallback *execshell.ShellExecutor) shared.EditorExecutor {
	if existing != nil {
		return existing
	}
	return fallback
}

// ResolveRepositoryInspector returns the provided inspector or constructs one from the executor.
func ResolveRepositoryInspector(existing shared.RepositoryInspector, executor shared.GitExecutor, logger *zap.Logger) (shared.RepositoryInspector, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryInspector(gitrepo.InspectorDependencies{GitExecutor: executor, Logger: logger})
}
