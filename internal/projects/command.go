package projects

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/workon/internal/repos/dependencies"
	"github.com/temirov/workon/internal/repos/shared"
	"github.com/temirov/workon/internal/utils"
	pathutils "github.com/temirov/workon/internal/utils/path"
)

const (
	directoryFlagNameConstant  = "directory"
	directoryFlagShortConstant = "d"
	directoryFlagUsageConstant = "Workspace directory holding one directory per project."
	sourceFlagNameConstant     = "source"
	sourceFlagShortConstant    = "s"
	sourceFlagUsageConstant    = "Base location the project is cloned from, e.g. git@github.com:owner."
	editorFlagNameConstant     = "editor"
	editorFlagShortConstant    = "e"
	editorFlagUsageConstant    = "Editor tried before $EDITOR, vi and vim."
	forceFlagNameConstant      = "force"
	forceFlagShortConstant     = "f"
	forceFlagUsageConstant     = "Remove projects even with stashes, unpushed commits or unstaged changes."
	noOpenFlagNameConstant     = "no-open"
	noOpenFlagShortConstant    = "n"
	noOpenFlagUsageConstant    = "Do not open the project after cloning it."
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the start, open and done commands. Unset
// collaborators are resolved to their operating system defaults.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	GitExecutor                  shared.GitExecutor
	EditorExecutor               shared.EditorExecutor
	FileSystem                   shared.FileSystem
	EnvironmentLookup            EnvironmentLookup
	HomeExpander                 *pathutils.HomeExpander
}

type workspaceFlagValues struct {
	directory string
	source    string
	editor    string
}

func (builder *CommandBuilder) bindWorkspaceFlags(command *cobra.Command, values *workspaceFlagValues, includeSource bool, includeEditor bool) {
	command.Flags().StringVarP(&values.directory, directoryFlagNameConstant, directoryFlagShortConstant, "", directoryFlagUsageConstant)
	if includeSource {
		command.Flags().StringVarP(&values.source, sourceFlagNameConstant, sourceFlagShortConstant, "", sourceFlagUsageConstant)
	}
	if includeEditor {
		command.Flags().StringVarP(&values.editor, editorFlagNameConstant, editorFlagShortConstant, "", editorFlagUsageConstant)
	}
}

// resolveConfiguration overlays explicitly provided flags on the configured values.
func (builder *CommandBuilder) resolveConfiguration(command *cobra.Command, values workspaceFlagValues) CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	if flagChanged(command, directoryFlagNameConstant) {
		configuration.WorkspaceDirectory = values.directory
	}
	if flagChanged(command, sourceFlagNameConstant) {
		configuration.SourceURL = values.source
	}
	if flagChanged(command, editorFlagNameConstant) {
		configuration.Editor = values.editor
	}

	configuration = configuration.Sanitize()

	expander := builder.HomeExpander
	if expander == nil {
		expander = pathutils.NewHomeExpander()
	}
	configuration.WorkspaceDirectory = expander.Expand(configuration.WorkspaceDirectory)
	return configuration
}

func (builder *CommandBuilder) buildService(command *cobra.Command) (*Service, error) {
	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	gitExecutor := builder.GitExecutor
	editorExecutor := builder.EditorExecutor
	if gitExecutor == nil || editorExecutor == nil {
		shellExecutor, executorError := dependencies.ResolveShellExecutor(logger, humanReadableLogging)
		if executorError != nil {
			return nil, executorError
		}
		gitExecutor = dependencies.ResolveGitExecutor(gitExecutor, shellExecutor)
		editorExecutor = dependencies.ResolveEditorExecutor(editorExecutor, shellExecutor)
	}

	inspector, inspectorError := dependencies.ResolveRepositoryInspector(nil, gitExecutor, logger)
	if inspectorError != nil {
		return nil, inspectorError
	}

	fileSystem := dependencies.ResolveFileSystem(builder.FileSystem)

	return NewService(ServiceDependencies{
		Logger:            logger,
		Inspector:         inspector,
		EditorExecutor:    editorExecutor,
		FileSystem:        fileSystem,
		Discoverer:        dependencies.ResolveWorkspaceDiscoverer(nil, fileSystem),
		Reporter:          shared.NewWriterReporter(utils.NewFlushingWriter(command.OutOrStdout())),
		EnvironmentLookup: builder.EnvironmentLookup,
	})
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func parseProjectArgument(arguments []string) (shared.ProjectName, error) {
	if len(arguments) == 0 {
		return "", shared.ErrProjectNameRequired
	}
	return shared.NewProjectName(arguments[0])
}

func flagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}
	flag := command.Flags().Lookup(flagName)
	return flag != nil && flag.Changed
}

func trimmedArguments(arguments []string) []string {
	trimmed := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		if value := strings.TrimSpace(argument); len(value) > 0 {
			trimmed = append(trimmed, value)
		}
	}
	return trimmed
}
