package projects

import (
	"github.com/spf13/cobra"
)

const (
	openCommandUseConstant              = "open <project>"
	openCommandShortDescriptionConstant = "Open a workspace project in an editor"
	openCommandLongDescriptionConstant  = "open launches the first available editor among --editor, $EDITOR, vi and vim on <directory>/<project>."
	openCommandExampleConstant          = "workon open demo --editor code"
)

// BuildOpenCommand constructs the open command.
func (builder *CommandBuilder) BuildOpenCommand() (*cobra.Command, error) {
	flagValues := &workspaceFlagValues{}

	command := &cobra.Command{
		Use:     openCommandUseConstant,
		Short:   openCommandShortDescriptionConstant,
		Long:    openCommandLongDescriptionConstant,
		Example: openCommandExampleConstant,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			project, projectError := parseProjectArgument(trimmedArguments(arguments))
			if projectError != nil {
				return projectError
			}

			configuration := builder.resolveConfiguration(command, *flagValues)
			service, serviceError := builder.buildService(command)
			if serviceError != nil {
				return serviceError
			}

			_, openError := service.Open(command.Context(), OpenOptions{
				Project:            project,
				WorkspaceDirectory: configuration.WorkspaceDirectory,
				Editor:             configuration.Editor,
			})
			return openError
		},
	}

	builder.bindWorkspaceFlags(command, flagValues, false, true)

	return command, nil
}
