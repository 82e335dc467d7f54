package projects

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/workon/internal/repos/shared"
)

const (
	startCommandUseConstant              = "start <project>"
	startCommandShortDescriptionConstant = "Clone a project into the workspace and open it"
	startCommandLongDescriptionConstant  = "start clones <source>/<project>.git into <directory>/<project> and opens it in an editor unless --no-open is given."
	startCommandExampleConstant          = "workon start demo --source git@github.com:owner --directory ~/projects"
	startSuccessTemplateConstant         = "STARTED: %s\n"
)

// BuildStartCommand constructs the start command.
func (builder *CommandBuilder) BuildStartCommand() (*cobra.Command, error) {
	flagValues := &workspaceFlagValues{}
	var noOpen bool

	command := &cobra.Command{
		Use:     startCommandUseConstant,
		Short:   startCommandShortDescriptionConstant,
		Long:    startCommandLongDescriptionConstant,
		Example: startCommandExampleConstant,
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

			result, startError := service.Start(command.Context(), StartOptions{
				Project:            project,
				SourceURL:          configuration.SourceURL,
				WorkspaceDirectory: configuration.WorkspaceDirectory,
				Editor:             configuration.Editor,
				OpenPolicy:         shared.OpenPolicyFromNoOpen(noOpen),
			})
			if startError != nil {
				return startError
			}

			fmt.Fprintf(command.OutOrStdout(), startSuccessTemplateConstant, result.ProjectPath)
			return nil
		},
	}

	builder.bindWorkspaceFlags(command, flagValues, true, true)
	command.Flags().BoolVarP(&noOpen, noOpenFlagNameConstant, noOpenFlagShortConstant, false, noOpenFlagUsageConstant)

	return command, nil
}
