package projects

import (
	"github.com/spf13/cobra"

	"github.com/temirov/workon/internal/repos/shared"
)

const (
	doneCommandUseConstant              = "done [project]"
	doneCommandShortDescriptionConstant = "Remove finished projects from the workspace"
	doneCommandLongDescriptionConstant  = "done removes <directory>/<project> once it has no stashes, unpushed commits or unstaged changes. Without a project every project in the workspace is attempted, dirty ones are skipped, and stray files are deleted."
	doneCommandExampleConstant          = "workon done demo --force"
)

// BuildDoneCommand constructs the done command.
func (builder *CommandBuilder) BuildDoneCommand() (*cobra.Command, error) {
	flagValues := &workspaceFlagValues{}
	var force bool

	command := &cobra.Command{
		Use:     doneCommandUseConstant,
		Short:   doneCommandShortDescriptionConstant,
		Long:    doneCommandLongDescriptionConstant,
		Example: doneCommandExampleConstant,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			var project shared.ProjectName
			if remaining := trimmedArguments(arguments); len(remaining) > 0 {
				parsedProject, projectError := shared.NewProjectName(remaining[0])
				if projectError != nil {
					return projectError
				}
				project = parsedProject
			}

			configuration := builder.resolveConfiguration(command, *flagValues)
			service, serviceError := builder.buildService(command)
			if serviceError != nil {
				return serviceError
			}

			_, doneError := service.Done(command.Context(), DoneOptions{
				Project:            project,
				WorkspaceDirectory: configuration.WorkspaceDirectory,
				SafetyPolicy:       shared.SafetyCheckPolicyFromForce(force),
			})
			return doneError
		},
	}

	builder.bindWorkspaceFlags(command, flagValues, false, false)
	command.Flags().BoolVarP(&force, forceFlagNameConstant, forceFlagShortConstant, false, forceFlagUsageConstant)

	return command, nil
}
