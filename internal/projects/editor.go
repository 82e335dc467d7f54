package projects

import (
	"context"
	"errors"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/temirov/workon/internal/execshell"
	repoerrors "github.com/temirov/workon/internal/repos/errors"
)

const (
	editorEnvironmentVariableConstant  = "EDITOR"
	fallbackEditorViConstant           = "vi"
	fallbackEditorVimConstant          = "vim"
	tryingEditorMessageConstant        = "Trying to open project with editor"
	editorLaunchFailedMessageConstant  = "Failed to open project with editor"
	editorExitedNonZeroMessageConstant = "Editor exited with a non-zero status"
	noEditorFoundMessageConstant       = "No suitable editor found to open your project"
	logFieldEditorConstant             = "editor"
	logFieldExitCodeConstant           = "exit_code"
)

// editorCandidates lists editors in launch order: the explicit override, $EDITOR,
// then vi and vim. Blank and repeated names are dropped.
func (service *Service) editorCandidates(editorOverride string) []string {
	environmentEditor, _ := service.environmentLookup(editorEnvironmentVariableConstant)
	candidates := lo.Map(
		[]string{editorOverride, environmentEditor, fallbackEditorViConstant, fallbackEditorVimConstant},
		func(candidate string, _ int) string { return strings.TrimSpace(candidate) },
	)
	return lo.Uniq(lo.Compact(candidates))
}

// launchEditor runs candidates until one launches and exits with status 0.
func (service *Service) launchEditor(executionContext context.Context, project string, projectPath string, editorOverride string) (string, error) {
	for _, editorName := range service.editorCandidates(editorOverride) {
		service.logger.Info(tryingEditorMessageConstant, zap.String(logFieldProjectConstant, project), zap.String(logFieldEditorConstant, editorName))

		_, executionError := service.editorExecutor.ExecuteEditor(executionContext, editorName, execshell.CommandDetails{
			Arguments: []string{projectPath},
		})
		if executionError == nil {
			return editorName, nil
		}

		var failedError execshell.CommandFailedError
		if errors.As(executionError, &failedError) {
			service.logger.Warn(
				editorExitedNonZeroMessageConstant,
				zap.String(logFieldProjectConstant, project),
				zap.String(logFieldEditorConstant, editorName),
				zap.Int(logFieldExitCodeConstant, failedError.Result.ExitCode),
			)
			continue
		}

		service.logger.Error(
			editorLaunchFailedMessageConstant,
			zap.String(logFieldProjectConstant, project),
			zap.String(logFieldEditorConstant, editorName),
			zap.Error(executionError),
		)
	}

	return "", repoerrors.New(repoerrors.KindNoEditorFound, noEditorFoundMessageConstant, "")
}
