package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitStashSubcommandNameConstant      = "stash"
	gitForEachRefSubcommandNameConstant = "for-each-ref"
	gitLogSubcommandNameConstant        = "log"
	gitStatusSubcommandNameConstant     = "status"
	gitCloneSubcommandNameConstant      = "clone"
	gitFlagPrefixConstant               = "-"
)

const (
	gitStashStartTemplateConstant               = "Listing stashes in %s"
	gitStashSuccessTemplateConstant             = "Listed stashes in %s"
	gitStashFailureTemplateConstant             = "Failed to list stashes in %s (exit code %d%s)"
	gitStashExecutionFailureTemplateConstant    = "Unable to list stashes in %s: %s"
	gitBranchesStartTemplateConstant            = "Enumerating local branches in %s"
	gitBranchesSuccessTemplateConstant          = "Enumerated local branches in %s"
	gitBranchesFailureTemplateConstant          = "Failed to enumerate local branches in %s (exit code %d%s)"
	gitBranchesExecutionFailureTemplateConstant = "Unable to enumerate local branches in %s: %s"
	gitLogStartTemplateConstant                 = "Collecting commits %s in %s"
	gitLogSuccessTemplateConstant               = "Collected commits %s in %s"
	gitLogFailureTemplateConstant               = "Failed to collect commits %s in %s (exit code %d%s)"
	gitLogExecutionFailureTemplateConstant      = "Unable to collect commits %s in %s: %s"
	gitStatusStartTemplateConstant              = "Reviewing working tree status in %s"
	gitStatusSuccessTemplateConstant            = "Collected working tree status for %s"
	gitStatusFailureTemplateConstant            = "Failed to review working tree status in %s (exit code %d%s)"
	gitStatusExecutionFailureTemplateConstant   = "Unable to review working tree status in %s: %s"
	gitCloneStartTemplateConstant               = "Cloning %s into %s"
	gitCloneSuccessTemplateConstant             = "Cloned %s into %s"
	gitCloneFailureTemplateConstant             = "Failed to clone %s into %s (exit code %d%s)"
	gitCloneExecutionFailureTemplateConstant    = "Unable to clone %s into %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	arguments := command.Details.Arguments

	switch strings.TrimSpace(arguments[0]) {
	case gitStashSubcommandNameConstant:
		return formatter.describeStage(stage, result, failure,
			[]any{workingDirectory},
			gitStashStartTemplateConstant, gitStashSuccessTemplateConstant, gitStashFailureTemplateConstant, gitStashExecutionFailureTemplateConstant)
	case gitForEachRefSubcommandNameConstant:
		return formatter.describeStage(stage, result, failure,
			[]any{workingDirectory},
			gitBranchesStartTemplateConstant, gitBranchesSuccessTemplateConstant, gitBranchesFailureTemplateConstant, gitBranchesExecutionFailureTemplateConstant)
	case gitLogSubcommandNameConstant:
		return formatter.describeStage(stage, result, failure,
			[]any{formatter.describeRevisionRange(arguments[1:]), workingDirectory},
			gitLogStartTemplateConstant, gitLogSuccessTemplateConstant, gitLogFailureTemplateConstant, gitLogExecutionFailureTemplateConstant)
	case gitStatusSubcommandNameConstant:
		return formatter.describeStage(stage, result, failure,
			[]any{workingDirectory},
			gitStatusStartTemplateConstant, gitStatusSuccessTemplateConstant, gitStatusFailureTemplateConstant, gitStatusExecutionFailureTemplateConstant)
	case gitCloneSubcommandNameConstant:
		positional := formatter.positionalArguments(arguments[1:])
		return formatter.describeStage(stage, result, failure,
			[]any{formatter.argumentAtIndex(positional, 0), formatter.argumentAtIndex(positional, 1)},
			gitCloneStartTemplateConstant, gitCloneSuccessTemplateConstant, gitCloneFailureTemplateConstant, gitCloneExecutionFailureTemplateConstant)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeStage(stage messageStage, result ExecutionResult, failure error, subjects []any, startTemplate string, successTemplate string, failureTemplate string, executionFailureTemplate string) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(startTemplate, subjects...)
	case messageStageSuccess:
		return fmt.Sprintf(successTemplate, subjects...)
	case messageStageFailure:
		failureArguments := append(append([]any{}, subjects...), result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		return fmt.Sprintf(failureTemplate, failureArguments...)
	case messageStageExecutionFailure:
		executionFailureArguments := append(append([]any{}, subjects...), formatter.describeFailure(failure))
		return fmt.Sprintf(executionFailureTemplate, executionFailureArguments...)
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) describeRevisionRange(arguments []string) string {
	return strings.Join(formatter.positionalArguments(arguments), commandArgumentsJoinSeparatorConstant)
}

// positionalArguments drops flags; "--not" and similar revision modifiers are kept.
func (formatter CommandMessageFormatter) positionalArguments(arguments []string) []string {
	positional := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if strings.HasPrefix(trimmedArgument, gitFlagPrefixConstant) && trimmedArgument != "--not" && trimmedArgument != "--remotes" {
			continue
		}
		positional = append(positional, trimmedArgument)
	}
	return positional
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index < 0 || index >= len(arguments) || len(strings.TrimSpace(arguments[index])) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return arguments[index]
}
