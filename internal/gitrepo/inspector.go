package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/workon/internal/execshell"
	repoerrors "github.com/temirov/workon/internal/repos/errors"
	"github.com/temirov/workon/internal/repos/shared"
)

const (
	gitExecutorMissingMessageConstant         = "git executor not configured"
	sourceURLRequiredMessageConstant          = "clone source url must be provided"
	destinationPathRequiredMessageConstant    = "clone destination path must be provided"
	cloneNotExecutedMessageConstant           = "git clone could not be executed"
	gitStashSubcommandConstant                = "stash"
	gitStashListSubcommandConstant            = "list"
	gitForEachRefSubcommandConstant           = "for-each-ref"
	gitBranchFormatArgumentConstant           = "--format=%(HEAD)%09%(refname:short)%09%(upstream)"
	gitLocalBranchesNamespaceConstant         = "refs/heads"
	gitLocalBranchReferencePrefixConstant     = "refs/heads/"
	gitLogSubcommandConstant                  = "log"
	gitSubjectFormatArgumentConstant          = "--format=%s"
	gitNotFlagConstant                        = "--not"
	gitRemotesFlagConstant                    = "--remotes"
	gitRangeSeparatorConstant                 = ".."
	gitStatusSubcommandConstant               = "status"
	gitShortFlagConstant                      = "--short"
	gitCloneSubcommandConstant                = "clone"
	gitTerminalPromptEnvironmentNameConstant  = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableValue  = "0"
	currentBranchMarkerConstant               = "*"
	currentBranchLabelTemplateConstant        = "HEAD -> %s"
	unpushedCommitLineTemplateConstant        = "(%s) %s"
	branchFieldSeparatorConstant              = "\t"
	lineSeparatorConstant                     = "\n"
	branchFieldCountConstant                  = 3
	inspectionDegradedMessageConstant         = "git inspection unavailable, treating as nothing to lose"
	upstreamComparisonFallbackMessageConstant = "upstream comparison failed, comparing against all remotes"
	logFieldRepositoryPathConstant            = "repository_path"
	logFieldInspectionConstant                = "inspection"
	logFieldBranchConstant                    = "branch"
	logFieldUpstreamConstant                  = "upstream"
	inspectionStashConstant                   = "stash"
	inspectionBranchesConstant                = "branches"
	inspectionUnstagedConstant                = "unstaged"
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrSourceURLRequired indicates Clone received an empty source.
var ErrSourceURLRequired = errors.New(sourceURLRequiredMessageConstant)

// ErrDestinationPathRequired indicates Clone received an empty destination.
var ErrDestinationPathRequired = errors.New(destinationPathRequiredMessageConstant)

// InspectorDependencies enumerates collaborators required by the inspector.
type InspectorDependencies struct {
	GitExecutor shared.GitExecutor
	Logger      *zap.Logger
}

// RepositoryInspector implements shared.RepositoryInspector on top of the git CLI.
type RepositoryInspector struct {
	executor shared.GitExecutor
	logger   *zap.Logger
}

type localBranch struct {
	name      string
	upstream  string
	isCurrent bool
}

// NewRepositoryInspector constructs a RepositoryInspector.
func NewRepositoryInspector(dependencies InspectorDependencies) (*RepositoryInspector, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RepositoryInspector{executor: dependencies.GitExecutor, logger: logger}, nil
}

// IsStashEmpty reports whether the repository has no stash entries.
func (inspector *RepositoryInspector) IsStashEmpty(executionContext context.Context, repositoryPath string) bool {
	executionResult, executionError := inspector.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitStashSubcommandConstant, gitStashListSubcommandConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		inspector.logDegraded(repositoryPath, inspectionStashConstant, executionError)
		return true
	}
	return len(strings.TrimSpace(executionResult.StandardOutput)) == 0
}

// GetUnpushedBranchesInfo lists, per local branch, the commits missing from its
// upstream as "(branch) subject" lines. The checked-out branch is labelled
// "HEAD -> branch". Branches without an upstream are compared against every
// remote-tracking ref.
func (inspector *RepositoryInspector) GetUnpushedBranchesInfo(executionContext context.Context, repositoryPath string) string {
	branches, listError := inspector.listLocalBranches(executionContext, repositoryPath)
	if listError != nil {
		inspector.logDegraded(repositoryPath, inspectionBranchesConstant, listError)
		return ""
	}

	reportLines := make([]string, 0, len(branches))
	for _, branch := range branches {
		subjects, subjectsError := inspector.unpushedSubjects(executionContext, repositoryPath, branch)
		if subjectsError != nil {
			inspector.logDegraded(repositoryPath, inspectionBranchesConstant, subjectsError)
			continue
		}

		branchLabel := branch.name
		if branch.isCurrent {
			branchLabel = fmt.Sprintf(currentBranchLabelTemplateConstant, branch.name)
		}
		for _, subject := range subjects {
			reportLines = append(reportLines, fmt.Sprintf(unpushedCommitLineTemplateConstant, branchLabel, subject))
		}
	}

	return strings.Join(reportLines, lineSeparatorConstant)
}

// GetUnstagedInfo returns the short status output verbatim when the working
// tree has uncommitted or untracked changes.
func (inspector *RepositoryInspector) GetUnstagedInfo(executionContext context.Context, repositoryPath string) string {
	executionResult, executionError := inspector.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitStatusSubcommandConstant, gitShortFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		inspector.logDegraded(repositoryPath, inspectionUnstagedConstant, executionError)
		return ""
	}
	if len(strings.TrimSpace(executionResult.StandardOutput)) == 0 {
		return ""
	}
	return executionResult.StandardOutput
}

// Clone creates a working copy of sourceURL at destinationPath. A git failure
// is classified by TranslateCloneFailure.
func (inspector *RepositoryInspector) Clone(executionContext context.Context, sourceURL string, destinationPath string) error {
	trimmedSourceURL := strings.TrimSpace(sourceURL)
	if len(trimmedSourceURL) == 0 {
		return ErrSourceURLRequired
	}
	trimmedDestinationPath := strings.TrimSpace(destinationPath)
	if len(trimmedDestinationPath) == 0 {
		return ErrDestinationPathRequired
	}

	_, executionError := inspector.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitCloneSubcommandConstant, trimmedSourceURL, trimmedDestinationPath},
		EnvironmentVariables: map[string]string{gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableValue},
	})
	if executionError == nil {
		return nil
	}

	var failedError execshell.CommandFailedError
	if errors.As(executionError, &failedError) {
		return TranslateCloneFailure(failedError.Result.StandardError)
	}
	return repoerrors.Wrap(repoerrors.KindOperationFailed, cloneNotExecutedMessageConstant, executionError)
}

func (inspector *RepositoryInspector) listLocalBranches(executionContext context.Context, repositoryPath string) ([]localBranch, error) {
	executionResult, executionError := inspector.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitForEachRefSubcommandConstant, gitBranchFormatArgumentConstant, gitLocalBranchesNamespaceConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, executionError
	}

	var branches []localBranch
	for _, line := range strings.Split(executionResult.StandardOutput, lineSeparatorConstant) {
		fields := strings.SplitN(line, branchFieldSeparatorConstant, branchFieldCountConstant)
		if len(fields) != branchFieldCountConstant || len(strings.TrimSpace(fields[1])) == 0 {
			continue
		}
		branches = append(branches, localBranch{
			name:      strings.TrimSpace(fields[1]),
			upstream:  strings.TrimSpace(fields[2]),
			isCurrent: strings.TrimSpace(fields[0]) == currentBranchMarkerConstant,
		})
	}
	return branches, nil
}

func (inspector *RepositoryInspector) unpushedSubjects(executionContext context.Context, repositoryPath string, branch localBranch) ([]string, error) {
	branchReference := gitLocalBranchReferencePrefixConstant + branch.name

	if len(branch.upstream) > 0 {
		subjects, upstreamError := inspector.logSubjects(executionContext, repositoryPath, branch.upstream+gitRangeSeparatorConstant+branchReference)
		if upstreamError == nil {
			return subjects, nil
		}
		inspector.logger.Debug(
			upstreamComparisonFallbackMessageConstant,
			zap.String(logFieldRepositoryPathConstant, repositoryPath),
			zap.String(logFieldBranchConstant, branch.name),
			zap.String(logFieldUpstreamConstant, branch.upstream),
			zap.Error(upstreamError),
		)
	}

	return inspector.logSubjects(executionContext, repositoryPath, branchReference, gitNotFlagConstant, gitRemotesFlagConstant)
}

func (inspector *RepositoryInspector) logSubjects(executionContext context.Context, repositoryPath string, revisions ...string) ([]string, error) {
	arguments := append([]string{gitLogSubcommandConstant, gitSubjectFormatArgumentConstant}, revisions...)
	executionResult, executionError := inspector.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, executionError
	}

	var subjects []string
	for _, line := range strings.Split(executionResult.StandardOutput, lineSeparatorConstant) {
		trimmedLine := strings.TrimRight(line, "\r")
		if len(strings.TrimSpace(trimmedLine)) == 0 {
			continue
		}
		subjects = append(subjects, trimmedLine)
	}
	return subjects, nil
}

func (inspector *RepositoryInspector) logDegraded(repositoryPath string, inspection string, cause error) {
	inspector.logger.Debug(
		inspectionDegradedMessageConstant,
		zap.String(logFieldRepositoryPathConstant, repositoryPath),
		zap.String(logFieldInspectionConstant, inspection),
		zap.Error(cause),
	)
}
