package projects

import (
	"context"

	repoerrors "github.com/temirov/workon/internal/repos/errors"
	"github.com/temirov/workon/internal/repos/shared"
)

const (
	safetyReasonStashesConstant         = "Wait a moment, you have left some stashes! If you are confident, use \"-f\" flag"
	safetyReasonUnpushedCommitsConstant = "Wait a moment, you left some unpushed commits! If you are confident, use \"-f\" flag. Please, take a look:"
	safetyReasonUnstagedChangesConstant = "Wait a moment, you left some unstaged changes! If you are confident, use \"-f\" flag. Please, take a look:"
)

// SafetyStatus conveys whether a project directory can be removed without losing work.
type SafetyStatus struct {
	SafeToRemove   bool
	BlockingReason string
	Detail         string
}

// Err converts a blocking status into a dirty-state error.
func (status SafetyStatus) Err() error {
	if status.SafeToRemove {
		return nil
	}
	return repoerrors.New(repoerrors.KindDirtyState, status.BlockingReason, status.Detail)
}

// SafetyEvaluator runs the stash, unpushed and unstaged checks in that order
// and stops at the first one that blocks removal.
type SafetyEvaluator struct {
	Inspector shared.RepositoryInspector
}

// Evaluate inspects the repository at projectPath.
func (evaluator SafetyEvaluator) Evaluate(executionContext context.Context, projectPath string) SafetyStatus {
	if !evaluator.Inspector.IsStashEmpty(executionContext, projectPath) {
		return SafetyStatus{BlockingReason: safetyReasonStashesConstant}
	}
	if unpushedInfo := evaluator.Inspector.GetUnpushedBranchesInfo(executionContext, projectPath); len(unpushedInfo) > 0 {
		return SafetyStatus{BlockingReason: safetyReasonUnpushedCommitsConstant, Detail: unpushedInfo}
	}
	if unstagedInfo := evaluator.Inspector.GetUnstagedInfo(executionContext, projectPath); len(unstagedInfo) > 0 {
		return SafetyStatus{BlockingReason: safetyReasonUnstagedChangesConstant, Detail: unstagedInfo}
	}
	return SafetyStatus{SafeToRemove: true}
}
