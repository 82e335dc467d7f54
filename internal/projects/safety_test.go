package projects

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	repoerrors "github.com/temirov/workon/internal/repos/errors"
)

func TestSafetyEvaluatorStopsAtFirstBlockingCheck(t *testing.T) {
	inspector := &stubInspector{states: map[string]stubRepositoryState{
		"demo": {stashed: true, unpushed: "(master) dummy", unstaged: "?? 1.txt\n"},
	}}
	status := SafetyEvaluator{Inspector: inspector}.Evaluate(context.Background(), "/tmp/projects/demo")

	require.False(t, status.SafeToRemove)
	require.Equal(t, safetyReasonStashesConstant, status.BlockingReason)
	require.Empty(t, status.Detail)
	require.Len(t, inspector.inspectedPaths, 1)
	require.ErrorIs(t, status.Err(), repoerrors.ErrDirtyState)
}

func TestSafetyEvaluatorReportsDetail(t *testing.T) {
	inspector := &stubInspector{states: map[string]stubRepositoryState{"demo": {unstaged: "?? 1.txt\n"}}}
	status := SafetyEvaluator{Inspector: inspector}.Evaluate(context.Background(), "/tmp/projects/demo")

	require.False(t, status.SafeToRemove)
	require.Equal(t, "?? 1.txt\n", status.Detail)
	require.Len(t, inspector.inspectedPaths, 3)

	dirtyError := status.Err()
	kind, ok := repoerrors.KindOf(dirtyError)
	require.True(t, ok)
	require.Equal(t, repoerrors.KindDirtyState, kind)
	require.Contains(t, dirtyError.Error(), "?? 1.txt")
}

func TestSafetyEvaluatorCleanRepository(t *testing.T) {
	status := SafetyEvaluator{Inspector: &stubInspector{}}.Evaluate(context.Background(), "/tmp/projects/demo")
	require.True(t, status.SafeToRemove)
	require.NoError(t, status.Err())
}
