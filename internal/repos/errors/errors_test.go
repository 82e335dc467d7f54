package errors_test

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	repoerrors "github.com/temirov/workon/internal/repos/errors"
)

func TestOperationErrorMatchesOnlyItsKind(t *testing.T) {
	testCases := []struct {
		name     string
		kind     repoerrors.Kind
		sentinel error
	}{
		{name: "not_found", kind: repoerrors.KindNotFound, sentinel: repoerrors.ErrNotFound},
		{name: "already_exists", kind: repoerrors.KindAlreadyExists, sentinel: repoerrors.ErrAlreadyExists},
		{name: "dirty_state", kind: repoerrors.KindDirtyState, sentinel: repoerrors.ErrDirtyState},
		{name: "no_editor_found", kind: repoerrors.KindNoEditorFound, sentinel: repoerrors.ErrNoEditorFound},
		{name: "operation_failed", kind: repoerrors.KindOperationFailed, sentinel: repoerrors.ErrOperationFailed},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			operationError := repoerrors.New(testCase.kind, "message", "")
			wrapped := fmt.Errorf("context: %w", operationError)

			require.ErrorIs(t, wrapped, testCase.sentinel)
			for _, otherCase := range testCases {
				if otherCase.kind == testCase.kind {
					continue
				}
				require.False(t, stderrors.Is(wrapped, otherCase.sentinel))
			}

			kind, found := repoerrors.KindOf(wrapped)
			require.True(t, found)
			require.Equal(t, testCase.kind, kind)
		})
	}
}

func TestOperationErrorMessageIncludesDetail(t *testing.T) {
	operationError := repoerrors.New(repoerrors.KindDirtyState, "Wait a moment, you left some unstaged changes!", "?? 1.txt\n")

	require.Equal(t, "Wait a moment, you left some unstaged changes!\n?? 1.txt", operationError.Error())
	kind, found := repoerrors.KindOf(operationError)
	require.True(t, found)
	require.Equal(t, repoerrors.KindDirtyState, kind)
}

func TestWrappedOperationErrorUnwrapsToCause(t *testing.T) {
	operationError := repoerrors.Wrap(repoerrors.KindOperationFailed, "can't access working directory", fs.ErrPermission)

	require.ErrorIs(t, operationError, fs.ErrPermission)
	require.ErrorIs(t, operationError, repoerrors.ErrOperationFailed)
	require.Contains(t, operationError.Error(), "permission denied")
}

func TestKindOfReportsMissingOperationError(t *testing.T) {
	_, found := repoerrors.KindOf(stderrors.New("plain"))
	require.False(t, found)
}
