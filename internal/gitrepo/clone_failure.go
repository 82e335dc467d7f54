package gitrepo

import (
	"strings"

	repoerrors "github.com/temirov/workon/internal/repos/errors"
)

const (
	remoteProjectNotFoundMessageConstant    = "Oops, the project does not exist on the remote"
	destinationAlreadyExistsMessageConstant = "Oops, the project is already cloned into your working directory"
	cloneFailedMessageConstant              = "git clone failed"
)

type cloneFailureClassifier struct {
	kind      repoerrors.Kind
	message   string
	fragments []string
}

// cloneFailureClassifiers are matched in order, case-insensitively, against git's standard error.
var cloneFailureClassifiers = []cloneFailureClassifier{
	{
		kind:      repoerrors.KindNotFound,
		message:   remoteProjectNotFoundMessageConstant,
		fragments: []string{"not found", "does not exist"},
	},
	{
		kind:      repoerrors.KindAlreadyExists,
		message:   destinationAlreadyExistsMessageConstant,
		fragments: []string{"already exists"},
	},
}

// TranslateCloneFailure maps git clone's standard error to an OperationError.
// Unrecognized output becomes KindOperationFailed. The raw text is kept as the
// error detail in every case.
func TranslateCloneFailure(standardError string) error {
	trimmedStandardError := strings.TrimSpace(standardError)
	normalizedStandardError := strings.ToLower(trimmedStandardError)

	for _, classifier := range cloneFailureClassifiers {
		for _, fragment := range classifier.fragments {
			if strings.Contains(normalizedStandardError, fragment) {
				return repoerrors.New(classifier.kind, classifier.message, trimmedStandardError)
			}
		}
	}

	return repoerrors.New(repoerrors.KindOperationFailed, cloneFailedMessageConstant, trimmedStandardError)
}
