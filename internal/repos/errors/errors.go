// Package errors defines the failure kinds surfaced by project lifecycle operations.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Kind classifies an OperationError.
type Kind string

// Supported failure kinds.
const (
	KindNotFound        Kind = "not_found"
	KindAlreadyExists   Kind = "already_exists"
	KindDirtyState      Kind = "dirty_state"
	KindNoEditorFound   Kind = "no_editor_found"
	KindOperationFailed Kind = "operation_failed"
)

const (
	messageWithDetailTemplateConstant = "%s\n%s"
	messageWithCauseTemplateConstant  = "%s: %v"
)

// Sentinels for errors.Is matching against an OperationError kind.
var (
	ErrNotFound        = stderrors.New(string(KindNotFound))
	ErrAlreadyExists   = stderrors.New(string(KindAlreadyExists))
	ErrDirtyState      = stderrors.New(string(KindDirtyState))
	ErrNoEditorFound   = stderrors.New(string(KindNoEditorFound))
	ErrOperationFailed = stderrors.New(string(KindOperationFailed))
)

var kindSentinels = map[Kind]error{
	KindNotFound:        ErrNotFound,
	KindAlreadyExists:   ErrAlreadyExists,
	KindDirtyState:      ErrDirtyState,
	KindNoEditorFound:   ErrNoEditorFound,
	KindOperationFailed: ErrOperationFailed,
}

// OperationError carries a failure kind, a human-readable message and an
// optional raw detail such as external tool output.
type OperationError struct {
	kind    Kind
	message string
	detail  string
	cause   error
}

// New constructs an OperationError.
func New(kind Kind, message string, detail string) OperationError {
	return OperationError{kind: kind, message: message, detail: detail}
}

// Wrap constructs an OperationError that unwraps to cause.
func Wrap(kind Kind, message string, cause error) OperationError {
	return OperationError{kind: kind, message: message, cause: cause}
}

// Error joins message, detail and cause.
func (operationError OperationError) Error() string {
	message := operationError.message
	trimmedDetail := strings.TrimRight(operationError.detail, "\n")
	if len(strings.TrimSpace(trimmedDetail)) > 0 {
		message = fmt.Sprintf(messageWithDetailTemplateConstant, message, trimmedDetail)
	}
	if operationError.cause != nil {
		message = fmt.Sprintf(messageWithCauseTemplateConstant, message, operationError.cause)
	}
	return message
}

// Unwrap exposes the wrapped cause.
func (operationError OperationError) Unwrap() error {
	return operationError.cause
}

// Is matches the sentinel associated with the error kind.
func (operationError OperationError) Is(target error) bool {
	sentinel, known := kindSentinels[operationError.kind]
	return known && sentinel == target
}

// KindOf returns the kind of the first OperationError in the chain.
func KindOf(err error) (Kind, bool) {
	var operationError OperationError
	if !stderrors.As(err, &operationError) {
		return "", false
	}
	return operationError.kind, true
}
