package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to errors leaving a Handler.
const (
	TextCodeValidation = "COMMAND_VALIDATION_FAILED"
	TextCodeCanceled   = "COMMAND_CONTEXT_CANCELED"
	TextCodeTimeout    = "COMMAND_CONTEXT_TIMEOUT"
	TextCodeExecution  = "COMMAND_EXECUTION_FAILED"
)

func validationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(TextCodeValidation)
}

// executionError maps context errors to their own codes; everything else is an
// execution failure. Errors that already carry a category pass through.
func executionError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}

	message, code := "command execution failed", TextCodeExecution
	switch {
	case errors.Is(err, context.Canceled):
		message, code = "command execution cancelled", TextCodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		message, code = "command execution deadline exceeded", TextCodeTimeout
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(code)
}
