// Package commands is the execution foundation every compiler command
// builds on: a generic handler wiring validation, timeouts, logging, and
// telemetry around go-command messages. Wrapped errors keep their original
// category and text code; only bare errors are tagged here.
package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeValidation = "COMMAND_VALIDATION_FAILED"
	codeCanceled   = "COMMAND_CONTEXT_CANCELED"
	codeTimeout    = "COMMAND_CONTEXT_TIMEOUT"
	codeContext    = "COMMAND_CONTEXT_ERROR"
	codeExecution  = "COMMAND_EXECUTION_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command message validation failed").
		WithTextCode(codeValidation)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command deadline exceeded").
			WithTextCode(codeTimeout)
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command canceled before completion").
			WithTextCode(codeCanceled)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context failed").
			WithTextCode(codeContext)
	}
}

func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(codeExecution)
}
