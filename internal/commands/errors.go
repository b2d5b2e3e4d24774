package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeValidationFailed = "SITE_COMMAND_VALIDATION_FAILED"
	codeCanceled         = "SITE_COMMAND_CANCELED"
	codeDeadline         = "SITE_COMMAND_DEADLINE"
	codeContextError     = "SITE_COMMAND_CONTEXT_ERROR"
	codeExecutionFailed  = "SITE_COMMAND_EXECUTION_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "site command validation failed").
		WithTextCode(codeValidationFailed)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "site command canceled").
			WithTextCode(codeCanceled)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "site command deadline exceeded").
			WithTextCode(codeDeadline)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "site command context error").
		WithTextCode(codeContextError)
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "site command failed").
		WithTextCode(codeExecutionFailed)
}
