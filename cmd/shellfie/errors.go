package main

import (
	"errors"

	"github.com/danielgatis/go-shellfie"
)

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates usage mistakes and unclassified failures
	ExitGeneralError = 1
	// ExitConfigError indicates the config could not be parsed or is invalid
	ExitConfigError = 2
	// ExitRenderError indicates layout or rasterization failed
	ExitRenderError = 3
	// ExitDependencyError indicates a required external program is missing
	ExitDependencyError = 4
)

// UsageError is returned for malformed command lines.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

func usageError(msg string) error {
	return &UsageError{Msg: msg}
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitGeneralError
	}
	switch shellfie.KindOf(err) {
	case shellfie.KindParse, shellfie.KindValidation:
		return ExitConfigError
	case shellfie.KindRender:
		return ExitRenderError
	case shellfie.KindDependency:
		return ExitDependencyError
	default:
		return ExitGeneralError
	}
}
