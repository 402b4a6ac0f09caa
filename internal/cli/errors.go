package cli

import (
	"errors"

	"github.com/mesh-intelligence/dishes/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for err.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// sysErr marks err as a failure of the environment rather than of the input.
func sysErr(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitSysError, err: err}
}

// menuErr classifies an error from a menu operation.
func menuErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, types.ErrPersist) || errors.Is(err, types.ErrInconsistentState) {
		return sysErr(err)
	}
	return &exitError{code: exitUserError, err: err}
}

// exitCode maps err to a process exit code. Unclassified errors, such as
// cobra argument errors, are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
