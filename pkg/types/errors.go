package types

import (
	"errors"
	"fmt"
)

// Menu operation errors.
var (
	ErrInvalidName       = errors.New("dish name must not be empty")
	ErrDuplicate         = errors.New("dish already exists")
	ErrNotFound          = errors.New("dish not found")
	ErrInvalidCount      = errors.New("count must be at least 1")
	ErrRename            = errors.New("rename failed")
	ErrInconsistentState = errors.New("menu left in inconsistent state")
	ErrPersist           = errors.New("persist menu")
)

// Rename stages.
const (
	RenameStageRemove = "remove"
	RenameStageAdd    = "add"
)

// RenameError reports a rename that failed and left the menu with its
// original contents. When Stage is RenameStageAdd the old name was restored
// at the end of the menu, so ordering may differ from before the call.
type RenameError struct {
	Old   string
	New   string
	Stage string
	Cause error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("rename %q to %q: %s step: %v", e.Old, e.New, e.Stage, e.Cause)
}

// Unwrap returns the step failure.
func (e *RenameError) Unwrap() error { return e.Cause }

// Is matches ErrRename.
func (e *RenameError) Is(target error) bool { return target == ErrRename }

// InconsistentStateError reports a rename whose add step failed and whose
// compensating re-add of Old also failed. The rename removed Old and never
// added New, so the menu matches neither the state before the call nor the
// requested one. Callers must refresh their view of the menu.
type InconsistentStateError struct {
	Old             string
	New             string
	Cause           error
	CompensationErr error
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("rename %q to %q: add failed (%v) and restoring %q failed (%v); menu must be refreshed",
		e.Old, e.New, e.Cause, e.Old, e.CompensationErr)
}

// Unwrap exposes both the add failure and the compensation failure.
func (e *InconsistentStateError) Unwrap() []error {
	return []error{e.Cause, e.CompensationErr}
}

// Is matches ErrInconsistentState.
func (e *InconsistentStateError) Is(target error) bool { return target == ErrInconsistentState }
