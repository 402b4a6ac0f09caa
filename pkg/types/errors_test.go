package types

import (
	"errors"
	"strings"
	"testing"
)

func TestRenameErrorMatching(t *testing.T) {
	err := error(&RenameError{Old: "A", New: "B", Stage: RenameStageAdd, Cause: ErrDuplicate})

	if !errors.Is(err, ErrRename) {
		t.Fatal("RenameError should match ErrRename")
	}
	if !errors.Is(err, ErrDuplicate) {
		t.Fatal("RenameError should unwrap to its cause")
	}
	if errors.Is(err, ErrInconsistentState) {
		t.Fatal("RenameError must not match ErrInconsistentState")
	}
	if !strings.Contains(err.Error(), `"A"`) || !strings.Contains(err.Error(), "add step") {
		t.Fatalf("unexpected message: %s", err)
	}
}

func TestInconsistentStateErrorMatching(t *testing.T) {
	err := error(&InconsistentStateError{Old: "A", New: "B", Cause: ErrDuplicate, CompensationErr: ErrPersist})

	if !errors.Is(err, ErrInconsistentState) {
		t.Fatal("InconsistentStateError should match ErrInconsistentState")
	}
	if errors.Is(err, ErrRename) {
		t.Fatal("InconsistentStateError must stay distinct from ErrRename")
	}
	if !errors.Is(err, ErrDuplicate) || !errors.Is(err, ErrPersist) {
		t.Fatal("InconsistentStateError should unwrap to both causes")
	}

	var ise *InconsistentStateError
	if !errors.As(err, &ise) || ise.Old != "A" {
		t.Fatalf("errors.As failed: %v", err)
	}
}
