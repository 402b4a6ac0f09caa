package menu

import (
	"context"
	"errors"

	"github.com/mesh-intelligence/dishes/pkg/types"
)

// Rename replaces oldName with newName as two steps: remove oldName, then
// add newName. The store offers no atomic update, so a failed add is
// compensated by re-adding oldName.
//
// Outcomes:
//   - success: newName is on the menu at the end, oldName is gone.
//   - *types.RenameError: the menu holds its original names. After a failed
//     add step the restored oldName sits at the end.
//   - *types.InconsistentStateError: the add and the compensation both
//     failed. Neither name is on the menu.
//
// Other writers may run between the steps.
func (s *Service) Rename(ctx context.Context, oldName, newName string) error {
	err := s.rename(ctx, oldName, newName)
	s.metrics.Observe("rename", err)
	return err
}

func (s *Service) rename(ctx context.Context, oldName, newName string) error {
	oldN := types.NormalizeName(oldName)
	newN := types.NormalizeName(newName)

	if err := s.remove(ctx, oldN); err != nil {
		return &types.RenameError{Old: oldN, New: newN, Stage: types.RenameStageRemove, Cause: err}
	}

	if s.betweenRenameSteps != nil {
		s.betweenRenameSteps()
	}

	addErr := s.add(ctx, newN)
	if addErr == nil {
		s.logger.DebugContext(ctx, "Dish renamed", "old", oldN, "new", newN)
		return nil
	}

	s.logger.WarnContext(ctx, "Rename add step failed, restoring old name",
		"old", oldN, "new", newN, "error", addErr)

	if compErr := s.add(ctx, oldN); compErr != nil {
		s.metrics.Inconsistent()
		s.logger.ErrorContext(ctx, "Rename compensation failed, menu is inconsistent",
			"old", oldN, "new", newN, "error", addErr, "compensation_error", compErr)
		return &types.InconsistentStateError{Old: oldN, New: newN, Cause: addErr, CompensationErr: compErr}
	}

	return &types.RenameError{Old: oldN, New: newN, Stage: types.RenameStageAdd, Cause: addErr}
}

// IsRefreshRequired reports whether err leaves the caller's copy of the
// menu stale, so a fresh List is needed.
func IsRefreshRequired(err error) bool {
	return errors.Is(err, types.ErrRename) || errors.Is(err, types.ErrInconsistentState)
}
