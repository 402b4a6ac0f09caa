package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mesh-intelligence/dishes/internal/menu"
	"github.com/mesh-intelligence/dishes/internal/metrics"
	"github.com/mesh-intelligence/dishes/pkg/types"
)

// apiError is an error with the HTTP status and envelope fields to report.
type apiError struct {
	Status  int
	Message string
	Refresh bool
	Cause   error
}

func (e *apiError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *apiError) Unwrap() error { return e.Cause }

// badRequest reports malformed input that never reached the menu service.
func badRequest(message string, cause error) *apiError {
	return &apiError{Status: http.StatusBadRequest, Message: message, Cause: cause}
}

// asAPIError maps menu errors to statuses. Validation errors report their own
// text. Store failures are reported without the store's detail.
func asAPIError(err error) *apiError {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae
	}

	out := &apiError{Status: http.StatusInternalServerError, Message: err.Error(), Cause: err}
	switch metrics.Result(err) {
	case "invalid_name", "invalid_count":
		out.Status = http.StatusBadRequest
	case "not_found":
		out.Status = http.StatusNotFound
	case "duplicate":
		out.Status = http.StatusConflict
	case "inconsistent":
		out.Message = "menu left in inconsistent state, please refresh"
		var ie *types.InconsistentStateError
		if errors.As(err, &ie) {
			out.Message = fmt.Sprintf("rename %q to %q failed and %q could not be restored, please refresh", ie.Old, ie.New, ie.Old)
		}
	case "persist_error":
		out.Message = "failed to save menu"
	default:
		out.Message = "internal server error"
	}

	out.Refresh = menu.IsRefreshRequired(err)
	if errors.Is(err, types.ErrRename) && out.Status < http.StatusInternalServerError {
		out.Status = http.StatusConflict
	}
	return out
}
