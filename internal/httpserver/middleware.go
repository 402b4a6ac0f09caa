package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mesh-intelligence/dishes/internal/correlation"
)

// correlationMiddleware reuses a well-formed X-Request-ID from the client
// and otherwise assigns one, then echoes it on the response.
func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := correlation.FromHeader(c.Request().Header.Get(correlation.Header))
		ctx := correlation.WithID(c.Request().Context(), id)
		c.SetRequest(c.Request().WithContext(ctx))
		c.Response().Header().Set(correlation.Header, id)
		return next(c)
	}
}

// ErrorHandlingMiddleware converts handler errors into failure envelopes.
func ErrorHandlingMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var apiErr *apiError
			if errors.As(err, &apiErr) {
				return writeError(c, apiErr)
			}

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				return err
			}

			return writeError(c, asAPIError(err))
		}
	}
}

// handleHTTPError renders errors Echo raises itself (unknown route, method
// not allowed) in the same envelope.
func (s *Server) handleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		message = fmt.Sprint(httpErr.Message)
	}

	if err := writeError(c, &apiError{Status: status, Message: message, Cause: err}); err != nil {
		slog.ErrorContext(c.Request().Context(), "Failed to write error response", "error", err)
	}
}

func writeError(c echo.Context, err *apiError) error {
	logError(c, err)
	if werr := c.JSON(err.Status, Failure(err.Message, err.Refresh)); werr != nil {
		return fmt.Errorf("failed to write error response: %w", werr)
	}
	return nil
}

func logError(c echo.Context, err *apiError) {
	attrs := []any{
		"message", err.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", err.Status,
	}
	if err.Refresh {
		attrs = append(attrs, "refresh", true)
	}
	ctx := c.Request().Context()

	switch {
	case err.Status >= http.StatusInternalServerError:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.ErrorContext(ctx, "Internal error", attrs...)
	case err.Status == http.StatusConflict:
		slog.WarnContext(ctx, "Conflict", attrs...)
	case err.Status == http.StatusNotFound:
		slog.InfoContext(ctx, "Not found", attrs...)
	default:
		slog.InfoContext(ctx, "Validation error", attrs...)
	}
}
