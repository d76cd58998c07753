package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/storykit/pkg/binder"
	"github.com/dmitrymomot/storykit/pkg/logger"
	"github.com/dmitrymomot/storykit/pkg/requestid"
	"github.com/dmitrymomot/storykit/pkg/validator"
)

// classify maps an arbitrary error onto an HTTPError, wrapping the original
// so that its text survives as the response message for client errors.
func classify(err error) error {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return err
	case errors.Is(err, binder.ErrUnsupportedMediaType),
		errors.Is(err, binder.ErrMissingContentType):
		return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, err.Error())
	case errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrFailedToParsePath),
		validator.IsValidationError(err):
		return fmt.Errorf("%w: %s", ErrBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return ErrServiceUnavailable
	default:
		return ErrInternalServerError
	}
}

// NewErrorHandler creates the error handler used by every route: it logs the
// failure with the request ID and renders a JSON error. Client errors log at
// warn level, everything else at error level.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		classified := classify(err)

		var httpErr HTTPError
		_ = errors.As(classified, &httpErr)

		level := slog.LevelError
		if httpErr.Code >= http.StatusBadRequest && httpErr.Code < http.StatusInternalServerError {
			level = slog.LevelWarn
		}

		r := ctx.Request()
		log.LogAttrs(r.Context(), level, "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			slog.Int("status_code", httpErr.Code),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if renderErr := JSONError(classified).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response",
				logger.Error(renderErr),
				logger.Component("error_handler"),
			)
		}
	}
}
