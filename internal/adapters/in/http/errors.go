package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/generated/servers"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps application errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrInvalidStatusTransition), errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, kernel.ErrCurrencyMismatch):
		return http.StatusUnprocessableEntity
	case errs.IsDomainError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse writes err as a servers.Error. Internal failures are logged and
// answered with the fallback message only.
func (s *Server) errorResponse(ctx echo.Context, err error, fallback string) error {
	code := statusFor(err)

	message := fmt.Sprintf("%s: %s", fallback, err.Error())
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), fallback,
			slog.String("path", ctx.Path()),
			slog.String("error", err.Error()),
		)
		message = fallback
	}

	return ctx.JSON(code, servers.Error{
		Code:    code,
		Message: message,
	})
}

// NewHTTPErrorHandler renders errors that escape handlers, such as unknown
// routes or unparsable parameters, in the same shape as handler errors.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http_error_handler")

	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			message = fmt.Sprint(httpErr.Message)
		} else {
			logger.ErrorContext(ctx.Request().Context(), "unhandled error",
				slog.String("path", ctx.Path()),
				slog.String("error", err.Error()),
			)
		}

		var writeErr error
		if ctx.Request().Method == http.MethodHead {
			writeErr = ctx.NoContent(code)
		} else {
			writeErr = ctx.JSON(code, servers.Error{Code: code, Message: message})
		}
		if writeErr != nil {
			logger.ErrorContext(ctx.Request().Context(), "failed to write error response",
				slog.String("error", writeErr.Error()),
			)
		}
	}
}
