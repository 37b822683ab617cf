package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/zopuu/soa-team-20/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors: a stable
// machine-readable kind plus a human-readable message.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<kind>", "message": "<text>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, kind, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: kind, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	// Echo's own errors (bind failures, 404 from router, auth middleware).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusUnauthorized:
			return he.Code, "unauthorized", fmt.Sprintf("%v", he.Message)
		case http.StatusForbidden:
			return he.Code, "forbidden", fmt.Sprintf("%v", he.Message)
		case http.StatusBadRequest:
			return he.Code, "validation_error", fmt.Sprintf("%v", he.Message)
		}
		return he.Code, "http_error", fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. Credential failures
	// share one kind and message regardless of cause, so responses never
	// reveal whether a username exists.
	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusBadRequest, "username_taken", "Username taken."
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, "validation_error", "Role must be Guide or Tourist."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials", "Invalid username or password."
	case errors.Is(err, domain.ErrAccountBlocked):
		return http.StatusLocked, "account_blocked", "Account is blocked."
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "too_many_attempts", "Too many failed login attempts."
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "not_found", "User not found."
	case errors.Is(err, domain.ErrAlreadyBlocked):
		return http.StatusBadRequest, "already_blocked", "User already blocked."
	case errors.Is(err, domain.ErrAlreadyActive):
		return http.StatusBadRequest, "already_active", "User already active."
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden", "Access forbidden."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal", "Internal server error."
}
