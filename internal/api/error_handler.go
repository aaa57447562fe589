package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tariq-shuvo/social-media-rest-api/internal/api/middleware"
	"github.com/tariq-shuvo/social-media-rest-api/internal/core/domain"
)

// msgResponse is the single-message envelope: {"msg": "..."}.
type msgResponse struct {
	Msg string `json:"msg"`
}

type errorItem struct {
	Msg      string `json:"msg"`
	Param    string `json:"param,omitempty"`
	Location string `json:"location,omitempty"`
}

// errorsResponse is the list envelope: {"errors": [{"msg": "..."}]}.
type errorsResponse struct {
	Errors []errorItem `json:"errors"`
}

func errorList(msg string) errorsResponse {
	return errorsResponse{Errors: []errorItem{{Msg: msg}}}
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to a status code and one of the two error envelopes.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, any) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		resp := errorsResponse{Errors: make([]errorItem, 0, len(ve.Fields))}
		for _, f := range ve.Fields {
			resp.Errors = append(resp.Errors, errorItem{Msg: f.Message, Param: f.Field, Location: "body"})
		}
		return http.StatusBadRequest, resp
	}

	if domain.IsAuthKind(err, domain.AuthMissing) {
		return http.StatusUnauthorized, errorList("No token, authorization denied.")
	}
	var ae *domain.AuthError
	if errors.As(err, &ae) {
		return http.StatusUnauthorized, msgResponse{Msg: "Authorization not valid."}
	}

	switch {
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusBadRequest, errorList("User authorization failed.")
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusBadRequest, msgResponse{Msg: "Post not found"}
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusBadRequest, errorList("There is no profile for this user.")
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusBadRequest, msgResponse{Msg: "User not found"}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, errorList("User already exists.")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, errorList("Invalid credentials.")
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, msgResponse{Msg: fmt.Sprintf("%v", he.Message)}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("user_id", middleware.CallerFromContext(c.Request().Context())).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, msgResponse{Msg: "Server error"}
}
