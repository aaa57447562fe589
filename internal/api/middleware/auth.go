package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/tariq-shuvo/social-media-rest-api/internal/api/metrics"
	"github.com/tariq-shuvo/social-media-rest-api/internal/core/domain"
	"github.com/tariq-shuvo/social-media-rest-api/internal/core/ports"
)

// TokenHeader carries the identity token on private routes.
const TokenHeader = "x-auth-token"

const callerKey = "user_id"

type ctxKey struct{}

var callerCtxKey ctxKey

// Auth resolves the x-auth-token header to a caller id before the request
// reaches a handler. The id is trusted as-is; the user record is not reloaded.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(TokenHeader)
			if token == "" {
				metrics.AuthFailuresTotal.WithLabelValues(string(domain.AuthMissing)).Inc()
				return &domain.AuthError{Kind: domain.AuthMissing}
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				kind := domain.AuthMalformed
				var ae *domain.AuthError
				if errors.As(err, &ae) {
					kind = ae.Kind
				}
				metrics.AuthFailuresTotal.WithLabelValues(string(kind)).Inc()
				return &domain.AuthError{Kind: domain.AuthInvalid, Err: err}
			}

			c.Set(callerKey, userID)
			req := c.Request()
			c.SetRequest(req.WithContext(context.WithValue(req.Context(), callerCtxKey, userID)))

			return next(c)
		}
	}
}

// CallerID returns the id resolved by Auth, or "" on public routes.
func CallerID(c echo.Context) string {
	id, _ := c.Get(callerKey).(string)
	return id
}

// CallerFromContext returns the id resolved by Auth from a request context.
func CallerFromContext(ctx context.Context) string {
	id, _ := ctx.Value(callerCtxKey).(string)
	return id
}
