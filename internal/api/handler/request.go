package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// bindValid decodes the request body into req and runs the validator. Both
// failures are returned for the central error handler to render.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
