package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tariq-shuvo/social-media-rest-api/internal/api/middleware"
	"github.com/tariq-shuvo/social-media-rest-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account and signs the caller in.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]any
// @Failure      500   {object}  msgResponse
// @Router       /api/users [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	token, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Login authenticates a user and returns an identity token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]any
// @Failure      500   {object}  msgResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Me returns the caller's own account without the password hash.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  domain.User
// @Failure      400  {object}  msgResponse
// @Failure      401  {object}  map[string]any
// @Router       /api/auth [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.authService.Me(c.Request().Context(), middleware.CallerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
