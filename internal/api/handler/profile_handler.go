package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tariq-shuvo/social-media-rest-api/internal/api/metrics"
	"github.com/tariq-shuvo/social-media-rest-api/internal/api/middleware"
	"github.com/tariq-shuvo/social-media-rest-api/internal/core/domain"
	"github.com/tariq-shuvo/social-media-rest-api/internal/core/ports"
)

// ProfileHandler handles HTTP requests for profiles and their experience and
// education lists.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Upsert handles POST /api/profile.
//
// @Summary      Create or update the caller's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      profileRequest  true  "Profile fields; empty fields are left unchanged"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /api/profile [post]
func (h *ProfileHandler) Upsert(c echo.Context) error {
	var req profileRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	profile, err := h.service.Upsert(c.Request().Context(), middleware.CallerID(c), ports.ProfileInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		Status:         req.Status,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		YouTube:        req.YouTube,
		Facebook:       req.Facebook,
		Twitter:        req.Twitter,
		Instagram:      req.Instagram,
		LinkedIn:       req.LinkedIn,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Me handles GET /api/profile/me.
//
// @Summary      Get the caller's profile
// @Tags         profile
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  domain.Profile
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /api/profile/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	profile, err := h.service.GetByOwner(c.Request().Context(), middleware.CallerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// List handles GET /api/profile.
//
// @Summary      List all profiles
// @Tags         profile
// @Produce      json
// @Success      200  {array}   domain.Profile
// @Failure      500  {object}  msgResponse
// @Router       /api/profile [get]
func (h *ProfileHandler) List(c echo.Context) error {
	profiles, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profiles)
}

// GetByUser handles GET /api/profile/:user_id.
//
// @Summary      Get a profile by user id
// @Tags         profile
// @Produce      json
// @Param        user_id  path      string  true  "Owner user id"
// @Success      200      {object}  domain.Profile
// @Failure      400      {object}  map[string]any
// @Router       /api/profile/{user_id} [get]
func (h *ProfileHandler) GetByUser(c echo.Context) error {
	profile, err := h.service.GetByOwner(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Delete handles DELETE /api/profile. It removes the caller's posts, profile
// and account.
//
// @Summary      Delete the caller's account
// @Tags         profile
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  msgResponse
// @Failure      401  {object}  map[string]any
// @Failure      500  {object}  msgResponse
// @Router       /api/profile [delete]
func (h *ProfileHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteCascade(c.Request().Context(), middleware.CallerID(c)); err != nil {
		outcome := "error"
		var ce *domain.CascadeError
		if errors.As(err, &ce) {
			outcome = ce.Step
		}
		metrics.CascadeDeletesTotal.WithLabelValues(outcome).Inc()
		return err
	}

	metrics.CascadeDeletesTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, msgResponse{Msg: "User deleted successfully."})
}

// AddExperience handles PUT /api/profile/experience.
//
// @Summary      Add a work history entry
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      experienceRequest  true  "Experience entry"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  map[string]any
// @Router       /api/profile/experience [put]
func (h *ProfileHandler) AddExperience(c echo.Context) error {
	in, err := bindExperience(c)
	if err != nil {
		return err
	}
	profile, err := h.service.AddExperience(c.Request().Context(), middleware.CallerID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateExperience handles PUT /api/profile/experience/update/:experience_id.
//
// @Summary      Replace a work history entry
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        experience_id  path      string             true  "Entry id"
// @Param        body           body      experienceRequest  true  "Experience entry"
// @Success      200            {object}  domain.Profile
// @Failure      400            {object}  map[string]any
// @Router       /api/profile/experience/update/{experience_id} [put]
func (h *ProfileHandler) UpdateExperience(c echo.Context) error {
	in, err := bindExperience(c)
	if err != nil {
		return err
	}
	profile, err := h.service.UpdateExperience(c.Request().Context(), middleware.CallerID(c), c.Param("experience_id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// RemoveExperience handles DELETE /api/profile/experience/:experience_id.
//
// @Summary      Remove a work history entry
// @Tags         profile
// @Produce      json
// @Security     TokenAuth
// @Param        experience_id  path      string  true  "Entry id"
// @Success      200            {object}  domain.Profile
// @Failure      400            {object}  map[string]any
// @Router       /api/profile/experience/{experience_id} [delete]
func (h *ProfileHandler) RemoveExperience(c echo.Context) error {
	profile, err := h.service.RemoveExperience(c.Request().Context(), middleware.CallerID(c), c.Param("experience_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// AddEducation handles PUT /api/profile/education.
//
// @Summary      Add an education entry
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      educationRequest  true  "Education entry"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  map[string]any
// @Router       /api/profile/education [put]
func (h *ProfileHandler) AddEducation(c echo.Context) error {
	in, err := bindEducation(c)
	if err != nil {
		return err
	}
	profile, err := h.service.AddEducation(c.Request().Context(), middleware.CallerID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateEducation handles PUT /api/profile/education/update/:education_id.
//
// @Summary      Replace an education entry
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        education_id  path      string            true  "Entry id"
// @Param        body          body      educationRequest  true  "Education entry"
// @Success      200           {object}  domain.Profile
// @Failure      400           {object}  map[string]any
// @Router       /api/profile/education/update/{education_id} [put]
func (h *ProfileHandler) UpdateEducation(c echo.Context) error {
	in, err := bindEducation(c)
	if err != nil {
		return err
	}
	profile, err := h.service.UpdateEducation(c.Request().Context(), middleware.CallerID(c), c.Param("education_id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// RemoveEducation handles DELETE /api/profile/education/:education_id.
//
// @Summary      Remove an education entry
// @Tags         profile
// @Produce      json
// @Security     TokenAuth
// @Param        education_id  path      string  true  "Entry id"
// @Success      200           {object}  domain.Profile
// @Failure      400           {object}  map[string]any
// @Router       /api/profile/education/{education_id} [delete]
func (h *ProfileHandler) RemoveEducation(c echo.Context) error {
	profile, err := h.service.RemoveEducation(c.Request().Context(), middleware.CallerID(c), c.Param("education_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func bindExperience(c echo.Context) (ports.ExperienceInput, error) {
	var req experienceRequest
	if err := bindValid(c, &req); err != nil {
		return ports.ExperienceInput{}, err
	}
	from, to, err := dateRange(req.From, req.To)
	if err != nil {
		return ports.ExperienceInput{}, err
	}
	return ports.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	}, nil
}

func bindEducation(c echo.Context) (ports.EducationInput, error) {
	var req educationRequest
	if err := bindValid(c, &req); err != nil {
		return ports.EducationInput{}, err
	}
	from, to, err := dateRange(req.From, req.To)
	if err != nil {
		return ports.EducationInput{}, err
	}
	return ports.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	}, nil
}
