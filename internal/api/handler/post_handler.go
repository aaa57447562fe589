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

// PostHandler handles HTTP requests for posts, likes and comments. Every
// route is private.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// Create handles POST /api/post.
//
// @Summary      Create a post
// @Tags         post
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      postRequest  true  "Post text"
// @Success      200   {object}  domain.Post
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /api/post [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req postRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	post, err := h.service.Create(c.Request().Context(), middleware.CallerID(c), req.Text)
	if err != nil {
		return err
	}
	metrics.PostsCreatedTotal.Inc()
	return c.JSON(http.StatusOK, post)
}

// Update handles PUT /api/post/:post_id.
//
// @Summary      Edit a post
// @Tags         post
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        post_id  path      string       true  "Post id"
// @Param        body     body      postRequest  true  "New text"
// @Success      200      {object}  domain.Post
// @Failure      400      {object}  map[string]any
// @Router       /api/post/{post_id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	var req postRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	post, err := h.service.Update(c.Request().Context(), c.Param("post_id"), middleware.CallerID(c), req.Text)
	if err != nil {
		return denied("post", err)
	}
	return c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /api/post/:post_id.
//
// @Summary      Delete a post
// @Tags         post
// @Produce      json
// @Security     TokenAuth
// @Param        post_id  path      string  true  "Post id"
// @Success      200      {object}  msgResponse
// @Failure      400      {object}  map[string]any
// @Router       /api/post/{post_id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("post_id"), middleware.CallerID(c)); err != nil {
		return denied("post", err)
	}
	return c.JSON(http.StatusOK, msgResponse{Msg: "Post removed successfully."})
}

// List handles GET /api/post.
//
// @Summary      List all posts, newest first
// @Tags         post
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   domain.Post
// @Failure      401  {object}  map[string]any
// @Router       /api/post [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// ListByUser handles GET /api/post/:user_id.
//
// @Summary      List a user's posts, newest first
// @Tags         post
// @Produce      json
// @Security     TokenAuth
// @Param        user_id  path      string  true  "Author user id"
// @Success      200      {array}   domain.Post
// @Failure      400      {object}  msgResponse
// @Router       /api/post/{user_id} [get]
func (h *PostHandler) ListByUser(c echo.Context) error {
	posts, err := h.service.ListByAuthor(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// ToggleLike handles PUT /api/post/like/:post_id. A second call by the same
// user removes the like again.
//
// @Summary      Like or unlike a post
// @Tags         post
// @Produce      json
// @Security     TokenAuth
// @Param        post_id  path      string  true  "Post id"
// @Success      200      {object}  domain.Post
// @Failure      400      {object}  msgResponse
// @Router       /api/post/like/{post_id} [put]
func (h *PostHandler) ToggleLike(c echo.Context) error {
	caller := middleware.CallerID(c)
	post, err := h.service.ToggleLike(c.Request().Context(), c.Param("post_id"), caller)
	if err != nil {
		return err
	}

	action := "unlike"
	if post.LikedBy(caller) {
		action = "like"
	}
	metrics.LikesToggledTotal.WithLabelValues(action).Inc()
	return c.JSON(http.StatusOK, post)
}

// ListLikers handles GET /api/post/alllike/:post_id.
//
// @Summary      List the users who liked a post
// @Tags         post
// @Produce      json
// @Security     TokenAuth
// @Param        post_id  path      string  true  "Post id"
// @Success      200      {array}   domain.PublicUser
// @Failure      400      {object}  msgResponse
// @Router       /api/post/alllike/{post_id} [get]
func (h *PostHandler) ListLikers(c echo.Context) error {
	users, err := h.service.ListLikers(c.Request().Context(), c.Param("post_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// AddComment handles PUT /api/post/comment/:post_id.
//
// @Summary      Comment on a post
// @Tags         post
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        post_id  path      string          true  "Post id"
// @Param        body     body      commentRequest  true  "Comment text"
// @Success      200      {object}  domain.Post
// @Failure      400      {object}  map[string]any
// @Router       /api/post/comment/{post_id} [put]
func (h *PostHandler) AddComment(c echo.Context) error {
	var req commentRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	post, err := h.service.AddComment(c.Request().Context(), c.Param("post_id"), middleware.CallerID(c), req.Text)
	if err != nil {
		return err
	}
	metrics.CommentsTotal.WithLabelValues("add").Inc()
	return c.JSON(http.StatusOK, post)
}

// UpdateComment handles PUT /api/post/comment/update/:post_id/:comment_id.
//
// @Summary      Edit a comment
// @Tags         post
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        post_id     path      string          true  "Post id"
// @Param        comment_id  path      string          true  "Comment id"
// @Param        body        body      commentRequest  true  "New text"
// @Success      200         {object}  domain.Post
// @Failure      400         {object}  map[string]any
// @Router       /api/post/comment/update/{post_id}/{comment_id} [put]
func (h *PostHandler) UpdateComment(c echo.Context) error {
	var req commentRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	post, err := h.service.UpdateComment(c.Request().Context(), c.Param("post_id"), c.Param("comment_id"), middleware.CallerID(c), req.Text)
	if err != nil {
		return denied("comment", err)
	}
	metrics.CommentsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, post)
}

// DeleteComment handles DELETE /api/post/comment/:post_id/:comment_id.
//
// @Summary      Delete a comment
// @Tags         post
// @Produce      json
// @Security     TokenAuth
// @Param        post_id     path      string  true  "Post id"
// @Param        comment_id  path      string  true  "Comment id"
// @Success      200         {object}  domain.Post
// @Failure      400         {object}  map[string]any
// @Router       /api/post/comment/{post_id}/{comment_id} [delete]
func (h *PostHandler) DeleteComment(c echo.Context) error {
	post, err := h.service.DeleteComment(c.Request().Context(), c.Param("post_id"), c.Param("comment_id"), middleware.CallerID(c))
	if err != nil {
		return denied("comment", err)
	}
	metrics.CommentsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, post)
}

// denied counts ownership refusals and passes err through.
func denied(resource string, err error) error {
	if errors.Is(err, domain.ErrNotOwner) {
		metrics.OwnershipDenialsTotal.WithLabelValues(resource).Inc()
	}
	return err
}
