package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tariq-shuvo/social-media-rest-api/internal/core/domain"
	"github.com/tariq-shuvo/social-media-rest-api/internal/core/ports"
)

// stubPostService embeds the interface so each test only supplies what it calls.
type stubPostService struct {
	ports.PostService
	createFn        func(ctx context.Context, authorID, text string) (*domain.Post, error)
	updateFn        func(ctx context.Context, postID, callerID, text string) (*domain.Post, error)
	deleteFn        func(ctx context.Context, postID, callerID string) error
	toggleFn        func(ctx context.Context, postID, callerID string) (*domain.Post, error)
	updateCommentFn func(ctx context.Context, postID, commentID, callerID, text string) (*domain.Post, error)
}

func (s *stubPostService) Create(ctx context.Context, authorID, text string) (*domain.Post, error) {
	return s.createFn(ctx, authorID, text)
}

func (s *stubPostService) Update(ctx context.Context, postID, callerID, text string) (*domain.Post, error) {
	return s.updateFn(ctx, postID, callerID, text)
}

func (s *stubPostService) Delete(ctx context.Context, postID, callerID string) error {
	return s.deleteFn(ctx, postID, callerID)
}

func (s *stubPostService) ToggleLike(ctx context.Context, postID, callerID string) (*domain.Post, error) {
	return s.toggleFn(ctx, postID, callerID)
}

func (s *stubPostService) UpdateComment(ctx context.Context, postID, commentID, callerID, text string) (*domain.Post, error) {
	return s.updateCommentFn(ctx, postID, commentID, callerID, text)
}

func asCaller(c echo.Context, id string) echo.Context {
	c.Set("user_id", id)
	return c
}

func TestPostHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		createFn: func(ctx context.Context, authorID, text string) (*domain.Post, error) {
			if authorID != "u1" || text != "hello" {
				t.Fatalf("unexpected args: %s %s", authorID, text)
			}
			return &domain.Post{ID: "p1", UserID: authorID, Text: text, Likes: []domain.Like{}, Comments: []domain.Comment{}}, nil
		},
	}
	h := NewPostHandler(stub)

	rec := httptest.NewRecorder()
	c := asCaller(e.NewContext(jsonRequest(http.MethodPost, "/api/post", `{"text":"hello"}`), rec), "u1")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "p1" || resp["text"] != "hello" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestPostHandler_Create_EmptyText(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(&stubPostService{})

	c := asCaller(e.NewContext(jsonRequest(http.MethodPost, "/api/post", `{"text":""}`), httptest.NewRecorder()), "u1")

	var ve *domain.ValidationError
	if err := h.Create(c); !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Fields[0].Field != "text" || ve.Fields[0].Message != "Post should not be empty." {
		t.Fatalf("unexpected fields: %+v", ve.Fields)
	}
}

func TestPostHandler_Update_PassesPathAndCaller(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		updateFn: func(ctx context.Context, postID, callerID, text string) (*domain.Post, error) {
			if postID != "p1" || callerID != "u2" {
				t.Fatalf("unexpected args: %s %s", postID, callerID)
			}
			return nil, domain.ErrNotOwner
		},
	}
	h := NewPostHandler(stub)

	c := asCaller(e.NewContext(jsonRequest(http.MethodPut, "/api/post/p1", `{"text":"x"}`), httptest.NewRecorder()), "u2")
	c.SetParamNames("post_id")
	c.SetParamValues("p1")

	if err := h.Update(c); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestPostHandler_Delete(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		deleteFn: func(ctx context.Context, postID, callerID string) error { return nil },
	}
	h := NewPostHandler(stub)

	rec := httptest.NewRecorder()
	c := asCaller(e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/post/p1", nil), rec), "u1")
	c.SetParamNames("post_id")
	c.SetParamValues("p1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "{\"msg\":\"Post removed successfully.\"}\n" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestPostHandler_ToggleLike_ReturnsPost(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		toggleFn: func(ctx context.Context, postID, callerID string) (*domain.Post, error) {
			return &domain.Post{ID: postID, Likes: []domain.Like{{UserID: callerID}}}, nil
		},
	}
	h := NewPostHandler(stub)

	rec := httptest.NewRecorder()
	c := asCaller(e.NewContext(httptest.NewRequest(http.MethodPut, "/api/post/like/p1", nil), rec), "u1")
	c.SetParamNames("post_id")
	c.SetParamValues("p1")

	if err := h.ToggleLike(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Likes []struct {
			User string `json:"user"`
		} `json:"likes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Likes) != 1 || resp.Likes[0].User != "u1" {
		t.Fatalf("unexpected likes: %+v", resp.Likes)
	}
}

func TestPostHandler_UpdateComment_Params(t *testing.T) {
	e := newTestEcho()
	stub := &stubPostService{
		updateCommentFn: func(ctx context.Context, postID, commentID, callerID, text string) (*domain.Post, error) {
			if postID != "p1" || commentID != "c1" || callerID != "u1" || text != "edited" {
				t.Fatalf("unexpected args: %s %s %s %s", postID, commentID, callerID, text)
			}
			return &domain.Post{ID: postID}, nil
		},
	}
	h := NewPostHandler(stub)

	c := asCaller(e.NewContext(jsonRequest(http.MethodPut, "/api/post/comment/update/p1/c1", `{"text":"edited"}`), httptest.NewRecorder()), "u1")
	c.SetParamNames("post_id", "comment_id")
	c.SetParamValues("p1", "c1")

	if err := h.UpdateComment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestPostHandler_UpdateComment_EmptyText(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(&stubPostService{})

	c := asCaller(e.NewContext(jsonRequest(http.MethodPut, "/api/post/comment/update/p1/c1", `{}`), httptest.NewRecorder()), "u1")

	var ve *domain.ValidationError
	if err := h.UpdateComment(c); !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Fields[0].Message != "Comment should not be empty." {
		t.Fatalf("unexpected message: %q", ve.Fields[0].Message)
	}
}
