package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tariq-shuvo/social-media-rest-api/internal/core/domain"
	"github.com/tariq-shuvo/social-media-rest-api/internal/core/ports"
)

// PostService owns posts and their embedded likes and comments. Every
// mutation of an existing post is a read-modify-write of the whole document,
// serialized per post through the injected ports.Serializer.
type PostService struct {
	posts  ports.PostRepository
	users  ports.UserRepository
	serial ports.Serializer
	log    zerolog.Logger
	newID  func() string
	now    func() time.Time
}

func NewPostService(posts ports.PostRepository, users ports.UserRepository, serial ports.Serializer, log zerolog.Logger) *PostService {
	return &PostService{
		posts:  posts,
		users:  users,
		serial: serial,
		log:    log,
		newID:  uuid.NewString,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *PostService) Create(ctx context.Context, authorID, text string) (*domain.Post, error) {
	post, err := s.posts.Create(ctx, &domain.Post{
		UserID:   authorID,
		Text:     text,
		Likes:    []domain.Like{},
		Comments: []domain.Comment{},
		Date:     s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Info().Str("post_id", post.ID).Str("user_id", authorID).Msg("post created")
	return post, nil
}

// Update replaces the text of a post authored by callerID.
func (s *PostService) Update(ctx context.Context, postID, callerID, text string) (*domain.Post, error) {
	return s.mutate(ctx, postID, func(p *domain.Post) error {
		if !p.IsAuthor(callerID) {
			return domain.ErrNotOwner
		}
		p.Text = text
		return nil
	})
}

// Delete removes a post authored by callerID.
func (s *PostService) Delete(ctx context.Context, postID, callerID string) error {
	return s.serial.Do(ctx, postKey(postID), func(ctx context.Context) error {
		post, err := s.find(ctx, postID)
		if err != nil {
			return err
		}
		if !post.IsAuthor(callerID) {
			return domain.ErrNotOwner
		}
		if err := s.posts.Delete(ctx, postID); err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		s.log.Info().Str("post_id", postID).Str("user_id", callerID).Msg("post deleted")
		return nil
	})
}

// List returns every post, newest first, with author summaries.
func (s *PostService) List(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return s.withAuthors(ctx, posts)
}

// ListByAuthor returns the posts of one user, newest first. A user without
// posts yields an empty list; only a malformed id is an error.
func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	posts, err := s.posts.ListByAuthor(ctx, authorID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	return s.withAuthors(ctx, posts)
}

// ToggleLike flips callerID's like on the post.
func (s *PostService) ToggleLike(ctx context.Context, postID, callerID string) (*domain.Post, error) {
	return s.mutate(ctx, postID, func(p *domain.Post) error {
		p.ToggleLike(callerID)
		return nil
	})
}

// ListLikers resolves the users who liked a post, in stored like order.
func (s *PostService) ListLikers(ctx context.Context, postID string) ([]domain.PublicUser, error) {
	post, err := s.find(ctx, postID)
	if err != nil {
		return nil, err
	}

	ids := post.LikerIDs()
	if len(ids) == 0 {
		return []domain.PublicUser{}, nil
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list likers: %w", err)
	}

	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	out := make([]domain.PublicUser, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u.Public())
		}
	}
	return out, nil
}

// AddComment prepends a comment carrying a snapshot of the caller's name and avatar.
func (s *PostService) AddComment(ctx context.Context, postID, callerID, text string) (*domain.Post, error) {
	author, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("add comment: %w", err)
	}

	return s.mutate(ctx, postID, func(p *domain.Post) error {
		p.PrependComment(domain.Comment{
			ID:     s.newID(),
			UserID: callerID,
			Text:   text,
			Name:   author.DisplayName(),
			Avatar: author.Avatar,
			Date:   s.now(),
		})
		return nil
	})
}

// UpdateComment rewrites a comment's text. The caller is authorized if they
// wrote any comment on the post; only a comment matching both commentID and
// the caller is changed, and no match is not an error.
func (s *PostService) UpdateComment(ctx context.Context, postID, commentID, callerID, text string) (*domain.Post, error) {
	return s.mutate(ctx, postID, func(p *domain.Post) error {
		if !p.HasCommentBy(callerID) {
			return domain.ErrNotOwner
		}
		if p.EditComment(commentID, callerID, text) == 0 {
			s.log.Debug().Str("post_id", postID).Str("comment_id", commentID).Msg("comment update matched nothing")
		}
		return nil
	})
}

// DeleteComment removes every comment with commentID once the caller has
// passed the same collection-level check as UpdateComment.
func (s *PostService) DeleteComment(ctx context.Context, postID, commentID, callerID string) (*domain.Post, error) {
	return s.mutate(ctx, postID, func(p *domain.Post) error {
		if !p.HasCommentBy(callerID) {
			return domain.ErrNotOwner
		}
		p.RemoveComment(commentID)
		return nil
	})
}

// mutate runs a serialized read-modify-write cycle on one post.
func (s *PostService) mutate(ctx context.Context, postID string, apply func(*domain.Post) error) (*domain.Post, error) {
	var out *domain.Post
	err := s.serial.Do(ctx, postKey(postID), func(ctx context.Context) error {
		post, err := s.find(ctx, postID)
		if err != nil {
			return err
		}
		if err := apply(post); err != nil {
			return err
		}
		if err := s.posts.Save(ctx, post); err != nil {
			if errors.Is(err, domain.ErrPostNotFound) {
				return err
			}
			return fmt.Errorf("save post: %w", err)
		}
		out = post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostService) find(ctx context.Context, postID string) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidID) || errors.Is(err, domain.ErrPostNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return post, nil
}

// withAuthors fills in the author summary of each post. Posts whose author
// no longer exists are returned without one.
func (s *PostService) withAuthors(ctx context.Context, posts []*domain.Post) ([]*domain.Post, error) {
	if len(posts) == 0 {
		return []*domain.Post{}, nil
	}

	seen := make(map[string]struct{}, len(posts))
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.UserID]; !ok {
			seen[p.UserID] = struct{}{}
			ids = append(ids, p.UserID)
		}
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load post authors: %w", err)
	}
	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, p := range posts {
		if u, ok := byID[p.UserID]; ok {
			p.User = u.Summary()
		}
	}
	return posts, nil
}

func postKey(id string) string { return "post:" + id }
