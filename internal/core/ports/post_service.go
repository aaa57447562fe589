package ports

import (
	"context"

	"github.com/tariq-shuvo/social-media-rest-api/internal/core/domain"
)

type PostService interface {
	Create(ctx context.Context, authorID, text string) (*domain.Post, error)
	Update(ctx context.Context, postID, callerID, text string) (*domain.Post, error)
	Delete(ctx context.Context, postID, callerID string) error
	List(ctx context.Context) ([]*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error)

	ToggleLike(ctx context.Context, postID, callerID string) (*domain.Post, error)
	ListLikers(ctx context.Context, postID string) ([]domain.PublicUser, error)

	AddComment(ctx context.Context, postID, callerID, text string) (*domain.Post, error)
	UpdateComment(ctx context.Context, postID, commentID, callerID, text string) (*domain.Post, error)
	DeleteComment(ctx context.Context, postID, commentID, callerID string) (*domain.Post, error)
}
