package ports

import (
	"context"

	"github.com/tariq-shuvo/social-media-rest-api/internal/core/domain"
)

// PostRepository persists posts with their embedded likes and comments.
// List and ListByAuthor return posts newest-first.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context) ([]*domain.Post, error)
	ListByAuthor(ctx context.Context, userID string) ([]*domain.Post, error)
	// Save replaces the whole post document.
	Save(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) error
	DeleteByAuthor(ctx context.Context, userID string) (int64, error)
}
