package ports

import (
	"context"

	"github.com/tariq-shuvo/social-media-rest-api/internal/core/domain"
)

// UserRepository defines the persistence operations for identities.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users matching ids. Unknown ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}
