package ports

import (
	"context"

	"github.com/tariq-shuvo/social-media-rest-api/internal/core/domain"
)

// ProfileRepository persists profiles as whole documents keyed by owner.
type ProfileRepository interface {
	FindByUser(ctx context.Context, userID string) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	// Create inserts a first profile for profile.UserID, reporting
	// domain.ErrProfileExists if the owner already has one.
	Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	// Update replaces the owner's existing profile document. It never inserts
	// and reports domain.ErrProfileNotFound when the profile is gone.
	Update(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	DeleteByUser(ctx context.Context, userID string) error
}
