package ports

import (
	"context"
	"time"

	"github.com/tariq-shuvo/social-media-rest-api/internal/core/domain"
)

// ProfileInput is a partial set of profile attributes. Empty strings leave the
// stored value untouched. Skills is a comma separated list.
type ProfileInput struct {
	Company        string
	Website        string
	Location       string
	Bio            string
	Status         string
	GithubUsername string
	Skills         string
	YouTube        string
	Facebook       string
	Twitter        string
	Instagram      string
	LinkedIn       string
}

// ExperienceInput carries the fields of a work history entry.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// EducationInput carries the fields of an education entry.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

type ProfileService interface {
	Upsert(ctx context.Context, ownerID string, in ProfileInput) (*domain.Profile, error)
	GetByOwner(ctx context.Context, ownerID string) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	DeleteCascade(ctx context.Context, ownerID string) error

	AddExperience(ctx context.Context, ownerID string, in ExperienceInput) (*domain.Profile, error)
	UpdateExperience(ctx context.Context, ownerID, entryID string, in ExperienceInput) (*domain.Profile, error)
	RemoveExperience(ctx context.Context, ownerID, entryID string) (*domain.Profile, error)

	AddEducation(ctx context.Context, ownerID string, in EducationInput) (*domain.Profile, error)
	UpdateEducation(ctx context.Context, ownerID, entryID string, in EducationInput) (*domain.Profile, error)
	RemoveEducation(ctx context.Context, ownerID, entryID string) (*domain.Profile, error)
}

// ProfileCache is a read-through cache in front of ProfileRepository. Every
// owner has a generation that Invalidate advances; Fill only stores a profile
// if the generation still matches the one Get reported before the load.
type ProfileCache interface {
	// Get returns the cached profile, or a nil profile and the generation a
	// following Fill must present.
	Get(ctx context.Context, ownerID string) (*domain.Profile, int64, error)
	// Fill stores profile unless its owner was invalidated after gen was read.
	Fill(ctx context.Context, profile *domain.Profile, gen int64) error
	Invalidate(ctx context.Context, ownerID string) error
}
