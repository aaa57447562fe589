package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tariq-shuvo/social-media-rest-api/internal/core/domain"
	"github.com/tariq-shuvo/social-media-rest-api/internal/core/ports"
)

// ProfileService owns profiles and their experience/education lists, and
// performs account deletion across posts, profiles and users.
type ProfileService struct {
	profiles ports.ProfileRepository
	posts    ports.PostRepository
	users    ports.UserRepository
	cache    ports.ProfileCache
	serial   ports.Serializer
	log      zerolog.Logger
	newID    func() string
	now      func() time.Time
}

func NewProfileService(
	profiles ports.ProfileRepository,
	posts ports.PostRepository,
	users ports.UserRepository,
	cache ports.ProfileCache,
	serial ports.Serializer,
	log zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		posts:    posts,
		users:    users,
		cache:    cache,
		serial:   serial,
		log:      log,
		newID:    uuid.NewString,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Upsert creates the owner's profile or merges the non-empty fields of in
// into the existing one.
func (s *ProfileService) Upsert(ctx context.Context, ownerID string, in ports.ProfileInput) (*domain.Profile, error) {
	var out *domain.Profile
	err := s.serial.Do(ctx, profileKey(ownerID), func(ctx context.Context) error {
		saved, err := s.upsertOnce(ctx, ownerID, in)
		if errors.Is(err, domain.ErrProfileExists) {
			// Created by another instance between our read and insert.
			saved, err = s.upsertOnce(ctx, ownerID, in)
		}
		if err != nil {
			return err
		}
		out = saved
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, ownerID)
	return out, nil
}

func (s *ProfileService) upsertOnce(ctx context.Context, ownerID string, in ports.ProfileInput) (*domain.Profile, error) {
	profile, err := s.profiles.FindByUser(ctx, ownerID)
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		profile = &domain.Profile{
			UserID:     ownerID,
			Skills:     []string{},
			Experience: []domain.Experience{},
			Education:  []domain.Education{},
			Date:       s.now(),
		}
		mergeProfile(profile, in)
		saved, err := s.profiles.Create(ctx, profile)
		if err != nil {
			return nil, fmt.Errorf("create profile: %w", err)
		}
		return saved, nil
	case errors.Is(err, domain.ErrInvalidID):
		return nil, domain.ErrProfileNotFound
	case err != nil:
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	mergeProfile(profile, in)
	saved, err := s.profiles.Update(ctx, profile)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return saved, nil
}

// GetByOwner returns the owner's profile with the owner summary filled in.
// A cache outage only costs the fill; the profile is still loaded.
func (s *ProfileService) GetByOwner(ctx context.Context, ownerID string) (*domain.Profile, error) {
	cached, gen, cacheErr := s.cache.Get(ctx, ownerID)
	if cacheErr == nil && cached != nil {
		return cached, nil
	}
	if cacheErr != nil {
		s.log.Warn().Err(cacheErr).Str("user_id", ownerID).Msg("profile cache read failed")
	}

	profile, err := s.profiles.FindByUser(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidID) || errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if err := s.withOwners(ctx, []*domain.Profile{profile}); err != nil {
		return nil, err
	}
	if cacheErr == nil {
		if err := s.cache.Fill(ctx, profile, gen); err != nil {
			s.log.Warn().Err(err).Str("user_id", ownerID).Msg("failed to cache profile")
		}
	}
	return profile, nil
}

// List returns every profile with owner summaries, in no particular order.
func (s *ProfileService) List(ctx context.Context) ([]*domain.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	if len(profiles) == 0 {
		return []*domain.Profile{}, nil
	}
	if err := s.withOwners(ctx, profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// DeleteCascade removes the owner's posts, then the profile, then the user.
// The profile step waits for in-flight edits of the same profile. The steps
// are not atomic: a failure leaves the earlier deletions in place
// and is reported as a *domain.CascadeError naming the failed step.
func (s *ProfileService) DeleteCascade(ctx context.Context, ownerID string) error {
	n, err := s.posts.DeleteByAuthor(ctx, ownerID)
	if err != nil {
		return &domain.CascadeError{Step: "posts", Err: err}
	}
	err = s.serial.Do(ctx, profileKey(ownerID), func(ctx context.Context) error {
		return s.profiles.DeleteByUser(ctx, ownerID)
	})
	if err != nil {
		return &domain.CascadeError{Step: "profile", Err: err}
	}
	s.invalidate(ctx, ownerID)
	if err := s.users.Delete(ctx, ownerID); err != nil {
		return &domain.CascadeError{Step: "user", Err: err}
	}

	s.log.Info().Str("user_id", ownerID).Int64("posts_deleted", n).Msg("account deleted")
	return nil
}

func (s *ProfileService) AddExperience(ctx context.Context, ownerID string, in ports.ExperienceInput) (*domain.Profile, error) {
	return s.mutate(ctx, ownerID, func(p *domain.Profile) {
		entry := experienceFromInput(in)
		entry.ID = s.newID()
		p.Experience = append([]domain.Experience{entry}, p.Experience...)
	})
}

// UpdateExperience replaces the entry with entryID, keeping its id. An
// unknown id leaves the profile unchanged.
func (s *ProfileService) UpdateExperience(ctx context.Context, ownerID, entryID string, in ports.ExperienceInput) (*domain.Profile, error) {
	return s.mutate(ctx, ownerID, func(p *domain.Profile) {
		p.ReplaceExperience(entryID, experienceFromInput(in))
	})
}

// RemoveExperience drops the entry with entryID. An unknown id leaves the
// profile unchanged.
func (s *ProfileService) RemoveExperience(ctx context.Context, ownerID, entryID string) (*domain.Profile, error) {
	return s.mutate(ctx, ownerID, func(p *domain.Profile) {
		p.RemoveExperience(entryID)
	})
}

func (s *ProfileService) AddEducation(ctx context.Context, ownerID string, in ports.EducationInput) (*domain.Profile, error) {
	return s.mutate(ctx, ownerID, func(p *domain.Profile) {
		entry := educationFromInput(in)
		entry.ID = s.newID()
		p.Education = append([]domain.Education{entry}, p.Education...)
	})
}

func (s *ProfileService) UpdateEducation(ctx context.Context, ownerID, entryID string, in ports.EducationInput) (*domain.Profile, error) {
	return s.mutate(ctx, ownerID, func(p *domain.Profile) {
		p.ReplaceEducation(entryID, educationFromInput(in))
	})
}

func (s *ProfileService) RemoveEducation(ctx context.Context, ownerID, entryID string) (*domain.Profile, error) {
	return s.mutate(ctx, ownerID, func(p *domain.Profile) {
		p.RemoveEducation(entryID)
	})
}

// mutate runs a serialized read-modify-write cycle on the owner's profile.
func (s *ProfileService) mutate(ctx context.Context, ownerID string, apply func(*domain.Profile)) (*domain.Profile, error) {
	var out *domain.Profile
	err := s.serial.Do(ctx, profileKey(ownerID), func(ctx context.Context) error {
		profile, err := s.profiles.FindByUser(ctx, ownerID)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidID) || errors.Is(err, domain.ErrProfileNotFound) {
				return domain.ErrProfileNotFound
			}
			return fmt.Errorf("find profile: %w", err)
		}

		apply(profile)

		saved, err := s.profiles.Update(ctx, profile)
		if err != nil {
			if errors.Is(err, domain.ErrProfileNotFound) {
				return err
			}
			return fmt.Errorf("save profile: %w", err)
		}
		out = saved
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, ownerID)
	return out, nil
}

func (s *ProfileService) invalidate(ctx context.Context, ownerID string) {
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		s.log.Warn().Err(err).Str("user_id", ownerID).Msg("failed to invalidate cached profile")
	}
}

func (s *ProfileService) withOwners(ctx context.Context, profiles []*domain.Profile) error {
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load profile owners: %w", err)
	}
	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, p := range profiles {
		if u, ok := byID[p.UserID]; ok {
			p.User = u.Summary()
		}
	}
	return nil
}

// mergeProfile overwrites only the attributes present in in.
func mergeProfile(p *domain.Profile, in ports.ProfileInput) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Company, in.Company)
	set(&p.Website, in.Website)
	set(&p.Location, in.Location)
	set(&p.Bio, in.Bio)
	set(&p.Status, in.Status)
	set(&p.GithubUsername, in.GithubUsername)
	set(&p.Social.YouTube, in.YouTube)
	set(&p.Social.Facebook, in.Facebook)
	set(&p.Social.Twitter, in.Twitter)
	set(&p.Social.Instagram, in.Instagram)
	set(&p.Social.LinkedIn, in.LinkedIn)

	if in.Skills != "" {
		p.Skills = splitSkills(in.Skills)
	}
}

// splitSkills turns "go, sql ,docker" into ["go", "sql", "docker"].
func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		skills = append(skills, strings.TrimSpace(part))
	}
	return skills
}

func experienceFromInput(in ports.ExperienceInput) domain.Experience {
	return domain.Experience{
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}
}

func educationFromInput(in ports.EducationInput) domain.Education {
	return domain.Education{
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}
}

func profileKey(ownerID string) string { return "profile:" + ownerID }
