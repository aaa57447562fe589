package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tariq-shuvo/social-media-rest-api/internal/core/domain"
	"github.com/tariq-shuvo/social-media-rest-api/internal/core/ports"
)

// AuthService implements registration, login and caller lookup.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log}
}

// Register stores a new identity and returns a token for it.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return "", domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return "", fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("register: hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       gravatarURL(email),
		Date:         time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return s.tokens.Issue(created.ID)
}

// Login checks the credentials and returns a fresh token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID)
}

// Me returns the caller's own identity.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if errors.Is(err, domain.ErrInvalidID) {
		return nil, domain.ErrUserNotFound
	}
	return user, err
}

// gravatarURL derives the avatar reference from an email address
// (200px, pg rating, mystery-man fallback).
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "//www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?d=mm&r=pg&s=200"
}
