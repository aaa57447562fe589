package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tariq-shuvo/social-media-rest-api/internal/core/domain"
)

// tokenClaims mirrors the payload handed to clients: {"user":{"id":...},"iat":...,"exp":...}.
type tokenClaims struct {
	User tokenUser `json:"user"`
	jwt.RegisteredClaims
}

type tokenUser struct {
	ID string `json:"id"`
}

// TokenService issues and verifies HS256 identity tokens. Verification is
// stateless: a token stays valid until it expires, even if its user is gone.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customises a TokenService.
type TokenOption func(*TokenService)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(secret string, ttl time.Duration, opts ...TokenOption) *TokenService {
	s := &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a token for userID that expires after the configured TTL.
func (s *TokenService) Issue(userID string) (string, error) {
	now := s.now()
	claims := tokenClaims{
		User: tokenUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of token and returns the user id it
// was issued for. All failures are *domain.AuthError.
func (s *TokenService) Verify(token string) (string, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", classifyTokenError(err)
	}

	if claims.User.ID == "" {
		return "", &domain.AuthError{Kind: domain.AuthMalformed, Err: errors.New("token carries no user id")}
	}
	return claims.User.ID, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return &domain.AuthError{Kind: domain.AuthInvalidSignature, Err: err}
	case errors.Is(err, jwt.ErrTokenExpired):
		return &domain.AuthError{Kind: domain.AuthExpired, Err: err}
	default:
		return &domain.AuthError{Kind: domain.AuthMalformed, Err: err}
	}
}
