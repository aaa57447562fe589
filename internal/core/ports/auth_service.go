package ports

import (
	"context"

	"github.com/tariq-shuvo/social-media-rest-api/internal/core/domain"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// TokenVerifier resolves an identity token to a user id. Failures are
// *domain.AuthError values.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
}
