package ports

import (
	"context"

	"github.com/zopuu/soa-team-20/internal/core/domain"
)

// RegisterInput carries the fields a user submits during self-registration.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, username, password string) (string, error)
}
