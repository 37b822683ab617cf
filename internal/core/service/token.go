package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zopuu/soa-team-20/internal/core/domain"
)

// TokenConfig holds every setting the token layer needs. It is built once at
// startup and passed by value, so signing parameters cannot drift between
// the issuer and the verifying middleware.
type TokenConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// Claims is the payload carried by every issued token.
type Claims struct {
	Username string `json:"name"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer builds and signs bearer tokens. Verification lives in the auth
// middleware; the issuer does no parsing.
type TokenIssuer struct {
	cfg TokenConfig
}

func NewTokenIssuer(cfg TokenConfig) *TokenIssuer {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &TokenIssuer{cfg: cfg}
}

// Issue signs an HS256 token for the account, valid for exactly the
// configured TTL from now. There is no refresh or revocation path.
func (t *TokenIssuer) Issue(acc *domain.Account, now time.Time) (string, error) {
	claims := Claims{
		Username: acc.Username,
		Role:     string(acc.Role),
		Email:    acc.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.ID,
			Issuer:    t.cfg.Issuer,
			Audience:  jwt.ClaimStrings{t.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.TTL)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(t.cfg.Secret))
}
