package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zopuu/soa-team-20/internal/core/domain"
)

func TestTokenIssuer_SignedClaims(t *testing.T) {
	issuer := testIssuer()
	acc := &domain.Account{
		ID:       "acc-1",
		Username: "alice",
		Email:    "alice@example.com",
		Role:     domain.RoleGuide,
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	token, err := issuer.Issue(acc, now)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	},
		jwt.WithIssuer("AuthService"),
		jwt.WithAudience("AuthServiceClient"),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}

	if claims.Subject != "acc-1" || claims.Username != "alice" || claims.Role != "Guide" || claims.Email != "alice@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.ExpiresAt.Time.Equal(now.Add(24 * time.Hour)) {
		t.Fatalf("expected exp at iat+24h, got %v", claims.ExpiresAt.Time)
	}
}

func TestNewTokenIssuer_DefaultTTL(t *testing.T) {
	issuer := NewTokenIssuer(TokenConfig{Secret: "secret"})
	if issuer.cfg.TTL != 24*time.Hour {
		t.Fatalf("expected 24h default TTL, got %v", issuer.cfg.TTL)
	}
}
