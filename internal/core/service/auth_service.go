package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/zopuu/soa-team-20/internal/api/metrics"
	"github.com/zopuu/soa-team-20/internal/core/domain"
	"github.com/zopuu/soa-team-20/internal/core/ports"
	"github.com/zopuu/soa-team-20/internal/pkg/password"
)

// AuthService implements registration and login.
type AuthService struct {
	repo     ports.AccountRepository
	issuer   *TokenIssuer
	throttle ports.LoginThrottle
	log      zerolog.Logger
}

// NewAuthService wires the authentication orchestrator. throttle may be nil
// to disable failed-attempt limiting.
func NewAuthService(repo ports.AccountRepository, issuer *TokenIssuer, throttle ports.LoginThrottle, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, issuer: issuer, throttle: throttle, log: log}
}

// Register creates a new Active account. Only Tourist and Guide are
// self-assignable; Admin accounts are provisioned at startup.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	if !in.Role.SelfAssignable() {
		return nil, domain.ErrInvalidRole
	}

	// Uniqueness check first so a taken username skips the bcrypt work.
	taken, err := s.repo.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	acc := &domain.Account{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		Status:       domain.StatusActive,
		CreatedAt:    time.Now().UTC(),
	}

	// Single-document insert: either the whole record lands or nothing does.
	// The unique index closes the race between the exists check and here.
	created, err := s.repo.Insert(ctx, acc)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(created.Role)).Inc()
	s.log.Info().
		Str("username", created.Username).
		Str("role", string(created.Role)).
		Msg("account registered")

	return created, nil
}

// Login verifies credentials and returns a signed bearer token.
//
// An unknown username and a wrong password both fail with the same
// ErrInvalidCredentials so responses never reveal which usernames exist.
// A blocked account fails with ErrAccountBlocked before any token is built.
func (s *AuthService) Login(ctx context.Context, username, plain string) (string, error) {
	if s.throttle != nil {
		tooMany, err := s.throttle.TooMany(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle unavailable, continuing")
		} else if tooMany {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return "", domain.ErrTooManyAttempts
		}
	}

	acc, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.recordFailure(ctx, username)
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: %w", err)
	}

	if !password.Verify(plain, acc.PasswordHash) {
		s.recordFailure(ctx, username)
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", domain.ErrInvalidCredentials
	}

	if acc.Blocked() {
		metrics.LoginsTotal.WithLabelValues("blocked").Inc()
		return "", domain.ErrAccountBlocked
	}

	token, err := s.issuer.Issue(acc, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("login: sign token: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.Inc()
	s.log.Info().
		Str("username", acc.Username).
		Str("role", string(acc.Role)).
		Msg("login succeeded")

	return token, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Msg("login throttle record failed")
	}
}
