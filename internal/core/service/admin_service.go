package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/zopuu/soa-team-20/internal/api/metrics"
	"github.com/zopuu/soa-team-20/internal/core/domain"
	"github.com/zopuu/soa-team-20/internal/core/ports"
)

const lockStripes = 64

// AdminService implements the privileged account listing and block/unblock
// operations. Block and unblock are read-modify-write over a single record;
// a striped lock keyed by account id serializes mutations per account so
// concurrent transitions on the same id cannot interleave.
type AdminService struct {
	repo  ports.AccountRepository
	locks [lockStripes]sync.Mutex
	log   zerolog.Logger
}

func NewAdminService(repo ports.AccountRepository, log zerolog.Logger) *AdminService {
	return &AdminService{repo: repo, log: log}
}

// List returns every account. Password hashes never serialize (the domain
// type excludes them from JSON), so the view is safe to return as-is.
func (s *AdminService) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// Block marks the account as blocked and stamps BlockedAt.
func (s *AdminService) Block(ctx context.Context, id string) error {
	unlock := s.lockID(id)
	defer unlock()

	acc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if acc.Blocked() {
		return domain.ErrAlreadyBlocked
	}

	now := time.Now().UTC()
	acc.Status = domain.StatusBlocked
	acc.BlockedAt = &now
	if err := s.repo.Update(ctx, acc); err != nil {
		return fmt.Errorf("block account: %w", err)
	}

	metrics.AccountTransitionsTotal.WithLabelValues("block").Inc()
	s.log.Info().Str("account_id", id).Msg("account blocked")
	return nil
}

// Unblock restores the account to active and clears BlockedAt.
func (s *AdminService) Unblock(ctx context.Context, id string) error {
	unlock := s.lockID(id)
	defer unlock()

	acc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !acc.Blocked() {
		return domain.ErrAlreadyActive
	}

	acc.Status = domain.StatusActive
	acc.BlockedAt = nil
	if err := s.repo.Update(ctx, acc); err != nil {
		return fmt.Errorf("unblock account: %w", err)
	}

	metrics.AccountTransitionsTotal.WithLabelValues("unblock").Inc()
	s.log.Info().Str("account_id", id).Msg("account unblocked")
	return nil
}

// lockID acquires the stripe owning id and returns its release func.
// fnv keeps the id → stripe mapping deterministic across calls.
func (s *AdminService) lockID(id string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	mu := &s.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}
