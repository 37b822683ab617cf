package ports

import (
	"context"

	"github.com/zopuu/soa-team-20/internal/core/domain"
)

// AdminService groups the privileged account management operations. Callers
// must already have been authorized as Admin by the transport layer.
type AdminService interface {
	List(ctx context.Context) ([]domain.Account, error)
	Block(ctx context.Context, id string) error
	Unblock(ctx context.Context, id string) error
}
