package ports

import "context"

// LoginThrottle limits repeated failed login attempts per username.
// Implementations must treat the counter as best-effort: authentication
// proceeds even if the backing store is unavailable.
type LoginThrottle interface {
	// TooMany reports whether the username has exhausted its attempt budget.
	TooMany(ctx context.Context, username string) (bool, error)
	// RecordFailure counts one failed attempt against the username.
	RecordFailure(ctx context.Context, username string) error
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, username string) error
}
