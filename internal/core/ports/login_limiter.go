package ports

import "context"

// LoginLimiter counts failed logins under opaque keys. The auth service keys
// failures both by the submitted identifier and by the resolved account.
type LoginLimiter interface {
	Blocked(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
