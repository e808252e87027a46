package ports

import (
	"context"
	"time"
)

// IdempotencyStore remembers which resource a client-supplied key produced.
// A key is claimed before the resource is created, so concurrent retries
// cannot both create.
type IdempotencyStore interface {
	// Claim reserves key. When the key is already taken it returns
	// claimed=false and the stored resource id, which is "" while the
	// claiming request is still in flight.
	Claim(ctx context.Context, scope, key string) (resourceID string, claimed bool, err error)
	// Remember records the resource a claimed key produced.
	Remember(ctx context.Context, scope, key, resourceID string) error
	// Release drops a claim whose request failed.
	Release(ctx context.Context, scope, key string) error
}

// TokenRevoker tracks logged-out tokens until they would have expired.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
