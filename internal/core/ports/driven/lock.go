package driven

import (
	"context"
	"time"
)

// DistributedLock serializes batch jobs across instances. The index
// rebuild takes it so two jobs never write the snapshot pair at once.
type DistributedLock interface {
	// Acquire attempts to take a named lock with the given TTL. Returns
	// false when another holder has it.
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)

	// Release frees a named lock if held by this instance. Safe to call
	// when the lock is not held or has expired.
	Release(ctx context.Context, name string) error
}
