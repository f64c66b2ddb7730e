package ports

import (
	"context"
	"time"
)

// UnlockFunc releases an acquired session lock.
type UnlockFunc func(ctx context.Context) error

// SessionLocker coordinates exclusive access to a session's state instance.
// A state container performs no internal locking, so two invocations sharing
// one state produce undefined interleavings; callers running replicated
// hosts can use a SessionLocker to serialize invocations per session.
type SessionLocker interface {
	// Lock acquires the lock for key, blocking until acquired, the context
	// is canceled, or the TTL expires. The returned UnlockFunc MUST be
	// called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
