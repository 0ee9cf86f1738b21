package cache

import "time"

// Config holds cache timing.
type Config struct {
	// TTL is the maximum age of a snapshot served without a resync.
	TTL time.Duration
	// SyncTimeout bounds a shared sync, independent of the callers waiting for it.
	SyncTimeout time.Duration
	// FailureBackoff is how long readers are served a stale snapshot before a failed folder is retried.
	FailureBackoff time.Duration
	// RefreshInterval is the background refresher tick; zero disables it.
	RefreshInterval time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		TTL:             10 * time.Minute,
		SyncTimeout:     2 * time.Minute,
		FailureBackoff:  time.Minute,
		RefreshInterval: 5 * time.Minute,
	}
}
