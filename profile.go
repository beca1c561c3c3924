package ozonkw

import "context"

// ProfileStore manages the pool of browser profile directories.
type ProfileStore interface {
	// Profiles returns the existing profile directories. If the pool is
	// empty, exactly one default directory is created and returned.
	Profiles(ctx context.Context) ([]string, error)
}

// ProfileSelector picks one profile from a pool. Production uses a uniform
// random choice; deterministic tests can substitute a fixed-choice policy.
type ProfileSelector interface {
	// Choose returns one element of pool, or "" if pool is empty.
	Choose(pool []string) string
}
