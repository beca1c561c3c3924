// Package fs provides filesystem-backed browser-profile storage.
package fs

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/msaveliev/ozonkw"
)

// defaultProfileName is the directory created when the pool is empty.
const defaultProfileName = "1"

// Compile-time interface verification.
var _ ozonkw.ProfileStore = (*ProfileStore)(nil)

// ProfileStore manages browser profile directories under a root directory.
type ProfileStore struct {
	// Dir is the profile storage root. It must exist and be writable.
	Dir string
}

// Profiles returns the absolute paths of all profile directories under the
// root. If none exist, exactly one default directory is created first.
func (s *ProfileStore) Profiles(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading profile storage %q: %w", s.Dir, err)
	}

	var profiles []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		profiles = append(profiles, filepath.Join(s.Dir, entry.Name()))
	}

	if len(profiles) == 0 {
		def := filepath.Join(s.Dir, defaultProfileName)
		if err := os.Mkdir(def, 0o755); err != nil {
			return nil, fmt.Errorf("creating default profile %q: %w", def, err)
		}
		profiles = append(profiles, def)
	}

	return profiles, nil
}

var _ ozonkw.ProfileSelector = RandSelector{}

// RandSelector picks a profile uniformly at random.
type RandSelector struct{}

// Choose returns a random element of pool, or "" if pool is empty.
func (RandSelector) Choose(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[rand.IntN(len(pool))]
}

var _ ozonkw.ProfileSelector = FixedSelector{}

// FixedSelector always picks the profile at Index, for deterministic tests.
type FixedSelector struct {
	Index int
}

// Choose returns pool[Index], or "" if the index is out of range.
func (s FixedSelector) Choose(pool []string) string {
	if s.Index < 0 || s.Index >= len(pool) {
		return ""
	}
	return pool[s.Index]
}
