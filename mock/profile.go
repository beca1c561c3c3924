package mock

import (
	"context"

	"github.com/msaveliev/ozonkw"
)

var _ ozonkw.ProfileStore = (*ProfileStore)(nil)

// ProfileStore is a mock implementation of ozonkw.ProfileStore.
type ProfileStore struct {
	ProfilesFn func(ctx context.Context) ([]string, error)
}

func (s *ProfileStore) Profiles(ctx context.Context) ([]string, error) {
	return s.ProfilesFn(ctx)
}

var _ ozonkw.ProfileSelector = (*ProfileSelector)(nil)

// ProfileSelector is a mock implementation of ozonkw.ProfileSelector.
type ProfileSelector struct {
	ChooseFn func(pool []string) string
}

func (s *ProfileSelector) Choose(pool []string) string {
	return s.ChooseFn(pool)
}
