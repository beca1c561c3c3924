package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/msaveliev/ozonkw/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileStore_CreatesDefaultWhenEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := &fs.ProfileStore{Dir: dir}

	profiles, err := store.Profiles(context.Background())

	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, filepath.Join(dir, "1"), profiles[0])

	info, err := os.Stat(profiles[0])
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestProfileStore_ListsOnlyDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.lock"), nil, 0o644))

	store := &fs.ProfileStore{Dir: dir}
	profiles, err := store.Profiles(context.Background())

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a"),
		filepath.Join(dir, "b"),
	}, profiles)
}

func TestProfileStore_MissingRoot(t *testing.T) {
	t.Parallel()

	store := &fs.ProfileStore{Dir: filepath.Join(t.TempDir(), "nope")}
	_, err := store.Profiles(context.Background())

	assert.Error(t, err)
}

func TestRandSelector_ChoosesFromPool(t *testing.T) {
	t.Parallel()

	pool := []string{"a", "b", "c"}
	choice := fs.RandSelector{}.Choose(pool)
	assert.Contains(t, pool, choice)

	assert.Empty(t, fs.RandSelector{}.Choose(nil))
}

func TestFixedSelector(t *testing.T) {
	t.Parallel()

	pool := []string{"a", "b", "c"}

	assert.Equal(t, "b", fs.FixedSelector{Index: 1}.Choose(pool))
	assert.Empty(t, fs.FixedSelector{Index: 5}.Choose(pool))
	assert.Empty(t, fs.FixedSelector{Index: -1}.Choose(pool))
}
