package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArticle(t *testing.T, dir, name, title string) {
	t.Helper()
	data := []byte("---\ntitle: " + title + "\ncategory: Go\npublishedAt: 2024-01-01\nauthor: Tester\n---\n<p>body</p>\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
}

func TestWatchContentReloads(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "first.md", "First")

	store, err := LoadStore(os.DirFS(dir), ".")
	require.NoError(t, err)
	lib := NewLibrary(store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- WatchContent(ctx, dir, lib, 20*time.Millisecond) }()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	// Give the watcher time to register before writing.
	time.Sleep(50 * time.Millisecond)
	writeArticle(t, dir, "second.md", "Second")

	require.Eventually(t, func() bool {
		return lib.Store().Len() == 2
	}, 5*time.Second, 20*time.Millisecond)
	_, ok := lib.Store().FindBySlug("second")
	assert.True(t, ok)

	// A broken file keeps the last good store.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.md"), []byte("no front matter"), 0644))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 2, lib.Store().Len())
}

func TestWatchContentMissingDir(t *testing.T) {
	lib := NewLibrary(nil)
	err := WatchContent(context.Background(), filepath.Join(t.TempDir(), "nope"), lib, 0)
	require.Error(t, err)
}

func TestLibrarySwap(t *testing.T) {
	a, err := NewStore(nil, nil)
	require.NoError(t, err)
	b, err := NewStore(nil, nil)
	require.NoError(t, err)

	lib := NewLibrary(a)
	assert.Same(t, a, lib.Store())
	assert.Same(t, a, lib.Swap(b))
	assert.Same(t, b, lib.Store())
}
