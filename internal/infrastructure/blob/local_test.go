package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_PutDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStore(dir, "/static/uploads/")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "avatar_1_100.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/avatar_1_100.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "avatar_1_100.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")

	require.NoError(t, store.Delete(context.Background(), url))
	_, err = os.Stat(filepath.Join(dir, "avatar_1_100.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStore_DeleteMissingIsNoop(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/static/uploads")
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "/static/uploads/gone.png"))
}

func TestLocalStore_DeleteIgnoresForeignURLs(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(dir, "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	store, err := NewLocalStore(filepath.Join(dir, "uploads"), "/static/uploads")
	require.NoError(t, err)

	for _, url := range []string{
		"https://cdn.example.com/a.png",
		"/static/uploads/../keep.txt",
		"/static/uploads/",
	} {
		assert.NoError(t, store.Delete(context.Background(), url))
	}
	_, err = os.Stat(outside)
	assert.NoError(t, err)
}

func TestLocalStore_RejectsPathNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/static/uploads")
	require.NoError(t, err)

	for _, name := range []string{"", "..", "../x.png", "a/b.png", `a\b.png`} {
		_, err := store.Put(context.Background(), name, strings.NewReader("x"), "image/png")
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}
