package identity

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Rrens/rag-query-client/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "identity")

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	_, err = store.Get(ctx, "rag_app_session_id")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Set(ctx, "rag_app_session_id", "tok-1"))
	got, err := store.Get(ctx, "rag_app_session_id")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)

	require.NoError(t, store.Set(ctx, "rag_app_session_id", "tok-2"))
	got, err = store.Get(ctx, "rag_app_session_id")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_BlankFileIsMiss(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "k"), []byte("  \n"), 0600))

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFileStore_KeyCannotEscapeDir(t *testing.T) {
	store := &FileStore{dir: "/var/lib/rag"}
	assert.Equal(t, "/var/lib/rag/passwd", store.path("../../etc/passwd"))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Set(ctx, "a", "1"))
	v, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}
