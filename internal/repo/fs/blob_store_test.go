package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"TripKeeper/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobStore_CreateGet(t *testing.T) {
	s, err := NewBlobStore(filepath.Join(t.TempDir(), "media"))
	require.NoError(t, err)
	ctx := context.Background()

	created, loc, err := s.CreateIfAbsent(ctx, repo.Blob{ID: "m1", Data: []byte("png"), ContentType: "image/png", Digest: "abc"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, filepath.Join(s.Root(), "m1"), loc)

	b, err := s.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), b.Data)
	assert.Equal(t, "image/png", b.ContentType)
	assert.Equal(t, "abc", b.Digest)
	assert.Equal(t, loc, b.Location)

	// временные файлы не остаются в каталоге
	entries, err := os.ReadDir(s.Root())
	require.NoError(t, err)
	assert.Len(t, entries, 2) // m1 + m1.meta
}

func TestBlobStore_NeverOverwrites(t *testing.T) {
	s, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, _, err = s.CreateIfAbsent(ctx, repo.Blob{ID: "m1", Data: []byte("first"), Digest: "d1"})
	require.NoError(t, err)
	created, _, err := s.CreateIfAbsent(ctx, repo.Blob{ID: "m1", Data: []byte("second"), Digest: "d2"})
	require.NoError(t, err)
	assert.False(t, created)

	b, err := s.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), b.Data)
	assert.Equal(t, "d1", b.Digest)
}

func TestBlobStore_InvalidAndMissing(t *testing.T) {
	s, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, repo.ErrBlobNotFound)

	for _, id := range []string{"", "../etc", "a/b"} {
		_, _, err := s.CreateIfAbsent(ctx, repo.Blob{ID: id, Data: []byte("x")})
		assert.Error(t, err, "id %q", id)
	}

	_, err = NewBlobStore("  ")
	assert.Error(t, err)
}

func TestBlobStore_SidecarIsNotABlob(t *testing.T) {
	s, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, _, err = s.CreateIfAbsent(ctx, repo.Blob{ID: "m1", Data: []byte("hello world"), ContentType: "text/plain", Digest: "d1"})
	require.NoError(t, err)

	for _, id := range []string{"m1.meta", ".tmp-123", ".hidden"} {
		_, err := s.Get(ctx, id)
		assert.ErrorIs(t, err, repo.ErrBlobNotFound, "id %q", id)

		_, _, err = s.CreateIfAbsent(ctx, repo.Blob{ID: id, Data: []byte("x")})
		assert.Error(t, err, "id %q", id)
	}

	b, err := s.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), b.Data)
}
