package minio

import (
	"context"
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/normpack/blobstore"
)

func TestMapError(t *testing.T) {
	for _, code := range []string{"NoSuchKey", "NotFound"} {
		t.Run(code, func(t *testing.T) {
			err := mapError(minio.ErrorResponse{Code: code})
			assert.ErrorIs(t, err, blobstore.ErrNotFound)
		})
	}

	t.Run("other", func(t *testing.T) {
		err := mapError(minio.ErrorResponse{Code: "AccessDenied"})
		assert.False(t, errors.Is(err, blobstore.ErrNotFound))
	})
}

func TestNewStore_Prefix(t *testing.T) {
	assert.Equal(t, "normals/a.npk", NewStore(nil, "b", "normals").key("a.npk"))
	assert.Equal(t, "normals/a.npk", NewStore(nil, "b", "normals/").key("a.npk"))
	assert.Equal(t, "a.npk", NewStore(nil, "b", "").key("a.npk"))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	bucket := "test-normpack"

	client, err := Dial("localhost:9000", "minioadmin", "minioadmin", false)
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "test.npk", data))

	got, err := store.Get(ctx, "test.npk")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "test.npk")

	require.NoError(t, store.Delete(ctx, "test.npk"))
	_, err = store.Get(ctx, "test.npk")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
