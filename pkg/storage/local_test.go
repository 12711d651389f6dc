package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDisk(t *testing.T) {
	ctx := context.Background()
	d, err := NewLocal(t.TempDir(), "http://localhost:8080/storage/")
	require.NoError(t, err)

	require.NoError(t, d.Put(ctx, "products/beer.png", strings.NewReader("png"), "image/png"))
	assert.True(t, d.Exists(ctx, "products/beer.png"))
	assert.Equal(t, "http://localhost:8080/storage/products/beer.png", d.URL("products/beer.png"))

	rc, err := d.Get(ctx, "products/beer.png")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "png", string(data))

	require.NoError(t, d.Delete(ctx, "products/beer.png"))
	assert.False(t, d.Exists(ctx, "products/beer.png"))
	assert.NoError(t, d.Delete(ctx, "products/beer.png"))
}

func TestLocalDiskStaysInRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d, err := NewLocal(root, "/storage")
	require.NoError(t, err)

	require.NoError(t, d.Put(ctx, "../../escape.txt", strings.NewReader("x"), ""))
	assert.True(t, d.Exists(ctx, "escape.txt"))
}

func TestS3RequiresBucket(t *testing.T) {
	_, err := NewS3(context.Background(), S3Options{})
	assert.ErrorContains(t, err, "S3_BUCKET")
}
