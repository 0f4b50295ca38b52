package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewLocalStore(LocalConfig{Dir: dir, URLPrefix: "/api/exports/files/"})
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "abc/spectrum.csv", []byte("a,b\n"), "text/csv"))

	data, err := store.Get(ctx, "abc/spectrum.csv")
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
	assert.FileExists(t, filepath.Join(dir, "abc", "spectrum.csv"))

	url, err := store.DownloadURL(ctx, "abc/spectrum.csv")
	require.NoError(t, err)
	assert.Equal(t, "/api/exports/files/abc/spectrum.csv", url)

	require.NoError(t, store.Delete(ctx, "abc/spectrum.csv"))
	require.NoError(t, store.Delete(ctx, "abc/spectrum.csv"))
	_, err = store.Get(ctx, "abc/spectrum.csv")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalStore_RejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(LocalConfig{Dir: t.TempDir()})
	require.NoError(t, err)

	for _, key := range []string{"", "/etc/passwd", "../secret", "a/../../secret", ".", ".."} {
		assert.Error(t, store.Put(ctx, key, []byte("x"), "text/plain"), "key=%q", key)
		_, err := store.Get(ctx, key)
		assert.Error(t, err, "key=%q", key)
	}
}

func TestLocalStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")

	_, err := NewLocalStore(LocalConfig{Dir: dir})

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNew_Drivers(t *testing.T) {
	ctx := context.Background()

	store, err := New(ctx, Options{Driver: DriverLocal, Local: LocalConfig{Dir: t.TempDir()}})
	require.NoError(t, err)
	assert.NotNil(t, store)

	_, err = New(ctx, Options{Driver: DriverS3})
	assert.Error(t, err, "bucket is required")

	_, err = New(ctx, Options{Driver: "gcs"})
	assert.Error(t, err)
}

func TestS3Store_DownloadURL(t *testing.T) {
	store, err := NewS3Store(context.Background(), S3Config{
		Bucket:    "whitespace",
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Prefix:    "exports/",
	})
	require.NoError(t, err)

	url, err := store.DownloadURL(context.Background(), "abc/spectrum.png")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/whitespace/exports/abc/spectrum.png?"), url)
	assert.Contains(t, url, "X-Amz-Expires=86400")

	_, err = store.DownloadURL(context.Background(), "../escape")
	assert.Error(t, err)
}
