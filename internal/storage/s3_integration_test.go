package storage

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	miniogo "github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	minioUser     = "minioadmin"
	minioPassword = "minioadmin"
)

// setupMinio starts a MinIO container and creates a fresh bucket in it
func setupMinio(t *testing.T) (endpoint, bucket string) {
	t.Helper()
	ctx := context.Background()

	container, err := tcminio.Run(ctx,
		"minio/minio:RELEASE.2024-10-29T16-01-48Z",
		tcminio.WithUsername(minioUser),
		tcminio.WithPassword(minioPassword),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/minio/health/live").WithPort("9000/tcp").
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(context.Background()))
	})

	endpoint, err = container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := miniogo.New(endpoint, &miniogo.Options{
		Creds:  miniocreds.NewStaticV4(minioUser, minioPassword, ""),
		Secure: false,
	})
	require.NoError(t, err)

	bucket = "whitespace-test-" + uuid.New().String()[:8]
	require.NoError(t, client.MakeBucket(ctx, bucket, miniogo.MakeBucketOptions{}))

	return endpoint, bucket
}

func TestS3Store_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	endpoint, bucket := setupMinio(t)
	ctx := context.Background()

	store, err := NewS3Store(ctx, S3Config{
		Bucket:    bucket,
		Endpoint:  endpoint,
		AccessKey: minioUser,
		SecretKey: minioPassword,
		Prefix:    "exports/",
	})
	require.NoError(t, err)

	key := uuid.New().String() + "/spectrum.csv"
	require.NoError(t, store.Put(ctx, key, []byte("Frequency (MHz),Power (dBm)\n470,-95\n"), "text/csv"))

	data, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "Frequency (MHz),Power (dBm)\n470,-95\n", string(data))

	url, err := store.DownloadURL(ctx, key)
	require.NoError(t, err)

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, string(data), string(body))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, ErrObjectNotFound)
}
