package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
)

func TestSplitEndpoint(t *testing.T) {
	tests := []struct {
		endpoint   string
		wantHost   string
		wantSecure bool
	}{
		{endpoint: "localhost:9000", wantHost: "localhost:9000"},
		{endpoint: "http://minio:9000", wantHost: "minio:9000"},
		{endpoint: "https://s3.example.com", wantHost: "s3.example.com", wantSecure: true},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			host, secure := splitEndpoint(tt.endpoint)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantSecure, secure)
		})
	}
}

func TestValidateContentType(t *testing.T) {
	assert.NoError(t, validateContentType("image/png"))
	assert.Error(t, validateContentType("audio/wav"))
	assert.Error(t, validateContentType(""))
}

func TestNewS3Service_RequiresBucket(t *testing.T) {
	_, err := NewS3Service(Config{})
	assert.Error(t, err)
}

func TestNewMinioService_RequiresEndpoint(t *testing.T) {
	_, err := NewMinioService(context.Background(), Config{Bucket: "plots"})
	assert.Error(t, err)
}

// TestBlobStores_Integration round trips a chart through both backends
// against a MinIO container
func TestBlobStores_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcminio.Run(ctx,
		"minio/minio:RELEASE.2024-10-29T16-01-48Z",
		tcminio.WithUsername("minioadmin"),
		tcminio.WithPassword("minioadmin"),
	)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, container.Terminate(ctx))
	}()

	endpoint, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := Config{
		Bucket:    "titrant-test",
		Endpoint:  endpoint,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	}

	// the minio backend creates the bucket, so it goes first
	minioStore, err := NewMinioService(ctx, cfg)
	require.NoError(t, err)
	s3Store, err := NewS3Service(cfg)
	require.NoError(t, err)

	stores := []struct {
		name  string
		store BlobStore
	}{
		{name: "minio", store: minioStore},
		{name: "s3", store: s3Store},
	}

	payload := []byte("\x89PNG\r\n\x1a\nnot really a chart")
	for _, tt := range stores {
		t.Run(tt.name, func(t *testing.T) {
			key := "plots/" + tt.name + ".png"

			require.NoError(t, tt.store.Upload(ctx, key, payload, "image/png"))

			got, err := tt.store.DownloadFile(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, payload, got)

			url, err := tt.store.GenerateDownloadURL(ctx, key)
			require.NoError(t, err)
			assert.Contains(t, url, key)

			require.NoError(t, tt.store.DeleteFile(ctx, key))
			_, err = tt.store.DownloadFile(ctx, key)
			assert.Error(t, err)
		})
	}
}
