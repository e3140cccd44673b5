package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
)

// GCS stores objects in a Google Cloud Storage bucket. Credentials come
// from the ambient service account (GOOGLE_APPLICATION_CREDENTIALS or
// workload identity).
type GCS struct {
	client *gcs.Client
	bucket string
}

func NewGCS(ctx context.Context, bucket string) (*GCS, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create GCS client: %w", err)
	}
	return &GCS{client: client, bucket: bucket}, nil
}

func (g *GCS) Name() string { return "gcs" }

func (g *GCS) Put(ctx context.Context, key string, contentType string, r io.Reader) (int64, error) {
	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	n, err := io.Copy(w, r)
	if err != nil {
		w.Close()
		return 0, fmt.Errorf("write gs://%s/%s: %w", g.bucket, key, err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("finalize gs://%s/%s: %w", g.bucket, key, err)
	}
	return n, nil
}

func (g *GCS) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	rc, err := g.client.Bucket(g.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open gs://%s/%s: %w", g.bucket, key, err)
	}
	return rc, nil
}

func (g *GCS) Delete(ctx context.Context, key string) error {
	err := g.client.Bucket(g.bucket).Object(key).Delete(ctx)
	if err == gcs.ErrObjectNotExist {
		return nil
	}
	return err
}

// Close releases the underlying client. Called by the process on
// shutdown, not per request.
func (g *GCS) Close() error {
	return g.client.Close()
}
