package firebase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"pet-translator/internal/ports/storage"

	gcs "cloud.google.com/go/storage"
	fb "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// Store sube el audio a un bucket de Firebase Storage (STORAGE_PROVIDER=firebase).
type Store struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func New(ctx context.Context, bucketName, credentialsFile string) (*Store, error) {
	bucketName = strings.TrimSpace(bucketName)
	if bucketName == "" {
		return nil, errors.New("firebase storage: bucket is required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(credentialsFile) != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := fb.NewApp(ctx, &fb.Config{StorageBucket: bucketName}, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting storage client: %w", err)
	}
	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("error getting default bucket: %w", err)
	}
	return &Store{bucket: bucket, bucketName: bucketName}, nil
}

func (s *Store) Upload(ctx context.Context, in storage.UploadInput) error {
	obj := s.bucket.Object(in.Key)
	if !in.Upsert {
		obj = obj.If(gcs.Conditions{DoesNotExist: true})
	}

	w := obj.NewWriter(ctx)
	w.ContentType = in.ContentType
	if _, err := w.Write(in.Data); err != nil {
		_ = w.Close()
		return fmt.Errorf("firebase storage write %s: %w", in.Key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("firebase storage upload %s: %w", in.Key, err)
	}
	return nil
}

func (s *Store) PublicURL(key string) string {
	return "https://storage.googleapis.com/" + s.bucketName + "/" + (&url.URL{Path: key}).EscapedPath()
}
