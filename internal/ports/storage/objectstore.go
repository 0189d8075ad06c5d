package storage

import "context"

// UploadInput describe un objeto a subir al bucket.
type UploadInput struct {
	Key         string
	ContentType string
	Data        []byte
	Upsert      bool
}

// ObjectStore sube objetos por key y resuelve su URL pública.
type ObjectStore interface {
	Upload(ctx context.Context, in UploadInput) error
	PublicURL(key string) string
}
