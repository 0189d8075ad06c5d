package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pet-translator/internal/platform/httpclient"
	"pet-translator/internal/ports/storage"
)

// Config: proyecto Supabase + bucket. La service role key permite escribir sin RLS.
type Config struct {
	URL        string
	ServiceKey string
	Bucket     string
	Timeout    time.Duration

	Transport http.RoundTripper
}

// Store implementa storage.ObjectStore sobre Supabase Storage REST.
type Store struct {
	http   *httpclient.Client
	base   string
	key    string
	bucket string
}

func New(cfg Config) (*Store, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if base == "" || strings.TrimSpace(cfg.ServiceKey) == "" {
		return nil, errors.New("supabase storage: url and service key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, errors.New("supabase storage: bucket is required")
	}
	return &Store{
		http:   httpclient.NewWithTransport(cfg.Timeout, cfg.Transport),
		base:   base,
		key:    strings.TrimSpace(cfg.ServiceKey),
		bucket: bucket,
	}, nil
}

func (s *Store) Upload(ctx context.Context, in storage.UploadInput) error {
	if strings.TrimSpace(in.Key) == "" {
		return errors.New("supabase storage: empty key")
	}
	err := s.http.DoBytes(ctx, http.MethodPost, s.objectURL("/storage/v1/object/", in.Key), map[string]string{
		"Authorization": "Bearer " + s.key,
		"apikey":        s.key,
		"x-upsert":      strconv.FormatBool(in.Upsert),
	}, in.ContentType, in.Data, nil)
	if err != nil {
		return fmt.Errorf("supabase storage upload %s: %w", in.Key, err)
	}
	return nil
}

func (s *Store) PublicURL(key string) string {
	return s.objectURL("/storage/v1/object/public/", key)
}

func (s *Store) objectURL(prefix, key string) string {
	parts := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return s.base + prefix + url.PathEscape(s.bucket) + "/" + strings.Join(parts, "/")
}
