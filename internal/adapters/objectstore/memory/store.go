package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-translator/internal/ports/storage"
)

var ErrExists = errors.New("object already exists")

type object struct {
	contentType string
	data        []byte
}

// Store guarda objetos en memoria (dev/tests). FailWith fuerza errores de upload.
type Store struct {
	mu      sync.RWMutex
	prefix  string
	objects map[string]object
	failErr error
}

func New(publicURLPrefix string) *Store {
	return &Store{
		prefix:  strings.TrimRight(publicURLPrefix, "/"),
		objects: make(map[string]object),
	}
}

// FailWith hace que los próximos uploads devuelvan err (nil = normal).
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

func (s *Store) Upload(_ context.Context, in storage.UploadInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failErr != nil {
		return s.failErr
	}
	if _, ok := s.objects[in.Key]; ok && !in.Upsert {
		return ErrExists
	}
	cp := make([]byte, len(in.Data))
	copy(cp, in.Data)
	s.objects[in.Key] = object{contentType: in.ContentType, data: cp}
	return nil
}

func (s *Store) PublicURL(key string) string {
	return s.prefix + "/" + strings.TrimLeft(key, "/")
}

// Get devuelve el objeto guardado (tests).
func (s *Store) Get(key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.objects[key]
	return o.data, o.contentType, ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
