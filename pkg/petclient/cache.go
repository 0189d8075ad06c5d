package petclient

import (
	"strings"
	"sync"
)

// Query keys. Las variantes con parámetros usan "<key>:<param>" y se invalidan por prefijo.
const (
	KeyPets         = "pets"
	KeyProfile      = "profile"
	KeyTranslations = "translations"
	KeyBadges       = "badges"
)

type queryCache struct {
	mu      sync.Mutex
	entries map[string]any
}

func newQueryCache() *queryCache {
	return &queryCache{entries: make(map[string]any)}
}

func (c *queryCache) get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *queryCache) set(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = v
}

// invalidate borra key y todas sus variantes ("translations" borra "translations:5").
func (c *queryCache) invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		base, _, _ := strings.Cut(k, ":")
		for _, key := range keys {
			if base == key {
				delete(c.entries, k)
				break
			}
		}
	}
}

// cached sirve key desde el cache o llama fetch y guarda el resultado (solo si no hubo error).
func cached[T any](c *queryCache, key string, fetch func() (T, error)) (T, error) {
	if v, ok := c.get(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}
	v, err := fetch()
	if err != nil {
		return v, err
	}
	c.set(key, v)
	return v, nil
}
