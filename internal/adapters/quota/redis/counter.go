package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config de la conexión (REDIS_ADDR / REDIS_PASSWORD / REDIS_DB).
type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// Counter implementa quota.Counter con INCR + EXPIRE.
type Counter struct {
	client *redis.Client
	prefix string
}

// New conecta y hace Ping; falla si Redis no responde.
func New(ctx context.Context, cfg Config) (*Counter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewWithClient(client, cfg.KeyPrefix), nil
}

func NewWithClient(client *redis.Client, prefix string) *Counter {
	if prefix == "" {
		prefix = "pet-translator"
	}
	return &Counter{client: client, prefix: prefix}
}

func (c *Counter) k(key string) string {
	return c.prefix + ":" + key
}

func (c *Counter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, c.k(key))
	// NX: el TTL solo se fija la primera vez en la ventana
	pipe.ExpireNX(ctx, c.k(key), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", key, err)
	}
	return incr.Val(), nil
}

// decrScript solo decrementa una key viva y positiva: DECR sobre una ventana
// vencida crearía -1 sin TTL.
var decrScript = redis.NewScript(`
local v = tonumber(redis.call("GET", KEYS[1]))
if v == nil or v <= 0 then
	return 0
end
return redis.call("DECR", KEYS[1])
`)

func (c *Counter) Decr(ctx context.Context, key string) error {
	if err := decrScript.Run(ctx, c.client, []string{c.k(key)}).Err(); err != nil {
		return fmt.Errorf("redis decr %s: %w", key, err)
	}
	return nil
}

func (c *Counter) Close() error {
	return c.client.Close()
}
