package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCounter_IncrDecr(t *testing.T) {
	c := New()
	defer c.Close()
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, err := c.Incr(ctx, "quota:u:2026-01-01", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	require.NoError(t, c.Decr(ctx, "quota:u:2026-01-01"))
	n, err := c.Incr(ctx, "quota:u:2026-01-01", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestCounter_WindowExpires(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	c := newCounter(time.Hour, clock)
	defer c.Close()
	ctx := context.Background()

	_, _ = c.Incr(ctx, "k", time.Minute)
	_, _ = c.Incr(ctx, "k", time.Minute)

	mu.Lock()
	now = now.Add(2 * time.Minute)
	mu.Unlock()

	n, err := c.Incr(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCounter_ConcurrentIncr(t *testing.T) {
	c := New()
	defer c.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Incr(context.Background(), "k", time.Hour)
		}()
	}
	wg.Wait()

	n, _ := c.Incr(context.Background(), "k", time.Hour)
	assert.Equal(t, int64(51), n)
}
