package memory

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	n       int64
	expires time.Time
}

// Counter es el quota.Counter in-memory. Una goroutine purga keys vencidas hasta Close.
type Counter struct {
	mu   sync.Mutex
	keys map[string]*entry
	now  func() time.Time

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func New() *Counter {
	return newCounter(time.Minute, time.Now)
}

func newCounter(every time.Duration, now func() time.Time) *Counter {
	c := &Counter{
		keys: make(map[string]*entry),
		now:  now,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go c.sweep(every)
	return c
}

func (c *Counter) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	e, ok := c.keys[key]
	if !ok || !now.Before(e.expires) {
		e = &entry{expires: now.Add(ttl)}
		c.keys[key] = e
	}
	e.n++
	return e.n, nil
}

func (c *Counter) Decr(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.keys[key]; ok && e.n > 0 {
		e.n--
	}
	return nil
}

func (c *Counter) sweep(every time.Duration) {
	defer close(c.done)
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-t.C:
			c.mu.Lock()
			now := c.now()
			for k, e := range c.keys {
				if !now.Before(e.expires) {
					delete(c.keys, k)
				}
			}
			c.mu.Unlock()
		}
	}
}

func (c *Counter) Close() error {
	c.once.Do(func() { close(c.stop) })
	<-c.done
	return nil
}
