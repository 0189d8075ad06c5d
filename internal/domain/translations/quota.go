package translations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pet-translator/internal/ports/quota"
)

// QuotaGuard limita las traducciones diarias de usuarios free.
type QuotaGuard struct {
	counter   quota.Counter
	freeDaily int
	now       func() time.Time
}

// NewQuotaGuard devuelve nil si no hay counter o freeDaily <= 0 (sin límite).
func NewQuotaGuard(c quota.Counter, freeDaily int) *QuotaGuard {
	if c == nil || freeDaily <= 0 {
		return nil
	}
	return &QuotaGuard{counter: c, freeDaily: freeDaily, now: time.Now}
}

func (g *QuotaGuard) key(userID string) string {
	return fmt.Sprintf("quota:%s:%s", userID, g.now().UTC().Format("2006-01-02"))
}

// Acquire consume un uso del día. release lo devuelve si la traducción no llega a guardarse.
// Premium (o guard nil) no consume nada.
func (g *QuotaGuard) Acquire(ctx context.Context, userID string, premium bool) (release func(), err error) {
	noop := func() {}
	if g == nil || premium {
		return noop, nil
	}

	key := g.key(userID)
	n, err := g.counter.Incr(ctx, key, 25*time.Hour)
	if err != nil {
		return noop, fmt.Errorf("quota incr: %w", err)
	}

	release = func() {
		// context propio: el del request puede estar cancelado
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		_ = g.counter.Decr(rctx, key)
	}

	if n > int64(g.freeDaily) {
		release()
		return noop, quota.ErrExceeded
	}
	return release, nil
}

func isQuotaExceeded(err error) bool {
	return errors.Is(err, quota.ErrExceeded)
}
