package middleware

import (
	"sync"
	"time"

	"jordanmarket/config"
	domainerrors "jordanmarket/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const rateLimitSweepInterval = time.Minute

// RateLimitMiddleware is an in-memory sliding-window throttle keyed by bucket
// and actor (user ID when authenticated, client IP otherwise). Counters are
// process-local, so limits apply per instance.
type RateLimitMiddleware struct {
	cfg *config.RateLimitConfig

	mu        sync.Mutex
	hits      map[string][]time.Time
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimitMiddleware is the constructor for RateLimitMiddleware.
func NewRateLimitMiddleware(cfg *config.Config) *RateLimitMiddleware {
	var rlCfg *config.RateLimitConfig
	if cfg != nil {
		rlCfg = cfg.RateLimit
	}

	return &RateLimitMiddleware{
		cfg:  rlCfg,
		hits: make(map[string][]time.Time),
		now:  time.Now,
	}
}

// Limit throttles requests in the named bucket. A disabled or missing config
// turns the middleware into a pass-through.
func (m *RateLimitMiddleware) Limit(bucket string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.cfg == nil || !m.cfg.Enabled {
				return next(c)
			}

			rule := m.cfg.Default
			if override, ok := m.cfg.Buckets[bucket]; ok {
				rule = override
			}
			if rule.Limit <= 0 || rule.Window <= 0 {
				return next(c)
			}

			key := bucket + ":" + actorKey(c)
			if !m.allow(key, rule) {
				return domainerrors.ErrRateLimited
			}

			return next(c)
		}
	}
}

func (m *RateLimitMiddleware) allow(key string, rule config.RateLimitRule) bool {
	now := m.now()
	cutoff := now.Add(-rule.Window)

	m.mu.Lock()
	defer m.mu.Unlock()

	if now.Sub(m.lastSweep) > rateLimitSweepInterval {
		m.sweep(cutoff)
		m.lastSweep = now
	}

	window := m.hits[key]
	keep := window[:0]
	for _, at := range window {
		if at.After(cutoff) {
			keep = append(keep, at)
		}
	}

	if len(keep) >= rule.Limit {
		m.hits[key] = keep

		return false
	}

	m.hits[key] = append(keep, now)

	return true
}

// sweep drops keys whose entire window has aged out. Called under mu.
func (m *RateLimitMiddleware) sweep(cutoff time.Time) {
	for key, window := range m.hits {
		alive := false
		for _, at := range window {
			if at.After(cutoff) {
				alive = true

				break
			}
		}
		if !alive {
			delete(m.hits, key)
		}
	}
}

func actorKey(c echo.Context) string {
	if userID, ok := c.Get(ContextKeyUserID).(uuid.UUID); ok {
		return userID.String()
	}

	return c.RealIP()
}
