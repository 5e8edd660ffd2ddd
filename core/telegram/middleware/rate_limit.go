package middleware

import (
	"log/slog"
	"sync"
	"time"

	coreconfig "github.com/m3rciful/electionbot/core/config"
	"github.com/m3rciful/electionbot/core/logger"
	tghelpers "github.com/m3rciful/electionbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// RateLimitOptions configures the rate limit middleware.
type RateLimitOptions struct {
	Interval time.Duration
	// Exclude lists update kinds that bypass the limit.
	Exclude   map[string]struct{}
	OnLimited tele.HandlerFunc
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

func updateKind(upd tele.Update) string {
	switch {
	case upd.Callback != nil:
		return coreconfig.UpdateCallback
	case upd.Message != nil:
		return coreconfig.UpdateMessage
	case upd.Query != nil:
		return coreconfig.UpdateInlineQuery
	}
	return "other"
}

// rateLimiter remembers the last accepted update per user. Entries older
// than interval are swept at most once per interval.
type rateLimiter struct {
	mu        sync.Mutex
	interval  time.Duration
	lastSeen  map[int64]time.Time
	lastSweep time.Time
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval, lastSeen: make(map[int64]time.Time)}
}

// allow records ts for userID unless the previous accepted update is too recent.
func (r *rateLimiter) allow(userID int64, ts time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if last, ok := r.lastSeen[userID]; ok && ts.Sub(last) < r.interval {
		return false
	}
	if ts.Sub(r.lastSweep) >= r.interval {
		for id, last := range r.lastSeen {
			if ts.Sub(last) >= r.interval {
				delete(r.lastSeen, id)
			}
		}
		r.lastSweep = ts
	}
	r.lastSeen[userID] = ts
	return true
}

func (r *rateLimiter) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lastSeen)
}

// RateLimitMiddleware drops updates that arrive sooner than Interval after
// the previous accepted update of the same user.
func RateLimitMiddleware(opts RateLimitOptions) tele.MiddlewareFunc {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	limiter := newRateLimiter(opts.Interval)
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || opts.Interval <= 0 {
				return next(c)
			}
			kind := updateKind(c.Update())
			if _, skip := opts.Exclude[kind]; skip {
				return next(c)
			}

			if !limiter.allow(user.ID, now()) {
				logger.Warn(tghelpers.BuildContext(c), "tg", "rate_limit",
					slog.String("kind", kind),
					slog.Duration("interval", opts.Interval),
				)
				if opts.OnLimited != nil {
					_ = opts.OnLimited(c)
				}
				return nil
			}
			return next(c)
		}
	}
}
