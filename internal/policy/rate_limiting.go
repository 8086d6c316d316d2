package policy

import (
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/collegeconnect/socialgraph/pkg/config"
	"github.com/collegeconnect/socialgraph/pkg/models"
)

// ErrRateLimited is returned when a requester sends friend requests faster
// than the configured rate.
var ErrRateLimited = errors.New("friend request rate exceeded")

// DefaultMaxTracked bounds the bucket map when no explicit size is configured.
const DefaultMaxTracked = 10000

// RequestLimiter throttles friend requests per requester using a token bucket.
// Buckets live in an LRU so idle requesters are eventually dropped; an evicted
// requester comes back with a full bucket.
type RequestLimiter struct {
	enabled bool
	limit   rate.Limit
	burst   int

	buckets *lru.Cache[models.UserID, *rate.Limiter]
}

// NewRequestLimiterFromConfig creates a limiter from config. A zero rate
// disables throttling.
func NewRequestLimiterFromConfig(cfg config.RequestsConfig) *RequestLimiter {
	return NewRequestLimiter(cfg.RatePerMinute, cfg.Burst, cfg.MaxTracked)
}

// NewRequestLimiter allows perMinute requests per requester with the given
// burst, keeping at most maxTracked buckets (DefaultMaxTracked when <= 0).
func NewRequestLimiter(perMinute, burst, maxTracked int) *RequestLimiter {
	if burst < 1 {
		burst = 1
	}
	if maxTracked <= 0 {
		maxTracked = DefaultMaxTracked
	}
	// lru.New only fails for a non-positive size.
	buckets, _ := lru.New[models.UserID, *rate.Limiter](maxTracked)
	return &RequestLimiter{
		enabled: perMinute > 0,
		limit:   rate.Limit(float64(perMinute) / 60),
		burst:   burst,
		buckets: buckets,
	}
}

func (l *RequestLimiter) Enabled() bool {
	return l.enabled
}

func (l *RequestLimiter) Name() string {
	return "request_rate_limiting"
}

// Allow reports whether requester may send another request now.
func (l *RequestLimiter) Allow(requester models.UserID) error {
	return l.AllowAt(requester, time.Now())
}

// AllowAt is Allow evaluated at a fixed instant.
func (l *RequestLimiter) AllowAt(requester models.UserID, now time.Time) error {
	if !l.enabled {
		return nil
	}
	if !l.limiterFor(requester).AllowN(now, 1) {
		return ErrRateLimited
	}
	return nil
}

// Forget drops the bucket kept for id, e.g. after the account is deleted.
func (l *RequestLimiter) Forget(id models.UserID) {
	l.buckets.Remove(id)
}

// Tracked returns the number of requesters with a live bucket.
func (l *RequestLimiter) Tracked() int {
	return l.buckets.Len()
}

func (l *RequestLimiter) limiterFor(id models.UserID) *rate.Limiter {
	if lim, ok := l.buckets.Get(id); ok {
		return lim
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	// A concurrent caller may have won the race; share its bucket.
	if prev, ok, _ := l.buckets.PeekOrAdd(id, lim); ok {
		return prev
	}
	return lim
}
