package httpserver

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/guillermoBallester/foodbank/internal/core/port"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a key may go unused before its bucket is dropped.
// An idle bucket has refilled to its burst, so dropping it changes nothing.
const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// keyRateLimiter provides per-key rate limiting using token buckets. Keys
// unused for limiterIdleTTL are swept on a later Allow call.
type keyRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	rate      rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

func newKeyRateLimiter(reqPerMinute float64) *keyRateLimiter {
	burst := int(reqPerMinute / 6) // 10 seconds worth
	if burst < 1 {
		burst = 1
	}
	return &keyRateLimiter{
		limiters:  make(map[string]*limiterEntry),
		rate:      rate.Limit(reqPerMinute / 60),
		burst:     burst,
		now:       time.Now,
		lastSweep: time.Now(),
	}
}

// Allow checks if the given key is within its rate limit.
func (l *keyRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	now := l.now()
	if now.Sub(l.lastSweep) >= limiterIdleTTL {
		l.sweepLocked(now)
	}
	entry, ok := l.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	l.mu.Unlock()
	return entry.limiter.AllowN(now, 1)
}

// RetryAfter returns an estimate of when the next request will be allowed.
func (l *keyRateLimiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	entry, ok := l.limiters[key]
	now := l.now()
	l.mu.Unlock()
	if !ok {
		return 0
	}
	reservation := entry.limiter.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)
	reservation.CancelAt(now)
	return delay
}

// Len returns the number of tracked keys.
func (l *keyRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func (l *keyRateLimiter) sweepLocked(now time.Time) {
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= limiterIdleTTL {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}

// callerRateLimiter limits requests per authenticated caller. It must run
// after identityAuth; requests without an identity fall back to the client IP.
type callerRateLimiter struct {
	inner *keyRateLimiter
}

func newCallerRateLimiter(reqPerMinute float64) *callerRateLimiter {
	return &callerRateLimiter{inner: newKeyRateLimiter(reqPerMinute)}
}

func (l *callerRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := "ip:" + r.RemoteAddr // chi RealIP middleware has already normalised this
		if identity := port.IdentityFromContext(r.Context()); identity != nil {
			key = "caller:" + identity.ID
		}

		if !l.inner.Allow(key) {
			retryAfter := l.inner.RetryAfter(key)
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
