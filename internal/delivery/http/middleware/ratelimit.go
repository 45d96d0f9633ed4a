package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// idleBucketTTL is how long a caller may stay silent before its bucket is dropped.
const idleBucketTTL = 10 * time.Minute

// MatchThrottle caps match requests per caller with one token bucket each. Buckets of
// callers idle for idleBucketTTL are swept in the background until Stop.
type MatchThrottle struct {
	mu      sync.Mutex
	every   rate.Limit
	burst   int
	buckets map[string]*callerBucket

	sweepEvery time.Duration
	done       chan struct{}
	stopOnce   sync.Once
}

type callerBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMatchThrottle allows perMinute requests per caller with the given burst.
func NewMatchThrottle(perMinute, burst int, sweepEvery time.Duration) *MatchThrottle {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 1
	}
	if sweepEvery <= 0 {
		sweepEvery = time.Minute
	}
	t := &MatchThrottle{
		every:      rate.Every(time.Minute / time.Duration(perMinute)),
		burst:      burst,
		buckets:    make(map[string]*callerBucket),
		sweepEvery: sweepEvery,
		done:       make(chan struct{}),
	}
	go t.sweep()
	return t
}

func (t *MatchThrottle) sweep() {
	ticker := time.NewTicker(t.sweepEvery)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			t.dropIdle(now.Add(-idleBucketTTL))
		case <-t.done:
			return
		}
	}
}

// dropIdle forgets every caller not seen since cutoff.
func (t *MatchThrottle) dropIdle(cutoff time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for caller, b := range t.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(t.buckets, caller)
		}
	}
}

// Stop ends the background sweep. Safe to call more than once.
func (t *MatchThrottle) Stop() {
	t.stopOnce.Do(func() { close(t.done) })
}

func (t *MatchThrottle) bucket(caller string, now time.Time) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.buckets[caller]
	if !ok {
		b = &callerBucket{limiter: rate.NewLimiter(t.every, t.burst)}
		t.buckets[caller] = b
	}
	b.lastSeen = now
	return b.limiter
}

// Take consumes a token for caller. When none is available it returns false and the
// wait until the next one; the token is not consumed.
func (t *MatchThrottle) Take(caller string) (bool, time.Duration) {
	now := time.Now()
	r := t.bucket(caller, now).ReserveN(now, 1)
	if !r.OK() {
		return false, time.Minute
	}
	if wait := r.DelayFrom(now); wait > 0 {
		r.CancelAt(now)
		return false, wait
	}
	return true, 0
}

// RateLimit throttles match requests per authenticated user, falling back to the
// client IP, and answers 429 with Retry-After in whole seconds.
func RateLimit(throttle *MatchThrottle) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := "ip:" + c.ClientIP()
		if v, ok := c.Get("user_id"); ok {
			if id, ok := v.(string); ok && id != "" {
				caller = "user:" + id
			}
		}

		ok, wait := throttle.Take(caller)
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":  "Too many match requests. Slow down.",
				"reason": "rate_limited",
			})
			return
		}
		c.Next()
	}
}
