package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	bucketCleanupThreshold = 1 * time.Hour
	cleanupInterval        = 30 * time.Minute
)

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps a token bucket per client. Each bucket holds capacity
// tokens and refills at capacity tokens per window.
type RateLimiter struct {
	mu          sync.Mutex
	capacity    int
	refill      rate.Limit
	clients     map[string]*clientBucket
	now         func() time.Time
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// NewRateLimiter creates a limiter and starts its idle-bucket cleanup loop.
// Call Stop to end the loop.
func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	refill := rate.Inf
	if capacity > 0 && window > 0 {
		refill = rate.Every(window / time.Duration(capacity))
	}

	rl := &RateLimiter{
		capacity:    capacity,
		refill:      refill,
		clients:     make(map[string]*clientBucket),
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.stopCleanup:
			return
		}
	}
}

func (r *RateLimiter) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for client, bucket := range r.clients {
		if now.Sub(bucket.lastSeen) > bucketCleanupThreshold {
			delete(r.clients, client)
		}
	}
}

// Stop ends the cleanup loop. It is safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCleanup)
	})
}

// Allow consumes a token for client and reports whether one was available.
// A limiter with no capacity rejects every request.
func (r *RateLimiter) Allow(client string) bool {
	if r.capacity <= 0 {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	bucket, exists := r.clients[client]
	if !exists {
		bucket = &clientBucket{limiter: rate.NewLimiter(r.refill, r.capacity)}
		r.clients[client] = bucket
	}
	bucket.lastSeen = now

	return bucket.limiter.AllowN(now, 1)
}

// RateLimitMiddleware rejects requests with 429 once the client identified
// by its remote IP has used up its tokens.
func RateLimitMiddleware(logger *zap.Logger, limiter *RateLimiter, next http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			client = r.RemoteAddr
		}

		if !limiter.Allow(client) {
			logger.Warn("rate limit exceeded",
				zap.String("op", "server.RateLimitMiddleware"),
				zap.String("client", client),
				zap.String("path", r.URL.Path),
			)
			writeJSON(logger, w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}

		next.ServeHTTP(w, r)
	})
}
