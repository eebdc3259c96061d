package http

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// loginLimiter throttles credential attempts per client IP using token
// buckets. The original contract allows 5 login requests per minute.
type loginLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientLimiter
	limit        rate.Limit
	burst        int
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLoginLimiter() *loginLimiter {
	ll := &loginLimiter{
		clients:     make(map[string]*clientLimiter),
		limit:       rate.Every(time.Minute / 5),
		burst:       5,
		stopCleanup: make(chan struct{}),
	}
	go ll.startCleanup()
	return ll
}

// allow reports whether a login attempt from the given IP may proceed.
func (ll *loginLimiter) allow(clientIP string) bool {
	ll.mu.Lock()
	defer ll.mu.Unlock()

	client, exists := ll.clients[clientIP]
	if !exists {
		client = &clientLimiter{limiter: rate.NewLimiter(ll.limit, ll.burst)}
		ll.clients[clientIP] = client
	}
	client.lastSeen = time.Now()

	return client.limiter.Allow()
}

// startCleanup runs periodic cleanup to remove stale client entries.
func (ll *loginLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ll.cleanupStaleEntries()
		case <-ll.stopCleanup:
			return
		}
	}
}

// cleanupStaleEntries removes client entries older than 10 minutes.
func (ll *loginLimiter) cleanupStaleEntries() {
	ll.mu.Lock()
	defer ll.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range ll.clients {
		if client.lastSeen.Before(cutoff) {
			delete(ll.clients, ip)
		}
	}
}

// stop gracefully shuts down the cleanup goroutine.
func (ll *loginLimiter) stop() {
	ll.shutdownOnce.Do(func() {
		if ll.stopCleanup != nil {
			close(ll.stopCleanup)
		}
	})
}
