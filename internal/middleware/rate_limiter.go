package middleware

import (
	"net/http"
	"sync"
	"time"

	"barcontrol/internal/apierror"

	"github.com/gin-gonic/gin"
)

// rateEntry tracks request counts per IP within a sliding window.
type rateEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

var (
	loginMap   = make(map[string]*rateEntry)
	loginMapMu sync.Mutex
	apiMap     = make(map[string]*rateEntry)
	apiMapMu   sync.Mutex
)

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return limiter(&loginMap, &loginMapMu, 20, time.Minute,
		"Muitas tentativas de login. Tente novamente em 1 minuto.")
}

// RateLimiter returns a general-purpose sliding-window rate limiter.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return limiter(&apiMap, &apiMapMu, limit, window,
		"Muitas requisicoes. Tente novamente em instantes.")
}

func limiter(entries *map[string]*rateEntry, mapMu *sync.Mutex, limit int, window time.Duration, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		mapMu.Lock()
		entry, exists := (*entries)[ip]
		if !exists {
			entry = &rateEntry{}
			(*entries)[ip] = entry
		}
		mapMu.Unlock()

		entry.mu.Lock()
		defer entry.mu.Unlock()

		now := time.Now()
		if now.After(entry.windowEnd) {
			entry.count = 0
			entry.windowEnd = now.Add(window)
		}

		entry.count++
		if entry.count > limit {
			c.Header("Retry-After", entry.windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}

// Expired IPs are purged periodically so the maps do not grow without bound.
const purgeInterval = 5 * time.Minute

func init() {
	go purgeExpiredEntries()
}

func purgeExpiredEntries() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		for _, pair := range []struct {
			entries map[string]*rateEntry
			mu      *sync.Mutex
		}{{loginMap, &loginMapMu}, {apiMap, &apiMapMu}} {
			pair.mu.Lock()
			for ip, entry := range pair.entries {
				entry.mu.Lock()
				if now.After(entry.windowEnd) {
					delete(pair.entries, ip)
				}
				entry.mu.Unlock()
			}
			pair.mu.Unlock()
		}
	}
}
