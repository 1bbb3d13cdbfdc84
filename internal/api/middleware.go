package api

import (
	"crypto/subtle"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"

	"github.com/openshift-assisted/machine-monitor/internal/config"
	"github.com/openshift-assisted/machine-monitor/internal/log"
)

const limiterIdleTimeout = 10 * time.Minute

// requestLogger logs every request through the application logger.
func requestLogger(clock clockwork.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := clock.Now()

		c.Next()

		log.Logger().V(2).Info("Request served",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", clock.Since(start).String(),
			"clientIP", c.ClientIP(),
		)
	}
}

// cors echoes the origin back when it is allowed.
func cors(allowed []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && originAllowed(allowed, origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)

			return
		}

		c.Next()
	}
}

func originAllowed(allowed []string, origin string) bool {
	return slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
}

// bearerAuth rejects requests without the expected API key. An empty key disables the check.
func bearerAuth(apiKey config.Secret) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()

			return
		}

		token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid API key"})

			return
		}

		c.Next()
	}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter keeps one token bucket per client IP. Idle buckets are dropped.
type rateLimiter struct {
	mu sync.Mutex

	clock     clockwork.Clock
	limit     rate.Limit
	burst     int
	limiters  map[string]*clientLimiter
	lastSweep time.Time
}

func newRateLimiter(conf config.RateLimit, clock clockwork.Clock) *rateLimiter {
	limit := rate.Inf
	if conf.RequestsPerSecond > 0 {
		limit = rate.Limit(conf.RequestsPerSecond)
	}

	return &rateLimiter{
		clock:     clock,
		limit:     limit,
		burst:     conf.Burst,
		limiters:  make(map[string]*clientLimiter),
		lastSweep: clock.Now(),
	}
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()

	if now.Sub(rl.lastSweep) > limiterIdleTimeout {
		for ip, l := range rl.limiters {
			if now.Sub(l.lastSeen) > limiterIdleTimeout {
				delete(rl.limiters, ip)
			}
		}

		rl.lastSweep = now
	}

	l, found := rl.limiters[clientIP]
	if !found {
		l = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[clientIP] = l
	}

	l.lastSeen = now

	return l.limiter.AllowN(now, 1)
}

func (rl *rateLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "Rate limit exceeded"})

			return
		}

		c.Next()
	}
}
