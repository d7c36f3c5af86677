package middleware

import (
	"context"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/optima-app/api-server-go/internal/config"
	"github.com/optima-app/api-server-go/internal/redis"
)

const loginLimitWindow = 60 * time.Second

var loginLimitScript = goredis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

local windowStart = now - window

redis.call('ZREMRANGEBYSCORE', key, '-inf', windowStart)

local count = redis.call('ZCARD', key)

if count >= limit then
    return 0
end

redis.call('ZADD', key, now, now .. '-' .. math.random())
redis.call('EXPIRE', key, window + 10)

return 1
`)

// LoginRateLimiter throttles admin login attempts per client IP with a Redis
// sliding window. Fails open: a Redis error allows the attempt rather than
// locking every admin out.
type LoginRateLimiter struct {
	client *goredis.Client
	limit  int
}

func NewLoginRateLimiter(client *goredis.Client) *LoginRateLimiter {
	return &LoginRateLimiter{
		client: client,
		limit:  config.LoginRateLimitPerMin,
	}
}

func (l *LoginRateLimiter) allowed(ctx context.Context, ip string) bool {
	now := time.Now().Unix()
	key := redis.LoginAttemptsKey(ip)

	result, err := loginLimitScript.Run(ctx, l.client, []string{key},
		now, int64(loginLimitWindow.Seconds()), l.limit).Int64()
	if err != nil {
		log.Warn().Err(err).Str("ip", ip).Msg("redis login limit check failed, allowing attempt")
		return true
	}

	return result == 1
}

func (l *LoginRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// RealIP runs earlier in the chain, so RemoteAddr already holds the
		// client address. Reading forwarding headers here would let a caller
		// rotate keys.
		ip := r.RemoteAddr

		if !l.allowed(r.Context(), ip) {
			log.Warn().Str("ip", ip).Msg("login rate limit exceeded")
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"success": false,
				"error":   "Too many login attempts. Please try again later.",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
