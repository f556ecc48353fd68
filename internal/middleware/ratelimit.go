package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"crmsales/internal/config"
)

// bucketScript is a token bucket kept in a Redis hash. It refills the
// bucket from the elapsed time, takes one token when available and
// otherwise reports how many milliseconds remain until the next refill.
// Running as a script keeps the read-refill-take sequence atomic per key.
var bucketScript = redis.NewScript(`
local tokens, stamp = unpack(redis.call('HMGET', KEYS[1], 'tokens', 'stamp'))
local now = tonumber(ARGV[1])
local cap = tonumber(ARGV[2])
local refill = tonumber(ARGV[3])
local step = tonumber(ARGV[4])

tokens = tonumber(tokens)
stamp = tonumber(stamp)
if tokens == nil or stamp == nil then
  tokens = cap
  stamp = now
end

local steps = math.floor((now - stamp) / step)
if steps > 0 then
  tokens = math.min(cap, tokens + steps * refill)
  stamp = stamp + steps * step
end

local ok = 0
local wait = 0
if tokens > 0 then
  ok = 1
  tokens = tokens - 1
else
  wait = step - (now - stamp)
  if wait < 0 then wait = 0 end
end

redis.call('HMSET', KEYS[1], 'tokens', tokens, 'stamp', stamp)
redis.call('EXPIRE', KEYS[1], ARGV[5])
return {ok, tokens, wait}
`)

// LoginRateLimit returns the middleware guarding the login route
// against credential guessing. Each client IP gets its own token
// bucket in Redis; exhausting it yields a 429 with a Retry-After
// header. When rate limiting is disabled or no Redis client is
// available the returned middleware does nothing, so login keeps
// working without Redis.
func LoginRateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := cfg.Prefix + ":login:" + clientKey(c)

			res, err := bucketScript.Run(c.Request().Context(), rdb,
				[]string{key},
				time.Now().UnixMilli(),
				cfg.Capacity,
				cfg.RefillTokens,
				cfg.RefillInterval.Milliseconds(),
				int64(cfg.TTL/time.Second),
			).Int64Slice()
			if err != nil || len(res) != 3 {
				// An unreachable Redis must not take login down with it.
				c.Logger().Warnf("rate limit check failed for %s: %v", key, err)
				return next(c)
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res[1], 10))

			if res[0] != 1 {
				wait := int(math.Ceil(float64(res[2]) / 1000))
				c.Response().Header().Set("Retry-After", strconv.Itoa(wait))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"success":          false,
					"unsuccess_reason": "Too many requests.",
				})
			}
			return next(c)
		}
	}
}

func clientKey(c echo.Context) string {
	if ip := c.RealIP(); ip != "" {
		return ip
	}
	return "unknown"
}
