package config

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the Redis instance backing the login rate
// limiter. REDIS_URL takes precedence (rediss:// enables TLS);
// otherwise REDIS_HOST and REDIS_PORT are used, defaulting to
// localhost:6379, with optional REDIS_PASSWORD and REDIS_DB. A nil
// return means Redis is unreachable and the limiter should be skipped.
func NewRedisClient() *redis.Client {
	var opts *redis.Options
	if raw := os.Getenv("REDIS_URL"); raw != "" {
		parsed, err := redis.ParseURL(raw)
		if err != nil {
			return nil
		}
		opts = parsed
	} else {
		dbNum, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
		opts = &redis.Options{
			Addr:     envStr("REDIS_HOST", "localhost") + ":" + envStr("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       dbNum,
		}
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
