package initializers

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ConnectToRedis opens the catalog cache connection. Redis is
// optional: with no REDIS_ADDR configured, or an unreachable server,
// the API runs cache-less and nil is returned.
func ConnectToRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		logrus.Info("REDIS_ADDR not set, running without the catalog cache.")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logrus.Warnf("Redis at %s not reachable (%v), running without the catalog cache.", addr, err)
		return nil
	}

	logrus.Infof("Connected to redis at %s.", addr)
	return rdb
}
