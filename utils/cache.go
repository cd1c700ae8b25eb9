// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"ghtour/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// InitAuthCache initializes the Redis client for authorization caching (using DB from AppConfig for auth cache).
// It returns nil when redis is unreachable; sessions are then verified on every request.
func InitAuthCache() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		GetLogger().Warn("Auth cache unavailable, verifying every token remotely", zap.Error(err))
		_ = client.Close()
		return nil
	}
	return client
}
