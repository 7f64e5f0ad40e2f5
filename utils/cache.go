// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"frontdesk/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionCacheClient holds live dialogue sessions between turns.
	SessionCacheClient *redis.Client
)

// InitSessionCache initializes the Redis client backing the session store.
func InitSessionCache() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SessionCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Sessions): %v", err)
	}
}

// GetSessionCacheClient returns the Redis client for session storage.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}
