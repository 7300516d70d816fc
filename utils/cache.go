// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"tripplanner/config"

	"github.com/go-redis/redis/v8"
)

// HistoryCacheClient is the dedicated client for trip-history caching.
var HistoryCacheClient *redis.Client

// InitHistoryCache initializes the Redis client for trip-history caching
// (using DB from AppConfig).
func InitHistoryCache() {
	HistoryCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisHistoryDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := HistoryCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (History Cache): %v", err)
	}
}

// GetHistoryCacheClient returns the Redis client for trip-history caching.
func GetHistoryCacheClient() *redis.Client {
	if HistoryCacheClient == nil {
		InitHistoryCache()
	}
	return HistoryCacheClient
}
