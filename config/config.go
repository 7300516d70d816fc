package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisHistoryDB int    `mapstructure:"REDIS_HISTORY_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Client polling behavior.
	PollIntervalMS  int `mapstructure:"POLL_INTERVAL_MS"`
	MaxPollAttempts int `mapstructure:"MAX_POLL_ATTEMPTS"`

	// Base URL of the planner backend used by the trip client.
	BackendURL string `mapstructure:"BACKEND_URL"`

	// QueueDriver selects how planning jobs run: "asynq" (redis-backed
	// worker) or "direct" (in-process).
	QueueDriver string `mapstructure:"QUEUE_DRIVER"`

	// HistoryStore selects where the client caches trip history: "redis"
	// (shared across sessions, uses REDIS_HISTORY_DB) or "memory".
	HistoryStore string `mapstructure:"HISTORY_STORE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_HISTORY_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("POLL_INTERVAL_MS", 1000)
	viper.SetDefault("MAX_POLL_ATTEMPTS", 120)
	viper.SetDefault("BACKEND_URL", "http://localhost:8000")
	viper.SetDefault("QUEUE_DRIVER", "direct")
	viper.SetDefault("HISTORY_STORE", "memory")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// PollInterval returns the configured poll interval as a duration.
func PollInterval() time.Duration {
	if AppConfig.PollIntervalMS <= 0 {
		return time.Second
	}
	return time.Duration(AppConfig.PollIntervalMS) * time.Millisecond
}
