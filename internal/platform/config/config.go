// Package config loads process configuration from the environment.
package config

import (
	"time"

	"github.com/spf13/viper"

	"blog_backend/internal/platform/db"
	"blog_backend/internal/platform/redis"
)

// Config is the process-wide configuration, built once in main and passed down.
type Config struct {
	Port     string
	GinMode  string
	Database db.Config
	Redis    redis.Config

	// JWTSecret has no default; an empty value disables token issuance.
	JWTSecret string
	TokenTTL  time.Duration
	CacheTTL  time.Duration
}

// defaults mirror the values the service has always fallen back to.
var defaults = map[string]any{
	"PORT":        "5000",
	"GIN_MODE":    "debug",
	"DB_DRIVER":   db.DriverMySQL,
	"DB_HOST":     "localhost",
	"DB_PORT":     "3306",
	"DB_USER":     "root",
	"DB_PASS":     "",
	"DB_NAME":     "daily",
	"DB_LOG_MODE": false,
	"REDIS_HOST":  "",
	"REDIS_PORT":  "6379",
	"TOKEN_TTL":   time.Hour,
	"CACHE_TTL":   5 * time.Minute,
}

// Load reads configuration from environment variables, applying defaults for unset keys.
func Load() *Config {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	return &Config{
		Port:    v.GetString("PORT"),
		GinMode: v.GetString("GIN_MODE"),
		Database: db.Config{
			Driver:   v.GetString("DB_DRIVER"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			Name:     v.GetString("DB_NAME"),
			LogMode:  v.GetBool("DB_LOG_MODE"),
		},
		Redis: redis.Config{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
		},
		JWTSecret: v.GetString("JWT_SECRET"),
		TokenTTL:  v.GetDuration("TOKEN_TTL"),
		CacheTTL:  v.GetDuration("CACHE_TTL"),
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
