package config

import (
	"log"
	"os"
	"sync"
	"time"
)

type AppConfig struct {
	Name            string
	Env             string
	Port            string
	BaseURL         string
	Storage         string
	LogJSON         bool
	LogDebug        bool
	RateLimitMax    int
	RateLimitWindow time.Duration
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		v := env()
		if os.Getenv("APP_ENV") == "" {
			log.Printf("Warning: APP_ENV not set, defaulting to %s", v.GetString("APP_ENV"))
		}
		appConfig = &AppConfig{
			Name:            v.GetString("APP_NAME"),
			Env:             v.GetString("APP_ENV"),
			Port:            v.GetString("APP_PORT"),
			BaseURL:         v.GetString("APP_URL"),
			Storage:         v.GetString("STORAGE"),
			LogJSON:         v.GetBool("LOG_JSON"),
			LogDebug:        v.GetBool("LOG_DEBUG"),
			RateLimitMax:    v.GetInt("RATE_LIMIT_MAX"),
			RateLimitWindow: v.GetDuration("RATE_LIMIT_WINDOW"),
		}
	})
	return appConfig
}

// IsProduction reports whether error details must be hidden from callers.
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
