package config

import (
	"sync"
	"time"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// SessionTTL bounds how long an abandoned collecting session survives.
	SessionTTL time.Duration
}

var (
	redisConfig *RedisConfig
	redisOnce   sync.Once
)

func LoadRedisConfig() *RedisConfig {
	redisOnce.Do(func() {
		v := env()
		redisConfig = &RedisConfig{
			Addr:       v.GetString("REDIS_ADDR"),
			Password:   v.GetString("REDIS_PASSWORD"),
			DB:         v.GetInt("REDIS_DB"),
			SessionTTL: v.GetDuration("SESSION_TTL"),
		}
	})
	return redisConfig
}
