package config

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	environment     *viper.Viper
	environmentOnce sync.Once
)

// env returns the shared viper instance backed by process environment variables.
// godotenv.Load in main runs before the first call so .env values are visible here.
func env() *viper.Viper {
	environmentOnce.Do(func() {
		v := viper.New()
		v.AutomaticEnv()

		v.SetDefault("APP_NAME", "labour-intake")
		v.SetDefault("APP_ENV", "development")
		v.SetDefault("APP_PORT", ":8080")
		v.SetDefault("LOG_JSON", false)
		v.SetDefault("LOG_DEBUG", false)
		v.SetDefault("STORAGE", "postgres")

		v.SetDefault("DB_PORT", "5432")
		v.SetDefault("DB_SSLMODE", "disable")

		v.SetDefault("REDIS_ADDR", "localhost:6379")
		v.SetDefault("REDIS_DB", 0)
		v.SetDefault("SESSION_TTL", 24*time.Hour)

		v.SetDefault("LLM_PROVIDER", "gemini")
		v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
		v.SetDefault("GEMINI_EMBEDDING_MODEL", "gemini-embedding-001")
		v.SetDefault("OPENROUTER_MODEL", "openai/gpt-4o-mini")
		v.SetDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")
		v.SetDefault("MODEL_TIMEOUT", 30*time.Second)
		v.SetDefault("CIRCUIT_BREAKER_MAX", 5)
		v.SetDefault("CIRCUIT_BREAKER_COOLDOWN", 30*time.Second)

		v.SetDefault("RATE_LIMIT_MAX", 50)
		v.SetDefault("RATE_LIMIT_WINDOW", time.Minute)

		environment = v
	})
	return environment
}
