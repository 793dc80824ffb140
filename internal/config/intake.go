package config

import (
	"strings"
	"sync"
	"time"
)

// IntakeConfig selects the text-generation backend and bounds each call to it.
type IntakeConfig struct {
	Provider               string
	SessionStore           string
	ModelTimeout           time.Duration
	CircuitBreakerMax      int
	CircuitBreakerCooldown time.Duration
}

var (
	intakeConfig *IntakeConfig
	intakeOnce   sync.Once
)

func LoadIntakeConfig() *IntakeConfig {
	intakeOnce.Do(func() {
		v := env()
		store := strings.ToLower(strings.TrimSpace(v.GetString("SESSION_STORE")))
		if store == "" {
			store = strings.ToLower(v.GetString("STORAGE"))
		}
		intakeConfig = &IntakeConfig{
			Provider:               strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER"))),
			SessionStore:           store,
			ModelTimeout:           v.GetDuration("MODEL_TIMEOUT"),
			CircuitBreakerMax:      v.GetInt("CIRCUIT_BREAKER_MAX"),
			CircuitBreakerCooldown: v.GetDuration("CIRCUIT_BREAKER_COOLDOWN"),
		}
	})
	return intakeConfig
}
