package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "REDIS_HOST", "REDIS_PORT", "ORDER_PAYMENT_WINDOW"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "localhost", cfg.RedisHost)
	assert.Equal(t, "6379", cfg.RedisPort)
	assert.Equal(t, time.Duration(0), cfg.PaymentWindow)
	assert.False(t, cfg.FreeStatusTransitions)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6390")
	t.Setenv("ORDER_PAYMENT_WINDOW", "30m")
	t.Setenv("ORDER_STATUS_FREE_TRANSITIONS", "true")

	cfg := Load()

	assert.Equal(t, "cache.internal", cfg.RedisHost)
	assert.Equal(t, "6390", cfg.RedisPort)
	assert.Equal(t, 30*time.Minute, cfg.PaymentWindow)
	assert.True(t, cfg.FreeStatusTransitions)
}
