package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	originalLog := log
	defer func() { log = originalLog }()

	t.Run("Production", func(t *testing.T) {
		Init("production")
		assert.NotNil(t, log)
	})

	t.Run("Development", func(t *testing.T) {
		Init("development")
		assert.NotNil(t, log)
	})
}

func TestL(t *testing.T) {
	originalLog := log
	defer func() { log = originalLog }()

	// Force nil to test lazy initialization
	log = nil
	t.Setenv("APP_ENV", "test")

	l := L()
	assert.NotNil(t, l)
	assert.NotNil(t, log)
}

func TestContextFunctions(t *testing.T) {
	ctx := context.Background()

	t.Run("RequestID round trip", func(t *testing.T) {
		newCtx := WithRequestID(ctx, "req-123")
		assert.Equal(t, "req-123", RequestIDFrom(newCtx))
		assert.Equal(t, "", RequestIDFrom(ctx))
	})

	t.Run("Shopper round trip", func(t *testing.T) {
		newCtx := WithShopper(ctx, "user:42")
		assert.Equal(t, "user:42", ShopperFrom(newCtx))
		assert.Equal(t, "", ShopperFrom(ctx))
	})

	t.Run("FromCtx without values returns base logger", func(t *testing.T) {
		assert.NotNil(t, FromCtx(ctx))
	})

	t.Run("FromCtx with values", func(t *testing.T) {
		enriched := WithShopper(WithRequestID(ctx, "req-9"), "device:abc")
		assert.NotNil(t, FromCtx(enriched))
	})
}
