package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	t.Run("Should refuse an empty URL", func(t *testing.T) {
		assert.ErrorIs(t, Initialize(Config{}), ErrNotConfigured)
		assert.Nil(t, Client())
	})

	t.Run("Should reject a malformed URL", func(t *testing.T) {
		err := Initialize(Config{URL: "http://localhost:6379"})
		assert.ErrorContains(t, err, "invalid URL")
		assert.Nil(t, Client())
	})
}

func TestHealthCheckWithoutClient(t *testing.T) {
	assert.Error(t, HealthCheck(context.Background()))
	assert.NoError(t, Close())
}
