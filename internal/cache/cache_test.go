package cache

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-files-manager/internal/config"
	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("redis", func(t *testing.T) {
		srv := miniredis.RunT(t)

		c, err := New(config.Cache{Backend: config.CacheBackendRedis, Address: srv.Addr()}, logger.Nop())
		require.NoError(t, err)
		defer c.Close()

		assert.NoError(t, c.Ping(context.Background()))
	})

	t.Run("memory", func(t *testing.T) {
		c, err := New(config.Cache{Backend: config.CacheBackendMemory}, logger.Nop())
		require.NoError(t, err)

		assert.NoError(t, c.Ping(context.Background()))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := New(config.Cache{Backend: "memcached"}, logger.Nop())
		assert.ErrorIs(t, err, ErrUnknownBackend)
	})
}
