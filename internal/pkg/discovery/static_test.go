package discovery_test

import (
	"context"
	"testing"

	"deliveryapp/internal/pkg/discovery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeers(t *testing.T) {
	t.Run("valid list", func(t *testing.T) {
		peers, err := discovery.ParsePeers(" order-service=http://orders:8081/ , deliverer-service=http://d:8083,")

		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"order-service":     "http://orders:8081",
			"deliverer-service": "http://d:8083",
		}, peers)
	})

	t.Run("empty list", func(t *testing.T) {
		peers, err := discovery.ParsePeers("")

		require.NoError(t, err)
		assert.Empty(t, peers)
	})

	t.Run("malformed entry", func(t *testing.T) {
		for _, raw := range []string{"order-service", "=http://x", "order-service="} {
			_, err := discovery.ParsePeers(raw)
			assert.Error(t, err, raw)
		}
	})
}

func TestStaticRegistry(t *testing.T) {
	ctx := context.Background()
	registry := discovery.NewStaticRegistry(map[string]string{"order-service": "http://orders:8081"})

	url, err := registry.Resolve(ctx, "order-service")
	require.NoError(t, err)
	assert.Equal(t, "http://orders:8081", url)

	_, err = registry.Resolve(ctx, "deliverer-service")
	require.ErrorIs(t, err, discovery.ErrServiceNotRegistered)

	instance := discovery.NewInstance("deliverer-service", "http://localhost:8083/")
	assert.NotEmpty(t, instance.ID)
	require.NoError(t, registry.Register(ctx, instance))

	url, err = registry.Resolve(ctx, "deliverer-service")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8083", url)

	require.NoError(t, registry.Deregister(ctx, instance))
	_, err = registry.Resolve(ctx, "deliverer-service")
	require.ErrorIs(t, err, discovery.ErrServiceNotRegistered)
}
