package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/bengobox/starter-service/internal/config"
	"github.com/redis/go-redis/v9/maintnotifications"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutAddrIsDisabled(t *testing.T) {
	client, err := New(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewPingsServer(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := New(context.Background(), config.RedisConfig{Addr: srv.Addr()})
	require.NoError(t, err)
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })

	checker := NewChecker(client)
	assert.Equal(t, "redis", checker.Name())
	assert.NoError(t, checker.Check(context.Background()))

	srv.Close()
	assert.Error(t, checker.Check(context.Background()))
}

func TestOptionsDisableOptionalHandshakes(t *testing.T) {
	opts := Options(config.RedisConfig{Addr: "redis:6379", DB: 2, EnableTLS: true})

	assert.Equal(t, "redis:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.True(t, opts.DisableIdentity)
	require.NotNil(t, opts.MaintNotificationsConfig)
	assert.Equal(t, maintnotifications.ModeDisabled, opts.MaintNotificationsConfig.Mode)
	require.NotNil(t, opts.TLSConfig)
}

func TestNewFailsWhenUnreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	_, err := New(context.Background(), config.RedisConfig{Addr: addr})
	assert.ErrorContains(t, err, "ping redis")
}
