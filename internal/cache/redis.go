package cache

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/bengobox/starter-service/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

// New initialises a Redis client using the provided configuration. It returns
// nil without error when no address is configured.
func New(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(Options(cfg))
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Options translates RedisConfig into client options.
func Options(cfg config.RedisConfig) *redis.Options {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,

		// Skip CLIENT SETINFO; older servers and proxies reject it.
		DisableIdentity: true,

		// Servers without CLIENT MAINT_NOTIFICATIONS fail the handshake and log a warning.
		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	}

	if cfg.EnableTLS {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	return opts
}

// Checker reports Redis reachability for readiness probes.
type Checker struct {
	client redis.UniversalClient
}

// NewChecker wraps client as a readiness check.
func NewChecker(client redis.UniversalClient) *Checker {
	return &Checker{client: client}
}

func (c *Checker) Name() string { return "redis" }

func (c *Checker) Check(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
