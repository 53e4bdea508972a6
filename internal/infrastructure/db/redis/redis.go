// Package redis keeps the web tier's per-browser state in Redis: sessions,
// form drafts and submit locks, each under its own key prefix with a TTL.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTimeout    = 5 * time.Second
	defaultClientName = "jobboard-web"
)

// Config selects the Redis instance holding session:, draft: and submit:
// keys. PoolSize bounds concurrent request handlers touching the store.
type Config struct {
	Addr       string
	Password   string
	DB         int
	PoolSize   int
	ClientName string
	Timeout    time.Duration
}

func (c Config) options() *redis.Options {
	name := c.ClientName
	if name == "" {
		name = defaultClientName
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		ClientName:   name,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
}

// Connect opens the client and pings it within the dial timeout.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts := cfg.options()
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()
	if err := (Pinger{Client: client}).Ping(pingCtx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Pinger backs the readiness probe.
type Pinger struct {
	Client *redis.Client
}

func (p Pinger) Ping(ctx context.Context) error {
	if err := p.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
