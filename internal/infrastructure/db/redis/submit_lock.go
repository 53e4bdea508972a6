package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SubmitLock marks submissions in flight with SET NX and a TTL. The value
// is the owner token handed out by Acquire.
// Key format: submit:<key>
type SubmitLock struct {
	client *redis.Client
}

// NewSubmitLock creates a SubmitLock wrapping the given Redis client.
func NewSubmitLock(client *redis.Client) *SubmitLock {
	return &SubmitLock{client: client}
}

// Acquire reports false when another submission holds the key.
func (l *SubmitLock) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	owner := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key(key), owner, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("acquire submit lock: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return owner, true, nil
}

// Release drops the hold before its TTL. A hold that expired and was taken
// by another submission is left alone.
func (l *SubmitLock) Release(ctx context.Context, key, owner string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key(key)}, owner).Err(); err != nil {
		return fmt.Errorf("release submit lock: %w", err)
	}
	return nil
}

func (l *SubmitLock) key(k string) string {
	return "submit:" + k
}
