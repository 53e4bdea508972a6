package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type hold struct {
	owner string
	until time.Time
}

// SubmitLock is a TTL lock table.
type SubmitLock struct {
	mu    sync.Mutex
	now   func() time.Time
	holds map[string]hold
}

func NewSubmitLock() *SubmitLock {
	return &SubmitLock{now: time.Now, holds: make(map[string]hold)}
}

func (l *SubmitLock) Acquire(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if h, held := l.holds[key]; held && now.Before(h.until) {
		return "", false, nil
	}
	owner := uuid.NewString()
	l.holds[key] = hold{owner: owner, until: now.Add(ttl)}
	return owner, true, nil
}

func (l *SubmitLock) Release(_ context.Context, key, owner string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if h, held := l.holds[key]; held && h.owner == owner {
		delete(l.holds, key)
	}
	return nil
}
