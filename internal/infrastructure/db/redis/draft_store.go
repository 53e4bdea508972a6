package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/formstate"
	"github.com/careerhub/jobboard-web/internal/pkg/sessionid"
)

// DraftStore keeps form working copies as JSON strings.
// Key format: draft:<digest>:<form>
type DraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{client: client, ttl: ttl}
}

func (s *DraftStore) Load(ctx context.Context, sid, form string) (formstate.Tree, error) {
	raw, err := s.client.Get(ctx, s.key(sid, form)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, fmt.Errorf("load draft: %w", err)
	}
	var t formstate.Tree
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return t, nil
}

func (s *DraftStore) Save(ctx context.Context, sid, form string, t formstate.Tree) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sid, form), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *DraftStore) Discard(ctx context.Context, sid, form string) error {
	if err := s.client.Del(ctx, s.key(sid, form)).Err(); err != nil {
		return fmt.Errorf("discard draft: %w", err)
	}
	return nil
}

func (s *DraftStore) key(sid, form string) string {
	return fmt.Sprintf("draft:%s:%s", sessionid.Digest(sid), form)
}
