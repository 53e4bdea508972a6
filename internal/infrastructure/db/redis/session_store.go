package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/pkg/sessionid"
)

// SessionStore keeps each session as a hash.
// Key format: session:<digest>
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Get(ctx context.Context, sid string) (domain.Session, error) {
	fields, err := s.client.HGetAll(ctx, s.key(sid)).Result()
	if err != nil {
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}
	hasProfile, _ := strconv.ParseBool(fields[domain.KeyHasProfile])
	return domain.Session{
		Token:      fields[domain.KeyAuthToken],
		Role:       domain.Role(fields[domain.KeyRole]),
		HasProfile: hasProfile,
		UserID:     fields[domain.KeyUserID],
		Email:      fields[domain.KeyEmail],
	}, nil
}

// Set rewrites the hash inside MULTI/EXEC so a reader never sees a token
// without its role.
func (s *SessionStore) Set(ctx context.Context, sid string, sess domain.Session) error {
	key := s.key(sid)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			domain.KeyAuthToken, sess.Token,
			domain.KeyRole, string(sess.Role),
			domain.KeyHasProfile, strconv.FormatBool(sess.HasProfile),
			domain.KeyUserID, sess.UserID,
			domain.KeyEmail, sess.Email,
		)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sid string) string {
	return "session:" + sessionid.Digest(sid)
}
