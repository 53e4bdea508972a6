package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/pkg/sessionid"
)

const collectionSessions = "sessions"

// SessionStore keeps one document per session, keyed by the session digest.
type SessionStore struct {
	col *mongo.Collection
	ttl time.Duration
}

func NewSessionStore(db *mongo.Database, ttl time.Duration) *SessionStore {
	return &SessionStore{col: db.Collection(collectionSessions), ttl: ttl}
}

type mongoSession struct {
	ID         string    `bson:"_id"`
	Token      string    `bson:"authToken"`
	Role       string    `bson:"role"`
	HasProfile bool      `bson:"hasProfile"`
	UserID     string    `bson:"userId,omitempty"`
	Email      string    `bson:"email,omitempty"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func (s *SessionStore) Get(ctx context.Context, sid string) (domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoSession
	err := s.col.FindOne(ctx, bson.M{"_id": sessionid.Digest(sid)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Session{}, nil
		}
		return domain.Session{}, fmt.Errorf("find session: %w", err)
	}
	if s.ttl > 0 && time.Since(doc.UpdatedAt) > s.ttl {
		// the TTL monitor runs once a minute; don't serve what it has yet to reap
		return domain.Session{}, nil
	}
	return domain.Session{
		Token:      doc.Token,
		Role:       domain.Role(doc.Role),
		HasProfile: doc.HasProfile,
		UserID:     doc.UserID,
		Email:      doc.Email,
	}, nil
}

// Set replaces the whole document, so readers see either the old or the new
// session and never a mix.
func (s *SessionStore) Set(ctx context.Context, sid string, sess domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	digest := sessionid.Digest(sid)
	doc := mongoSession{
		ID:         digest,
		Token:      sess.Token,
		Role:       string(sess.Role),
		HasProfile: sess.HasProfile,
		UserID:     sess.UserID,
		Email:      sess.Email,
		UpdatedAt:  time.Now().UTC(),
	}
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": digest}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context, sid string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": sessionid.Digest(sid)}); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// EnsureIndexes installs the TTL index that expires idle sessions.
func (s *SessionStore) EnsureIndexes(ctx context.Context) error {
	if s.ttl <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "updated_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(s.ttl.Seconds())),
	})
	return err
}
