package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/formstate"
	"github.com/careerhub/jobboard-web/internal/pkg/sessionid"
)

const collectionDrafts = "drafts"

// DraftStore keeps form working copies. The tree is stored as JSON text so
// it round-trips as plain maps and slices.
type DraftStore struct {
	col *mongo.Collection
	ttl time.Duration
}

func NewDraftStore(db *mongo.Database, ttl time.Duration) *DraftStore {
	return &DraftStore{col: db.Collection(collectionDrafts), ttl: ttl}
}

type mongoDraft struct {
	ID        string    `bson:"_id"`
	Form      string    `bson:"form"`
	Payload   string    `bson:"payload"`
	ExpiresAt time.Time `bson:"expires_at"`
}

func draftID(sid, form string) string {
	return sessionid.Digest(sid) + "/" + form
}

func (s *DraftStore) Load(ctx context.Context, sid, form string) (formstate.Tree, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoDraft
	err := s.col.FindOne(ctx, bson.M{"_id": draftID(sid, form)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, fmt.Errorf("find draft: %w", err)
	}
	if !doc.ExpiresAt.IsZero() && time.Now().After(doc.ExpiresAt) {
		return nil, domain.ErrDraftNotFound
	}
	var t formstate.Tree
	if err := json.Unmarshal([]byte(doc.Payload), &t); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return t, nil
}

func (s *DraftStore) Save(ctx context.Context, sid, form string, t formstate.Tree) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	raw, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	doc := mongoDraft{ID: draftID(sid, form), Form: form, Payload: string(raw)}
	if s.ttl > 0 {
		doc.ExpiresAt = time.Now().Add(s.ttl).UTC()
	}
	_, err = s.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *DraftStore) Discard(ctx context.Context, sid, form string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": draftID(sid, form)}); err != nil {
		return fmt.Errorf("discard draft: %w", err)
	}
	return nil
}

// EnsureIndexes creates the expiry index on the drafts collection.
func (s *DraftStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}
