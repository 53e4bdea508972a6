package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionLocks = "submit_locks"

// SubmitLock holds in-flight submissions as documents with a unique _id and
// the owner token of the submission holding it.
type SubmitLock struct {
	col *mongo.Collection
}

func NewSubmitLock(db *mongo.Database) *SubmitLock {
	return &SubmitLock{col: db.Collection(collectionLocks)}
}

func (l *SubmitLock) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	// a hold past its expiry is dead; clear it before racing for the key
	if _, err := l.col.DeleteOne(ctx, bson.M{"_id": key, "expires_at": bson.M{"$lte": now}}); err != nil {
		return "", false, fmt.Errorf("expire lock: %w", err)
	}
	owner := uuid.NewString()
	_, err := l.col.InsertOne(ctx, bson.M{"_id": key, "owner": owner, "expires_at": now.Add(ttl)})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("acquire lock: %w", err)
	}
	return owner, true, nil
}

func (l *SubmitLock) Release(ctx context.Context, key, owner string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := l.col.DeleteOne(ctx, bson.M{"_id": key, "owner": owner}); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
