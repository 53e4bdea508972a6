package ports

import (
	"context"
	"time"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/formstate"
)

// SessionStore persists the per-browser session. Keys are session IDs as
// issued in the cookie; implementations decide how they are stored.
type SessionStore interface {
	// Get returns the zero Session when nothing is stored under sid.
	Get(ctx context.Context, sid string) (domain.Session, error)
	// Set replaces every field of the session in one write.
	Set(ctx context.Context, sid string, s domain.Session) error
	// Clear removes the session. Clearing a missing session is not an error.
	Clear(ctx context.Context, sid string) error
}

// DraftStore holds unsaved form working copies, one per (sid, form).
type DraftStore interface {
	// Load returns domain.ErrDraftNotFound when there is no draft.
	Load(ctx context.Context, sid, form string) (formstate.Tree, error)
	Save(ctx context.Context, sid, form string, t formstate.Tree) error
	Discard(ctx context.Context, sid, form string) error
}

// SubmitLock marks a submission as in flight. Acquire reports false when the
// key is already held; the hold expires after ttl. Release only drops a hold
// still owned by the token Acquire returned.
type SubmitLock interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (owner string, ok bool, err error)
	Release(ctx context.Context, key, owner string) error
}

// Pinger is implemented by stores that can report readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}
