package memory

import (
	"context"
	"sync"
	"time"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/formstate"
	"github.com/careerhub/jobboard-web/internal/pkg/sessionid"
)

type draft struct {
	tree    formstate.Tree
	expires time.Time
}

// DraftStore keeps form working copies until they expire.
type DraftStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	drafts map[string]draft
}

// NewDraftStore returns a store whose drafts live for ttl after their last
// save. A zero ttl keeps drafts until discarded.
func NewDraftStore(ttl time.Duration) *DraftStore {
	return &DraftStore{ttl: ttl, now: time.Now, drafts: make(map[string]draft)}
}

func draftKey(sid, form string) string {
	return sessionid.Digest(sid) + "/" + form
}

func (s *DraftStore) Load(_ context.Context, sid, form string) (formstate.Tree, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := draftKey(sid, form)
	d, ok := s.drafts[key]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	if !d.expires.IsZero() && s.now().After(d.expires) {
		delete(s.drafts, key)
		return nil, domain.ErrDraftNotFound
	}
	return formstate.Clone(d.tree), nil
}

func (s *DraftStore) Save(_ context.Context, sid, form string, t formstate.Tree) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := draft{tree: formstate.Clone(t)}
	if s.ttl > 0 {
		d.expires = s.now().Add(s.ttl)
	}
	s.drafts[draftKey(sid, form)] = d
	return nil
}

func (s *DraftStore) Discard(_ context.Context, sid, form string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, draftKey(sid, form))
	return nil
}
