package ports

import (
	"context"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/formstate"
)

// Form kinds edited through the record service.
const (
	FormResume  = "resume"
	FormCompany = "company"
	FormJob     = "job"
	FormBlog    = "blog"
)

// FormRef names one form: a record kind plus, for jobs and blogs being
// updated, the record ID. An empty ID on a job or blog means "create".
type FormRef struct {
	Kind string
	ID   string
}

// Key is the draft key of the form within a session.
func (f FormRef) Key() string {
	if f.ID == "" {
		return f.Kind
	}
	return f.Kind + ":" + f.ID
}

// SubmitResult is what a page needs after a successful save. The redirect
// target loads the saved record again.
type SubmitResult struct {
	Redirect string
	Message  string
}

// RecordService edits records through a server-side working copy.
type RecordService interface {
	Open(ctx context.Context, sid string, sess domain.Session, form FormRef) (formstate.Tree, error)
	Draft(ctx context.Context, sid string, form FormRef) (formstate.Tree, error)
	Edit(ctx context.Context, sid string, form FormRef, op formstate.Op) (formstate.Tree, error)
	Submit(ctx context.Context, sid string, sess domain.Session, form FormRef) (*SubmitResult, error)
}
