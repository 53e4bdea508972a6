package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/blake2b"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
	"github.com/careerhub/jobboard-web/internal/formstate"
	"github.com/careerhub/jobboard-web/internal/pkg/sessionid"
	"github.com/careerhub/jobboard-web/internal/validation"
)

const defaultSubmitLockTTL = 30 * time.Second

// recordForm binds a form kind to its shape and post-save navigation.
type recordForm struct {
	shape    *formstate.Shape
	schema   string
	redirect string
	// profile marks the forms whose first save completes the actor's profile.
	profile bool
	// single forms edit the actor's own record and carry no ID.
	single bool
}

var recordForms = map[string]recordForm{
	ports.FormResume: {
		shape:    formstate.ResumeShape,
		schema:   validation.KindResume,
		redirect: "/dashboard/myprofile",
		profile:  true,
		single:   true,
	},
	ports.FormCompany: {
		shape:    formstate.CompanyProfileShape,
		schema:   validation.KindCompany,
		redirect: "/employer-dashboard/company-profile",
		profile:  true,
		single:   true,
	},
	ports.FormJob: {
		shape:    formstate.JobPostingShape,
		schema:   validation.KindJob,
		redirect: "/employer-dashboard/posted-application",
	},
	ports.FormBlog: {
		shape:    formstate.BlogShape,
		schema:   validation.KindBlog,
		redirect: "/admin/all-blog",
	},
}

func lookupForm(ref ports.FormRef) (recordForm, ports.FormRef, error) {
	f, ok := recordForms[ref.Kind]
	if !ok {
		return recordForm{}, ref, fmt.Errorf("%w: %q", domain.ErrUnknownForm, ref.Kind)
	}
	if f.single {
		ref.ID = ""
	}
	return f, ref, nil
}

// RecordService edits resumes, company profiles, job postings and blog
// posts through a stored working copy, and submits them as one write.
type RecordService struct {
	api      ports.RecordAPI
	sessions ports.SessionStore
	drafts   ports.DraftStore
	locks    ports.SubmitLock
	validate *validation.Validator
	lockTTL  time.Duration
	logger   zerolog.Logger

	edits keyedMutex
}

func NewRecordService(
	api ports.RecordAPI,
	sessions ports.SessionStore,
	drafts ports.DraftStore,
	locks ports.SubmitLock,
	validate *validation.Validator,
	lockTTL time.Duration,
	logger zerolog.Logger,
) *RecordService {
	if lockTTL <= 0 {
		lockTTL = defaultSubmitLockTTL
	}
	return &RecordService{
		api:      api,
		sessions: sessions,
		drafts:   drafts,
		locks:    locks,
		validate: validate,
		lockTTL:  lockTTL,
		logger:   logger,
	}
}

func editKey(sid string, ref ports.FormRef) string {
	return sessionid.Digest(sid) + "/" + ref.Key()
}

// Open starts a fresh working copy from the stored record, replacing any
// earlier draft of the same form.
func (s *RecordService) Open(ctx context.Context, sid string, sess domain.Session, ref ports.FormRef) (formstate.Tree, error) {
	f, ref, err := lookupForm(ref)
	if err != nil {
		return nil, err
	}
	ed, err := s.fetch(ctx, f, sess, ref)
	if err != nil {
		return nil, err
	}

	unlock := s.edits.Lock(editKey(sid, ref))
	defer unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tree := ed.Snapshot()
	if err := s.drafts.Save(ctx, sid, ref.Key(), tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// fetch loads the record behind a form into a new editor. A missing record
// yields the shape's defaults.
func (s *RecordService) fetch(ctx context.Context, f recordForm, sess domain.Session, ref ports.FormRef) (*formstate.Editor, error) {
	ed := formstate.NewEditor(f.shape)
	var (
		record any
		err    error
	)
	switch ref.Kind {
	case ports.FormResume:
		if sess.HasProfile {
			record, err = s.api.MyResume(ctx, sess.Token)
		}
	case ports.FormCompany:
		if sess.HasProfile {
			record, err = s.api.MyCompany(ctx, sess.Token)
		}
	case ports.FormJob:
		if ref.ID != "" {
			record, err = s.api.Job(ctx, sess.Token, ref.ID)
		}
	case ports.FormBlog:
		if ref.ID != "" {
			record, err = s.api.Blog(ctx, ref.ID)
		}
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return ed, nil
	case err != nil:
		return nil, err
	case record == nil:
		return ed, nil
	}
	if err := ed.Hydrate(record); err != nil {
		return nil, err
	}
	return ed, nil
}

// Draft returns the current working copy.
func (s *RecordService) Draft(ctx context.Context, sid string, ref ports.FormRef) (formstate.Tree, error) {
	f, ref, err := lookupForm(ref)
	if err != nil {
		return nil, err
	}
	tree, err := s.drafts.Load(ctx, sid, ref.Key())
	if err != nil {
		return nil, err
	}
	return formstate.Restore(f.shape, tree).Snapshot(), nil
}

// Edit applies one op to the working copy. Edits to the same form are
// applied one at a time in arrival order. Editing a form that was never
// opened starts from its defaults.
func (s *RecordService) Edit(ctx context.Context, sid string, ref ports.FormRef, op formstate.Op) (formstate.Tree, error) {
	f, ref, err := lookupForm(ref)
	if err != nil {
		return nil, err
	}

	unlock := s.edits.Lock(editKey(sid, ref))
	defer unlock()

	ed := formstate.NewEditor(f.shape)
	tree, err := s.drafts.Load(ctx, sid, ref.Key())
	switch {
	case errors.Is(err, domain.ErrDraftNotFound):
	case err != nil:
		return nil, err
	default:
		ed = formstate.Restore(f.shape, tree)
	}

	if err := ed.Apply(op); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := ed.Snapshot()
	if err := s.drafts.Save(ctx, sid, ref.Key(), out); err != nil {
		return nil, err
	}
	return out, nil
}

// Submit validates the working copy and writes the whole record. On any
// failure the draft is kept so the page can be corrected and resubmitted.
func (s *RecordService) Submit(ctx context.Context, sid string, sess domain.Session, ref ports.FormRef) (*ports.SubmitResult, error) {
	f, ref, err := lookupForm(ref)
	if err != nil {
		return nil, err
	}
	if !sess.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	lockKey := editKey(sid, ref)
	unlock := s.edits.Lock(lockKey)
	tree, err := s.drafts.Load(ctx, sid, ref.Key())
	unlock()
	if err != nil {
		return nil, err
	}
	ed := formstate.Restore(f.shape, tree)
	submitted := ed.Snapshot()
	if err := s.validate.Shape(f.schema, submitted); err != nil {
		return nil, err
	}

	owner, acquired, err := s.locks.Acquire(ctx, lockKey, s.lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, domain.ErrSubmitInFlight
	}
	defer func() {
		if err := s.locks.Release(context.WithoutCancel(ctx), lockKey, owner); err != nil {
			s.logger.Warn().Err(err).Str("form", ref.Kind).Msg("failed to release submit lock")
		}
	}()

	idemKey := idempotencyKey(sid, ref, submitted)
	message, err := s.save(ctx, ed, sess, ref, idemKey)
	if err != nil {
		var ve *validation.Error
		if !errors.As(err, &ve) {
			s.logger.Warn().Err(err).Str("form", ref.Kind).Msg("record save failed")
		}
		return nil, err
	}

	// The page is gone: leave drafts and session as they are.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if f.profile && !sess.HasProfile {
		sess.HasProfile = true
		if err := s.sessions.Set(ctx, sid, sess); err != nil {
			s.logger.Error().Err(err).Str("form", ref.Kind).Msg("failed to mark profile complete")
		}
	}

	s.discardSaved(ctx, sid, f, ref, idemKey)

	s.logger.Info().Str("form", ref.Kind).Bool("update", ref.ID != "").Msg("record saved")
	return &ports.SubmitResult{Redirect: f.redirect, Message: message}, nil
}

// discardSaved drops the draft only if it still holds what was written.
// Edits accepted while the save was in flight stay in the working copy.
func (s *RecordService) discardSaved(ctx context.Context, sid string, f recordForm, ref ports.FormRef, savedKey string) {
	unlock := s.edits.Lock(editKey(sid, ref))
	defer unlock()

	current, err := s.drafts.Load(ctx, sid, ref.Key())
	switch {
	case errors.Is(err, domain.ErrDraftNotFound):
		return
	case err != nil:
		s.logger.Warn().Err(err).Str("form", ref.Kind).Msg("failed to reload draft after save")
		return
	}
	if idempotencyKey(sid, ref, formstate.Restore(f.shape, current).Snapshot()) != savedKey {
		s.logger.Info().Str("form", ref.Kind).Msg("draft changed during save, keeping it")
		return
	}
	if err := s.drafts.Discard(ctx, sid, ref.Key()); err != nil {
		s.logger.Warn().Err(err).Str("form", ref.Kind).Msg("failed to discard draft")
	}
}

// save runs the record checks and the single upstream write. It returns
// the confirmation shown to the user.
func (s *RecordService) save(ctx context.Context, ed *formstate.Editor, sess domain.Session, ref ports.FormRef, idemKey string) (string, error) {
	switch ref.Kind {
	case ports.FormResume:
		var r domain.Resume
		if err := ed.Decode(&r); err != nil {
			return "", err
		}
		if err := s.validate.Resume(r); err != nil {
			return "", err
		}
		if sess.HasProfile {
			return "Profile updated successfully", s.api.UpdateResume(ctx, sess.Token, &r)
		}
		return "Profile created successfully", s.api.CreateResume(ctx, sess.Token, &r, idemKey)

	case ports.FormCompany:
		var p domain.CompanyProfile
		if err := ed.Decode(&p); err != nil {
			return "", err
		}
		if err := s.validate.Company(p); err != nil {
			return "", err
		}
		return "Profile Updated Successfully", s.api.SaveCompany(ctx, sess.Token, &p, idemKey)

	case ports.FormJob:
		var j domain.JobPosting
		if err := ed.Decode(&j); err != nil {
			return "", err
		}
		if err := s.validate.Job(j); err != nil {
			return "", err
		}
		if ref.ID != "" {
			return "Job updated successfully!", s.api.UpdateJob(ctx, sess.Token, ref.ID, &j)
		}
		return "Job posted successfully!", s.api.CreateJob(ctx, sess.Token, &j, idemKey)

	case ports.FormBlog:
		var b domain.Blog
		if err := ed.Decode(&b); err != nil {
			return "", err
		}
		if err := s.validate.Blog(b); err != nil {
			return "", err
		}
		if ref.ID != "" {
			return "Blog updated successfully!", s.api.UpdateBlog(ctx, sess.Token, ref.ID, &b)
		}
		return "Blog posted successfully!", s.api.CreateBlog(ctx, sess.Token, &b, idemKey)
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownForm, ref.Kind)
}

// idempotencyKey is stable for one draft state of one form in one session,
// so a repeated submit of the same content reuses it.
func idempotencyKey(sid string, ref ports.FormRef, tree formstate.Tree) string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(sid))
	h.Write([]byte{0})
	h.Write([]byte(ref.Key()))
	h.Write([]byte{0})
	raw, _ := json.Marshal(tree)
	h.Write(raw)
	return hex.EncodeToString(h.Sum(nil))
}
