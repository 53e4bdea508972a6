package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
	"github.com/careerhub/jobboard-web/internal/validation"
)

// interviewFetchLimit bounds the per-application interview lookups.
const interviewFetchLimit = 4

// ApplicationService serves the dashboards and the application pages of
// jobseekers and employers.
type ApplicationService struct {
	api      ports.Backend
	locks    ports.SubmitLock
	validate *validation.Validator
	lockTTL  time.Duration
	logger   zerolog.Logger
}

func NewApplicationService(api ports.Backend, locks ports.SubmitLock, validate *validation.Validator, lockTTL time.Duration, logger zerolog.Logger) *ApplicationService {
	if lockTTL <= 0 {
		lockTTL = defaultSubmitLockTTL
	}
	return &ApplicationService{api: api, locks: locks, validate: validate, lockTTL: lockTTL, logger: logger}
}

// sections runs independent fetches side by side. A failed section is
// logged and reported by name; it never fails the others. The error is set
// only when every section failed.
type sections struct {
	g      errgroup.Group
	mu     sync.Mutex
	failed []string
	errs   []error
	total  int
	logger zerolog.Logger
}

func (s *sections) Go(name string, fn func() error) {
	s.total++
	s.g.Go(func() error {
		if err := fn(); err != nil {
			s.logger.Warn().Err(err).Str("section", name).Msg("dashboard section failed")
			s.mu.Lock()
			s.failed = append(s.failed, name)
			s.errs = append(s.errs, err)
			s.mu.Unlock()
		}
		return nil
	})
}

func (s *sections) Wait() ([]string, error) {
	_ = s.g.Wait()
	if s.total > 0 && len(s.errs) == s.total {
		return s.failed, s.errs[0]
	}
	return s.failed, nil
}

func (s *ApplicationService) JobseekerDashboard(ctx context.Context, sess domain.Session) (*ports.JobseekerDashboard, error) {
	out := &ports.JobseekerDashboard{}
	sec := &sections{logger: s.logger}
	sec.Go("totals", func() error {
		totals, err := s.api.ApplicationTotals(ctx, sess.Token)
		out.Totals = totals
		return err
	})
	sec.Go("matchingJobs", func() error {
		jobs, err := s.api.MatchingJobs(ctx, sess.Token)
		out.MatchingJobs = jobs
		return err
	})
	failed, err := sec.Wait()
	if err != nil {
		return nil, err
	}
	out.Failed = failed
	return out, nil
}

func (s *ApplicationService) EmployerDashboard(ctx context.Context, sess domain.Session) (*ports.EmployerDashboard, error) {
	out := &ports.EmployerDashboard{}
	sec := &sections{logger: s.logger}
	sec.Go("totals", func() error {
		totals, err := s.api.EmployerTotals(ctx, sess.Token)
		out.Totals = totals
		return err
	})
	sec.Go("postedJobs", func() error {
		jobs, err := s.api.MyJobs(ctx, sess.Token)
		out.PostedJobs = jobs
		return err
	})
	failed, err := sec.Wait()
	if err != nil {
		return nil, err
	}
	out.Failed = failed
	return out, nil
}

func (s *ApplicationService) Job(ctx context.Context, sess domain.Session, id string) (*domain.JobPosting, error) {
	return s.api.Job(ctx, sess.Token, id)
}

// Apply submits an application. A second click while the first is still in
// flight is rejected with ErrSubmitInFlight.
func (s *ApplicationService) Apply(ctx context.Context, sid string, sess domain.Session, jobID string) (string, error) {
	if !sess.Authenticated() {
		return "", domain.ErrUnauthenticated
	}
	ref := ports.FormRef{Kind: "apply", ID: jobID}
	key := editKey(sid, ref)
	owner, acquired, err := s.locks.Acquire(ctx, key, s.lockTTL)
	if err != nil {
		return "", err
	}
	if !acquired {
		return "", domain.ErrSubmitInFlight
	}
	defer func() {
		if err := s.locks.Release(context.WithoutCancel(ctx), key, owner); err != nil {
			s.logger.Warn().Err(err).Msg("failed to release apply lock")
		}
	}()

	msg, err := s.api.Apply(ctx, sess.Token, jobID, idempotencyKey(sid, ref, nil))
	if err != nil {
		return "", err
	}
	s.logger.Info().Str("job_id", jobID).Msg("application submitted")
	return msg, nil
}

// Withdraw deletes an application and returns the refreshed list.
func (s *ApplicationService) Withdraw(ctx context.Context, sess domain.Session, jobID string) ([]domain.Application, error) {
	if err := s.api.Withdraw(ctx, sess.Token, jobID); err != nil {
		return nil, err
	}
	return s.AppliedJobs(ctx, sess)
}

func (s *ApplicationService) AppliedJobs(ctx context.Context, sess domain.Session) ([]domain.Application, error) {
	apps, err := s.api.AppliedJobs(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	return s.withInterviews(ctx, sess, apps)
}

func (s *ApplicationService) Applicants(ctx context.Context, sess domain.Session, jobID string) ([]domain.Application, error) {
	apps, err := s.api.Applicants(ctx, sess.Token, jobID)
	if err != nil {
		return nil, err
	}
	return s.withInterviews(ctx, sess, apps)
}

// withInterviews attaches each application's interview. Lookups that fail
// leave the application without one.
func (s *ApplicationService) withInterviews(ctx context.Context, sess domain.Session, apps []domain.Application) ([]domain.Application, error) {
	if apps == nil {
		return []domain.Application{}, nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(interviewFetchLimit)
	for i := range apps {
		if apps[i].ID == "" || apps[i].Interview != nil {
			continue
		}
		i := i
		g.Go(func() error {
			iv, err := s.api.Interview(gctx, sess.Token, apps[i].ID)
			if err != nil {
				s.logger.Warn().Err(err).Str("application_id", apps[i].ID).Msg("interview lookup failed")
				return nil
			}
			apps[i].Interview = iv
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *ApplicationService) PostedJobs(ctx context.Context, sess domain.Session) ([]domain.JobPosting, error) {
	jobs, err := s.api.MyJobs(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []domain.JobPosting{}
	}
	return jobs, nil
}

func (s *ApplicationService) DeleteJob(ctx context.Context, sess domain.Session, jobID string) error {
	if err := s.api.DeleteJob(ctx, sess.Token, jobID); err != nil {
		return err
	}
	s.logger.Info().Str("job_id", jobID).Msg("job deleted")
	return nil
}

// ScheduleInterview sets the interview of an application. The date must
// lie in the future.
func (s *ApplicationService) ScheduleInterview(ctx context.Context, sess domain.Session, applicationID string, iv domain.Interview) error {
	if err := s.validate.InterviewDate(iv.Date); err != nil {
		return err
	}
	return s.api.ScheduleInterview(ctx, sess.Token, applicationID, iv)
}

func (s *ApplicationService) Companies(ctx context.Context, sess domain.Session) ([]domain.CompanyProfile, error) {
	companies, err := s.api.Companies(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	if companies == nil {
		companies = []domain.CompanyProfile{}
	}
	return companies, nil
}

func (s *ApplicationService) MyCompany(ctx context.Context, sess domain.Session) (*domain.CompanyProfile, error) {
	return s.api.MyCompany(ctx, sess.Token)
}

func (s *ApplicationService) MyResume(ctx context.Context, sess domain.Session) (*domain.Resume, error) {
	return s.api.MyResume(ctx, sess.Token)
}
