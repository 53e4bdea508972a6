package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
	"github.com/careerhub/jobboard-web/internal/validation"
)

// AdminService serves the moderation pages.
type AdminService struct {
	api    ports.Backend
	logger zerolog.Logger
}

func NewAdminService(api ports.Backend, logger zerolog.Logger) *AdminService {
	return &AdminService{api: api, logger: logger}
}

// Users fetches both account lists concurrently.
func (s *AdminService) Users(ctx context.Context, sess domain.Session) (*ports.AdminUsers, error) {
	out := &ports.AdminUsers{}
	sec := &sections{logger: s.logger}
	sec.Go("jobseekers", func() error {
		users, err := s.api.Jobseekers(ctx, sess.Token)
		out.Jobseekers = users
		return err
	})
	sec.Go("employers", func() error {
		users, err := s.api.Employers(ctx, sess.Token)
		out.Employers = users
		return err
	})
	failed, err := sec.Wait()
	if err != nil {
		return nil, err
	}
	out.Failed = failed
	return out, nil
}

// Ban requires a reason; it is shown to the banned user.
func (s *AdminService) Ban(ctx context.Context, sess domain.Session, userID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return &validation.Error{Violations: []validation.Violation{{
			Field:   "banReason",
			Message: "Please provide a reason for the ban.",
		}}}
	}
	if err := s.api.Ban(ctx, sess.Token, userID, reason); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Msg("user banned")
	return nil
}

func (s *AdminService) Unban(ctx context.Context, sess domain.Session, userID string) error {
	if err := s.api.Unban(ctx, sess.Token, userID); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Msg("user unbanned")
	return nil
}

func (s *AdminService) PendingJobs(ctx context.Context, sess domain.Session) ([]domain.JobPosting, error) {
	return s.api.PendingJobs(ctx, sess.Token)
}

// SetJobStatus approves or rejects a posting.
func (s *AdminService) SetJobStatus(ctx context.Context, sess domain.Session, jobID string, status domain.JobStatus) (*domain.JobPosting, error) {
	if status != domain.JobApproved && status != domain.JobRejected {
		return nil, &validation.Error{Violations: []validation.Violation{{
			Field:   "status",
			Message: fmt.Sprintf("Unknown job status %q.", status),
		}}}
	}
	job, err := s.api.SetJobStatus(ctx, sess.Token, jobID, status)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("job_id", jobID).Str("status", string(status)).Msg("job status changed")
	return job, nil
}

func (s *AdminService) JobsWithApplicants(ctx context.Context, sess domain.Session) ([]domain.JobPosting, error) {
	return s.api.JobsWithApplicants(ctx, sess.Token)
}

func (s *AdminService) JobApplications(ctx context.Context, sess domain.Session, jobID string) ([]domain.Application, error) {
	return s.api.JobApplications(ctx, sess.Token, jobID)
}

func (s *AdminService) Accept(ctx context.Context, sess domain.Session, applicationID string) error {
	return s.api.Accept(ctx, sess.Token, applicationID)
}

func (s *AdminService) Reject(ctx context.Context, sess domain.Session, applicationID string) error {
	return s.api.Reject(ctx, sess.Token, applicationID)
}

func (s *AdminService) SendResumes(ctx context.Context, sess domain.Session, jobID string) (string, error) {
	return s.api.SendResumes(ctx, sess.Token, jobID)
}

func (s *AdminService) CompanyDetails(ctx context.Context, sess domain.Session, id string) (*domain.CompanyProfile, error) {
	return s.api.CompanyDetails(ctx, sess.Token, id)
}

func (s *AdminService) JobseekerDetails(ctx context.Context, sess domain.Session, resumeID string) (*domain.Resume, error) {
	return s.api.JobseekerDetails(ctx, sess.Token, resumeID)
}
