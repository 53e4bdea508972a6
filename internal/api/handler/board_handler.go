package handler

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
)

// Routes the board handler redirects to.
const (
	appliedJobsRoute = "/dashboard/appliedjob"
	postedJobsRoute  = "/employer-dashboard/posted-application"
)

// BoardHandler serves the jobseeker and employer dashboards, applications
// and interviews.
type BoardHandler struct {
	apps ports.ApplicationService
}

func NewBoardHandler(apps ports.ApplicationService) *BoardHandler {
	return &BoardHandler{apps: apps}
}

type interviewRequest struct {
	Date string `json:"date" form:"date" validate:"required"`
	Time string `json:"time" form:"time" validate:"required"`
}

// partial warns about dashboard sections that could not be loaded.
func partial(failed []string) []Notification {
	if len(failed) == 0 {
		return nil
	}
	return []Notification{info("Some sections could not be loaded: " + strings.Join(failed, ", "))}
}

// JobseekerDashboard renders application totals and matching jobs.
//
// @Summary      Jobseeker dashboard
// @Tags         jobseeker
// @Produce      json
// @Success      200  {object}  Page
// @Failure      502  {object}  ErrorResponse
// @Router       /dashboard [get]
func (h *BoardHandler) JobseekerDashboard(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	dash, err := h.apps.JobseekerDashboard(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return render(c, "dashboard", dash, partial(dash.Failed)...)
}

// EmployerDashboard renders job totals and posted jobs.
//
// @Summary      Employer dashboard
// @Tags         employer
// @Produce      json
// @Success      200  {object}  Page
// @Failure      502  {object}  ErrorResponse
// @Router       /employer-dashboard [get]
func (h *BoardHandler) EmployerDashboard(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	dash, err := h.apps.EmployerDashboard(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return render(c, "employer-dashboard", dash, partial(dash.Failed)...)
}

// Job renders one posting.
//
// @Summary      Job posting
// @Tags         jobseeker
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  Page
// @Failure      404  {object}  ErrorResponse
// @Router       /dashboard/job/{id} [get]
// @Router       /employer-dashboard/job/{id} [get]
func (h *BoardHandler) Job(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	job, err := h.apps.Job(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	return render(c, "job", job)
}

// Apply submits an application for the posting.
//
// @Summary      Apply to a job
// @Tags         jobseeker
// @Param        id   path  string  true  "Job ID"
// @Success      303
// @Failure      409  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /dashboard/job/{id}/apply [post]
func (h *BoardHandler) Apply(c echo.Context) error {
	sid, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	msg, err := h.apps.Apply(c.Request().Context(), sid, sess, c.Param("id"))
	if err != nil {
		return err
	}
	n := success(orDefault(msg, "Applied successfully"))
	return seeOther(c, appliedJobsRoute, &n)
}

// AppliedJobs lists the jobseeker's applications with their interviews.
//
// @Summary      Applied jobs
// @Tags         jobseeker
// @Produce      json
// @Success      200  {object}  Page
// @Router       /dashboard/appliedjob [get]
func (h *BoardHandler) AppliedJobs(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	apps, err := h.apps.AppliedJobs(c.Request().Context(), sess)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return renderEmpty(c, "applied-jobs", []domain.Application{}, "You have not applied to any jobs yet")
		}
		return err
	}
	if len(apps) == 0 {
		return renderEmpty(c, "applied-jobs", apps, "You have not applied to any jobs yet")
	}
	return render(c, "applied-jobs", apps)
}

// Withdraw deletes an application and renders the refreshed list.
//
// @Summary      Withdraw an application
// @Tags         jobseeker
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  Page
// @Router       /dashboard/appliedjob/{id}/withdraw [post]
func (h *BoardHandler) Withdraw(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	apps, err := h.apps.Withdraw(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	return render(c, "applied-jobs", apps, success("Application withdrawn"))
}

// Companies lists every company profile.
//
// @Summary      Browse companies
// @Tags         jobseeker
// @Produce      json
// @Success      200  {object}  Page
// @Router       /dashboard/companies [get]
func (h *BoardHandler) Companies(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	companies, err := h.apps.Companies(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	if len(companies) == 0 {
		return renderEmpty(c, "companies", companies, "No companies found")
	}
	return render(c, "companies", companies)
}

// MyResume renders the jobseeker's saved profile.
//
// @Summary      My profile
// @Tags         jobseeker
// @Produce      json
// @Success      200  {object}  Page
// @Router       /dashboard/myprofile [get]
func (h *BoardHandler) MyResume(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	resume, err := h.apps.MyResume(c.Request().Context(), sess)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return renderEmpty(c, "my-profile", nil, "You have not created a profile yet")
		}
		return err
	}
	return render(c, "my-profile", resume)
}

// MyCompany renders the employer's company profile.
//
// @Summary      Company profile
// @Tags         employer
// @Produce      json
// @Success      200  {object}  Page
// @Router       /employer-dashboard/company-profile [get]
func (h *BoardHandler) MyCompany(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	company, err := h.apps.MyCompany(c.Request().Context(), sess)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return renderEmpty(c, "company-profile", nil, "You have not created a company profile yet")
		}
		return err
	}
	return render(c, "company-profile", company)
}

// PostedJobs lists the employer's postings.
//
// @Summary      Posted jobs
// @Tags         employer
// @Produce      json
// @Success      200  {object}  Page
// @Router       /employer-dashboard/posted-application [get]
func (h *BoardHandler) PostedJobs(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	jobs, err := h.apps.PostedJobs(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return renderEmpty(c, "posted-jobs", jobs, "No jobs posted yet")
	}
	return render(c, "posted-jobs", jobs)
}

// DeleteJob removes a posting.
//
// @Summary      Delete a job posting
// @Tags         employer
// @Param        id   path  string  true  "Job ID"
// @Success      303
// @Router       /employer-dashboard/posted-application/{id}/delete [post]
func (h *BoardHandler) DeleteJob(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.apps.DeleteJob(c.Request().Context(), sess, c.Param("id")); err != nil {
		return err
	}
	n := success("Job deleted successfully")
	return seeOther(c, postedJobsRoute, &n)
}

// Applicants lists the applications for one of the employer's postings.
//
// @Summary      Applicants of a job
// @Tags         employer
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200    {object}  Page
// @Router       /employer-dashboard/applicants/{jobId} [get]
func (h *BoardHandler) Applicants(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	apps, err := h.apps.Applicants(c.Request().Context(), sess, c.Param("jobId"))
	if err != nil {
		return err
	}
	if len(apps) == 0 {
		return renderEmpty(c, "applicants", apps, "No applicants yet")
	}
	return render(c, "applicants", apps)
}

// ScheduleInterview sets the interview date and time of an application.
//
// @Summary      Schedule an interview
// @Tags         employer
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Application ID"
// @Param        body  body      interviewRequest  true  "Date (YYYY-MM-DD) and time"
// @Success      200   {object}  Page
// @Failure      422   {object}  ErrorResponse
// @Router       /employer-dashboard/applications/{id}/interview [post]
func (h *BoardHandler) ScheduleInterview(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req interviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	iv := domain.Interview{Date: req.Date, Time: req.Time}
	if err := h.apps.ScheduleInterview(c.Request().Context(), sess, c.Param("id"), iv); err != nil {
		countViolations("interview", err)
		return err
	}
	return render(c, "interview", iv, success("Interview scheduled"))
}
