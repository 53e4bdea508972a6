package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
)

const adminUsersRoute = "/admin/users"

// AdminHandler serves the moderation pages.
type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

type banRequest struct {
	BanReason string `json:"banReason" form:"banReason"`
}

type jobStatusRequest struct {
	Status string `json:"status" form:"status" validate:"required"`
}

// Users lists jobseekers and employers side by side.
//
// @Summary      All users
// @Tags         admin
// @Produce      json
// @Success      200  {object}  Page
// @Failure      502  {object}  ErrorResponse
// @Router       /admin [get]
// @Router       /admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	users, err := h.admin.Users(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return render(c, "users", users, partial(users.Failed)...)
}

// Ban bans an account with a reason.
//
// @Summary      Ban a user
// @Tags         admin
// @Accept       json
// @Param        id    path  string      true  "User ID"
// @Param        body  body  banRequest  true  "Reason shown to the user"
// @Success      303
// @Failure      422   {object}  ErrorResponse
// @Router       /admin/users/{id}/ban [post]
func (h *AdminHandler) Ban(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req banRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.admin.Ban(c.Request().Context(), sess, c.Param("id"), req.BanReason); err != nil {
		countViolations("ban", err)
		return err
	}
	n := success("User Banned Successfully")
	return seeOther(c, adminUsersRoute, &n)
}

// Unban lifts a ban.
//
// @Summary      Unban a user
// @Tags         admin
// @Param        id   path  string  true  "User ID"
// @Success      303
// @Router       /admin/users/{id}/unban [post]
func (h *AdminHandler) Unban(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.admin.Unban(c.Request().Context(), sess, c.Param("id")); err != nil {
		return err
	}
	n := success("User Unbanned Successfully")
	return seeOther(c, adminUsersRoute, &n)
}

// PendingJobs lists postings waiting for approval.
//
// @Summary      Jobs awaiting approval
// @Tags         admin
// @Produce      json
// @Success      200  {object}  Page
// @Router       /admin/approve-job [get]
func (h *AdminHandler) PendingJobs(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	jobs, err := h.admin.PendingJobs(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return renderEmpty(c, "approve-job", jobs, "No jobs found")
	}
	return render(c, "approve-job", jobs)
}

// SetJobStatus approves or rejects a posting.
//
// @Summary      Approve or reject a job
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Job ID"
// @Param        body  body      jobStatusRequest  true  "approved or rejected"
// @Success      200   {object}  Page
// @Failure      422   {object}  ErrorResponse
// @Router       /admin/approve-job/{id} [post]
func (h *AdminHandler) SetJobStatus(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req jobStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	job, err := h.admin.SetJobStatus(c.Request().Context(), sess, c.Param("id"), domain.JobStatus(req.Status))
	if err != nil {
		countViolations("job-status", err)
		return err
	}
	return render(c, "job", job, success("Job "+string(job.Status)))
}

// JobsWithApplicants summarises postings that received applications.
//
// @Summary      Jobs with applicants
// @Tags         admin
// @Produce      json
// @Success      200  {object}  Page
// @Router       /admin/job-applicant [get]
func (h *AdminHandler) JobsWithApplicants(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	jobs, err := h.admin.JobsWithApplicants(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return renderEmpty(c, "job-applicant", jobs, "No applicants yet")
	}
	return render(c, "job-applicant", jobs)
}

// JobApplications lists the applications of one posting.
//
// @Summary      Applications of a job
// @Tags         admin
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200    {object}  Page
// @Router       /admin/job-applicant/{jobId} [get]
func (h *AdminHandler) JobApplications(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	apps, err := h.admin.JobApplications(c.Request().Context(), sess, c.Param("jobId"))
	if err != nil {
		return err
	}
	if len(apps) == 0 {
		return renderEmpty(c, "applicant-details", apps, "No applicants yet")
	}
	return render(c, "applicant-details", apps)
}

// Accept marks an application accepted.
//
// @Summary      Accept an application
// @Tags         admin
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  Page
// @Router       /admin/applications/{id}/accept [post]
func (h *AdminHandler) Accept(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.admin.Accept(c.Request().Context(), sess, c.Param("id")); err != nil {
		return err
	}
	return render(c, "application", nil, success("Application accepted"))
}

// Reject marks an application rejected.
//
// @Summary      Reject an application
// @Tags         admin
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  Page
// @Router       /admin/applications/{id}/reject [post]
func (h *AdminHandler) Reject(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.admin.Reject(c.Request().Context(), sess, c.Param("id")); err != nil {
		return err
	}
	return render(c, "application", nil, success("Application rejected"))
}

// SendResumes forwards the accepted resumes of a posting to its employer.
//
// @Summary      Send resumes to the employer
// @Tags         admin
// @Param        jobId  path      string  true  "Job ID"
// @Success      200    {object}  Page
// @Router       /admin/job-applicant/{jobId}/send-resumes [post]
func (h *AdminHandler) SendResumes(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	msg, err := h.admin.SendResumes(c.Request().Context(), sess, c.Param("jobId"))
	if err != nil {
		return err
	}
	return render(c, "applicant-details", nil, success(orDefault(msg, "Resumes sent")))
}

// CompanyDetails renders a company for moderation.
//
// @Summary      Company details
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Company ID"
// @Success      200  {object}  Page
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/company/{id} [get]
func (h *AdminHandler) CompanyDetails(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	company, err := h.admin.CompanyDetails(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	return render(c, "company", company)
}

// JobseekerDetails renders a jobseeker resume for moderation.
//
// @Summary      Jobseeker details
// @Tags         admin
// @Produce      json
// @Param        resumeId  path      string  true  "Resume ID"
// @Success      200       {object}  Page
// @Failure      404       {object}  ErrorResponse
// @Router       /admin/jobseeker/{resumeId} [get]
func (h *AdminHandler) JobseekerDetails(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	resume, err := h.admin.JobseekerDetails(c.Request().Context(), sess, c.Param("resumeId"))
	if err != nil {
		return err
	}
	return render(c, "jobseeker", resume)
}
