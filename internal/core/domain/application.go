package domain

// ApplicationStatus is the backend-owned state of an application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Interview is the schedule attached to an application. Field names follow
// the backend payload.
type Interview struct {
	Date string `json:"Date"`
	Time string `json:"Time"`
}

// Scheduled reports whether an interview date has been set.
func (i Interview) Scheduled() bool {
	return i.Date != ""
}

// Application links a jobseeker resume to a job posting.
type Application struct {
	ID        string            `json:"_id"`
	JobID     string            `json:"jobId,omitempty"`
	ResumeID  string            `json:"resumeId,omitempty"`
	Status    ApplicationStatus `json:"status,omitempty"`
	Job       *JobPosting       `json:"job,omitempty"`
	Resume    *Resume           `json:"resume,omitempty"`
	Interview *Interview        `json:"interview,omitempty"`
}

// ApplicationTotals feeds the jobseeker dashboard counters.
type ApplicationTotals struct {
	TotalAppliedJobs int `json:"totalAppliedJobs"`
	AcceptedJobs     int `json:"acceptedJobs"`
	RejectedJobs     int `json:"rejectedJobs"`
}

// EmployerTotals feeds the employer dashboard counters.
type EmployerTotals struct {
	TotalJobsPosted   int `json:"totalJobsPosted"`
	TotalAcceptedJobs int `json:"totalAcceptedJobs"`
	TotalRejectedJobs int `json:"totalRejectedJobs"`
}

// UserSummary is an account row in the admin user list.
type UserSummary struct {
	ID        string `json:"_id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	IsBanned  bool   `json:"isBanned"`
	BanReason string `json:"banReason,omitempty"`
}

// LoginResult is what the backend returns on a successful login.
type LoginResult struct {
	Token      string `json:"token"`
	Role       string `json:"role"`
	HasProfile bool   `json:"profile"`
	UserID     string `json:"userId,omitempty"`
}
