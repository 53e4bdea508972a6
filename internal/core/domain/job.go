package domain

// JobStatus is the moderation state of a posting, owned by the backend.
type JobStatus string

const (
	JobPending  JobStatus = "pending"
	JobApproved JobStatus = "approved"
	JobRejected JobStatus = "rejected"
)

// JobPosting is the employer-authored vacancy.
type JobPosting struct {
	ID                      string      `json:"_id,omitempty"`
	Title                   string      `json:"title"       validate:"required"`
	Description             string      `json:"description" validate:"required"`
	Location                string      `json:"location"    validate:"required"`
	Salary                  string      `json:"salary"`
	Skills                  []string    `json:"skills"`
	QualificationHighest    []string    `json:"qualificationHighest"`
	ExperienceYears         float64     `json:"experienceYears" validate:"gte=0"`
	RequireEmployee         float64     `json:"requireEmployee" validate:"gte=1"`
	JobType                 string      `json:"jobType"`
	Deadline                string      `json:"deadline"`
	AboutJob                string      `json:"aboutJob"`
	Responsibilities        []string    `json:"responsibilities"`
	PreferredQualifications []string    `json:"preferredQualifications"`
	AdditionalInformation   []string    `json:"additionalInformation"`
	HowToApply              string      `json:"howToApply"`
	Note                    string      `json:"note"`
	Status                  JobStatus   `json:"status,omitempty"`
	CompanyName             string      `json:"companyName,omitempty"`
	Company                 *CompanyRef `json:"company,omitempty"`
	DatePosted              string      `json:"datePosted,omitempty"`
}

// CompanyRef is the company summary embedded in admin job listings.
type CompanyRef struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
}

// SearchFilters is the set of values the backend offers for each filter.
type SearchFilters struct {
	Locations []string `json:"locations"`
	Skills    []string `json:"skills"`
	JobTypes  []string `json:"jobTypes"`
}

// Pagination is the page cursor returned with a search page.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// SearchResult is one page of the public vacancy search.
type SearchResult struct {
	Jobs       []JobPosting  `json:"data"`
	Filters    SearchFilters `json:"filters"`
	Pagination Pagination    `json:"pagination"`
}

// Empty reports whether the page carries no jobs.
func (r SearchResult) Empty() bool {
	return len(r.Jobs) == 0
}
