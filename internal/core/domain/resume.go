package domain

// WorkExperience is one employer entry on a resume.
type WorkExperience struct {
	CompanyName      string   `json:"companyName"`
	JobTitle         string   `json:"jobTitle"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Responsibilities []string `json:"responsibilities"`
}

// Education is one school entry on a resume.
type Education struct {
	InstitutionName      string   `json:"institutionName"`
	DegreeEarned         string   `json:"degreeEarned"`
	StartDate            string   `json:"startDate"`
	GraduationDate       string   `json:"graduationDate"`
	AcademicAchievements []string `json:"academicAchievements"`
}

// Project is one project entry on a resume.
type Project struct {
	ProjectName      string   `json:"projectName"`
	Role             string   `json:"role"`
	ProjectObjective string   `json:"projectObjective"`
	Outcomes         []string `json:"outcomes"`
}

// Resume is the jobseeker profile.
type Resume struct {
	ID              string           `json:"_id,omitempty"`
	Picture         string           `json:"picture"`
	Summary         string           `json:"summary"`
	FirstName       string           `json:"firstName"       validate:"required"`
	LastName        string           `json:"lastName"        validate:"required"`
	PhoneNumber     string           `json:"phoneNumber"     validate:"len=10,numeric"`
	EmailAddress    string           `json:"emailAddress"    validate:"required,email"`
	LinkedInProfile string           `json:"linkedInProfile"`
	Address         string           `json:"address"         validate:"required"`
	Skills          []string         `json:"skills"`
	Hobbies         []string         `json:"hobbies"`
	WorkExperience  []WorkExperience `json:"workExperience"`
	Education       []Education      `json:"education"`
	Certifications  []string         `json:"certifications"`
	Projects        []Project        `json:"projects"`
	AwardsAndHonors []string         `json:"awardsAndHonors"`
	Languages       []string         `json:"languages"`
	PdfFile         string           `json:"pdfFile,omitempty"`
}

// FullName joins first and last name for list views.
func (r Resume) FullName() string {
	switch {
	case r.FirstName == "":
		return r.LastName
	case r.LastName == "":
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}
