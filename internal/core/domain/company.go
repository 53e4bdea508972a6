package domain

// Headquarters is the company location group.
type Headquarters struct {
	Country string `json:"country"`
	City    string `json:"city"`
}

// SocialMedia holds the company's profile links.
type SocialMedia struct {
	LinkedIn  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
}

// CompanyProfile is the employer profile.
type CompanyProfile struct {
	ID           string       `json:"_id,omitempty"`
	Name         string       `json:"name"        validate:"required"`
	Description  string       `json:"description" validate:"required"`
	Industry     string       `json:"industry"`
	Website      string       `json:"website"     validate:"omitempty,url"`
	Email        string       `json:"email"       validate:"omitempty,email"`
	Phone        string       `json:"phone"`
	Headquarters Headquarters `json:"headquarters"`
	Size         string       `json:"size"`
	FoundedYear  float64      `json:"foundedYear" validate:"gte=0"`
	Mission      string       `json:"mission"`
	Vision       string       `json:"vision"`
	Values       []string     `json:"values"`
	Specialties  []string     `json:"specialties"`
	SocialMedia  SocialMedia  `json:"socialMedia"`
	Picture      string       `json:"picture"`
	Positions    []string     `json:"positions"`
}
