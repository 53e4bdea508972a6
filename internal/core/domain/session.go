package domain

import "strings"

// Role is the actor kind carried by a session.
type Role string

const (
	RoleJobseeker Role = "jobseeker"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// Persisted session keys. They match the names the browser client used for
// its local storage, so stores and logs speak the same vocabulary.
const (
	KeyAuthToken  = "authToken"
	KeyRole       = "role"
	KeyHasProfile = "hasProfile"
	KeyUserID     = "userId"
	KeyEmail      = "email"
)

// ParseRole validates s against the three known roles.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleJobseeker:
		return RoleJobseeker, nil
	case RoleEmployer:
		return RoleEmployer, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", ErrInvalidRole
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleJobseeker, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

// Session is the persisted record of the current actor.
type Session struct {
	Token      string `json:"authToken"  bson:"authToken"`
	Role       Role   `json:"role"       bson:"role"`
	HasProfile bool   `json:"hasProfile" bson:"hasProfile"`
	UserID     string `json:"userId"     bson:"userId"`
	Email      string `json:"email"      bson:"email"`
}

// Authenticated reports whether a token is present. Role is irrelevant here:
// a session without a token is never authenticated.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// LandingRoute returns the view a freshly logged-in actor is sent to.
func (s Session) LandingRoute() string {
	switch s.Role {
	case RoleAdmin:
		return "/admin"
	case RoleJobseeker:
		if !s.HasProfile {
			return "/dashboard/myapplication"
		}
		return "/dashboard"
	case RoleEmployer:
		if !s.HasProfile {
			return "/employer-dashboard/create-profile"
		}
		return "/employer-dashboard"
	default:
		return "/"
	}
}
