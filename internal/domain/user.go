package domain

import "time"

type User struct {
	UID           string    `json:"uid"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	PhotoURL      string    `json:"photoUrl,omitempty"`
	AvatarColor   string    `json:"avatarColor"`
	PhoneNumber   string    `json:"phoneNumber,omitempty"`
	EmailVerified bool      `json:"emailVerified"`
	CompanyName   string    `json:"companyName,omitempty"`
	JobTitle      string    `json:"jobTitle,omitempty"`
	Projects      []string  `json:"projects"`
	CreatedAt     time.Time `json:"createdAt"`
}

// HasProject reports whether the project id is in the user's membership list.
func (u *User) HasProject(projectID string) bool {
	for _, id := range u.Projects {
		if id == projectID {
			return true
		}
	}
	return false
}

// WithoutProject returns the user's project list with the given id removed.
func (u *User) WithoutProject(projectID string) []string {
	out := make([]string, 0, len(u.Projects))
	for _, id := range u.Projects {
		if id != projectID {
			out = append(out, id)
		}
	}
	return out
}
