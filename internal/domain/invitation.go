package domain

import "time"

// Invitation is a pending offer of project membership at a given role,
// addressed by email. Once accepted it is retained with Accepted=true; a
// decline or explicit delete removes the document instead.
type Invitation struct {
	UID         string    `json:"uid"`
	ProjectID   string    `json:"projectId"`
	ProjectName string    `json:"projectName"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	InvitedBy   string    `json:"invitedBy"`
	Accepted    bool      `json:"accepted"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Pending reports whether the invitation is still open.
func (i *Invitation) Pending() bool {
	return !i.Accepted
}
