package domain

import "time"

// ProjectMember is a denormalized snapshot of a User's display fields taken at
// membership-grant time. It is not a live reference; the profile-update cascade
// is the only thing that refreshes it.
type ProjectMember struct {
	UID         string `json:"uid"`
	Name        string `json:"name"`
	Role        Role   `json:"role"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	AvatarColor string `json:"avatarColor,omitempty"`
}

type Project struct {
	UID         string          `json:"uid"`
	Name        string          `json:"name"`
	PhotoURL    string          `json:"photoUrl,omitempty"`
	Members     []ProjectMember `json:"members"`
	Milestones  []string        `json:"milestones"`
	Invitations []string        `json:"invitations"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Member returns the membership entry for the given user id, or nil.
func (p *Project) Member(uid string) *ProjectMember {
	for i := range p.Members {
		if p.Members[i].UID == uid {
			return &p.Members[i]
		}
	}
	return nil
}

// OwnerCount returns the number of members holding the OWNER role.
func (p *Project) OwnerCount() int {
	n := 0
	for _, m := range p.Members {
		if m.Role == RoleOwner {
			n++
		}
	}
	return n
}

// IsSoleOwner reports whether uid is an OWNER and no other OWNER remains.
func (p *Project) IsSoleOwner(uid string) bool {
	m := p.Member(uid)
	return m != nil && m.Role == RoleOwner && p.OwnerCount() == 1
}

// WithoutMember returns the member list with the given user removed.
func (p *Project) WithoutMember(uid string) []ProjectMember {
	out := make([]ProjectMember, 0, len(p.Members))
	for _, m := range p.Members {
		if m.UID != uid {
			out = append(out, m)
		}
	}
	return out
}
