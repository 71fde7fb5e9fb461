package domain

// Patches are partial updates applied by the repositories. Nil fields are left
// untouched. An all-nil patch is rejected at the repository boundary.

type UserPatch struct {
	Name          *string `json:"name,omitempty"`
	PhotoURL      *string `json:"photoUrl,omitempty"`
	PhoneNumber   *string `json:"phoneNumber,omitempty"`
	EmailVerified *bool   `json:"emailVerified,omitempty"`
	CompanyName   *string `json:"companyName,omitempty"`
	JobTitle      *string `json:"jobTitle,omitempty"`
}

func (p UserPatch) IsZero() bool {
	return p.Name == nil && p.PhotoURL == nil && p.PhoneNumber == nil &&
		p.EmailVerified == nil && p.CompanyName == nil && p.JobTitle == nil
}

// TouchesProfile reports whether the patch changes fields that are embedded in
// ProjectMember/SubtaskMember snapshots and therefore require a fan-out.
func (p UserPatch) TouchesProfile() bool {
	return p.Name != nil || p.PhotoURL != nil
}

func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.PhotoURL != nil {
		u.PhotoURL = *p.PhotoURL
	}
	if p.PhoneNumber != nil {
		u.PhoneNumber = *p.PhoneNumber
	}
	if p.EmailVerified != nil {
		u.EmailVerified = *p.EmailVerified
	}
	if p.CompanyName != nil {
		u.CompanyName = *p.CompanyName
	}
	if p.JobTitle != nil {
		u.JobTitle = *p.JobTitle
	}
}

type ProjectPatch struct {
	Name        *string          `json:"name,omitempty"`
	PhotoURL    *string          `json:"photoUrl,omitempty"`
	Members     []ProjectMember  `json:"members,omitempty"`
	Milestones  []string         `json:"milestones,omitempty"`
	Invitations []string         `json:"invitations,omitempty"`

	// SetMembers/SetMilestones/SetInvitations distinguish "replace with empty"
	// from "leave untouched", since the zero value of a slice is nil either way.
	SetMembers     bool `json:"-"`
	SetMilestones  bool `json:"-"`
	SetInvitations bool `json:"-"`
}

func (p ProjectPatch) IsZero() bool {
	return p.Name == nil && p.PhotoURL == nil &&
		!p.SetMembers && !p.SetMilestones && !p.SetInvitations
}

func (p ProjectPatch) Apply(pr *Project) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.PhotoURL != nil {
		pr.PhotoURL = *p.PhotoURL
	}
	if p.SetMembers {
		pr.Members = p.Members
	}
	if p.SetMilestones {
		pr.Milestones = p.Milestones
	}
	if p.SetInvitations {
		pr.Invitations = p.Invitations
	}
}

type MilestonePatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	StartDate   *int64  `json:"startDate,omitempty"`
	EndDate     *int64  `json:"endDate,omitempty"`
}

func (p MilestonePatch) IsZero() bool {
	return p.Name == nil && p.Description == nil && p.Color == nil &&
		p.StartDate == nil && p.EndDate == nil
}

func (p MilestonePatch) Apply(m *Milestone) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Color != nil {
		m.Color = *p.Color
	}
	if p.StartDate != nil {
		m.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		m.EndDate = *p.EndDate
	}
}

type SubtaskPatch struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Status      *SubtaskStatus `json:"status,omitempty"`
	Assignee    *SubtaskMember `json:"assignee,omitempty"`

	// ClearAssignee sets assignee to null; it wins over Assignee.
	ClearAssignee bool `json:"-"`

	// SetReporter refreshes the reporter snapshot. Only the profile-update
	// cascade uses it; the reporter is otherwise immutable after creation.
	SetReporter *SubtaskMember `json:"-"`
}

func (p SubtaskPatch) IsZero() bool {
	return p.Name == nil && p.Description == nil && p.Status == nil &&
		p.Assignee == nil && !p.ClearAssignee && p.SetReporter == nil
}

func (p SubtaskPatch) Apply(s *Subtask) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.ClearAssignee {
		s.Assignee = nil
	} else if p.Assignee != nil {
		s.Assignee = p.Assignee
	}
	if p.SetReporter != nil {
		s.Reporter = *p.SetReporter
	}
}

type InvitationPatch struct {
	Accepted *bool `json:"accepted,omitempty"`
}

func (p InvitationPatch) IsZero() bool {
	return p.Accepted == nil
}

func (p InvitationPatch) Apply(i *Invitation) {
	if p.Accepted != nil {
		i.Accepted = *p.Accepted
	}
}
