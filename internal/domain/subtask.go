package domain

import "time"

// SubtaskMember is a denormalized snapshot of a User's display fields, embedded
// on a subtask as assignee or reporter.
type SubtaskMember struct {
	UID         string `json:"uid"`
	Name        string `json:"name"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	AvatarColor string `json:"avatarColor"`
}

type Subtask struct {
	UID         string         `json:"uid"`
	MilestoneID string         `json:"milestoneId"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Status      SubtaskStatus  `json:"status"`
	Assignee    *SubtaskMember `json:"assignee"`
	Reporter    SubtaskMember  `json:"reporter"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// SnapshotMember builds a SubtaskMember from the user's current profile.
func SnapshotMember(u *User) SubtaskMember {
	return SubtaskMember{
		UID:         u.UID,
		Name:        u.Name,
		PhotoURL:    u.PhotoURL,
		AvatarColor: u.AvatarColor,
	}
}

// SnapshotProjectMember builds a ProjectMember from the user's current profile
// with the given role.
func SnapshotProjectMember(u *User, role Role) ProjectMember {
	return ProjectMember{
		UID:         u.UID,
		Name:        u.Name,
		Role:        role,
		PhotoURL:    u.PhotoURL,
		AvatarColor: u.AvatarColor,
	}
}
