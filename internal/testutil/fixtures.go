package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mbrandeis/taskloom/internal/domain"
)

var testEmailCounter atomic.Int64

// User options
type UserOption func(*domain.User)

func WithEmail(email string) UserOption {
	return func(u *domain.User) {
		u.Email = email
	}
}

func WithPhotoURL(url string) UserOption {
	return func(u *domain.User) {
		u.PhotoURL = url
	}
}

func WithProjects(ids ...string) UserOption {
	return func(u *domain.User) {
		u.Projects = ids
	}
}

func NewTestUser(name string, opts ...UserOption) *domain.User {
	n := testEmailCounter.Add(1)
	u := &domain.User{
		UID:         uuid.New().String(),
		Email:       fmt.Sprintf("user%d@example.com", n),
		Name:        name,
		AvatarColor: domain.PastelColor(),
		Projects:    []string{},
		CreatedAt:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Project options
type ProjectOption func(*domain.Project)

func WithMember(u *domain.User, role domain.Role) ProjectOption {
	return func(p *domain.Project) {
		p.Members = append(p.Members, domain.SnapshotProjectMember(u, role))
	}
}

func WithMilestoneIDs(ids ...string) ProjectOption {
	return func(p *domain.Project) {
		p.Milestones = ids
	}
}

// NewTestProject creates a project with the owner as its sole OWNER member.
func NewTestProject(name string, owner *domain.User, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		UID:         uuid.New().String(),
		Name:        name,
		Members:     []domain.ProjectMember{domain.SnapshotProjectMember(owner, domain.RoleOwner)},
		Milestones:  []string{},
		Invitations: []string{},
		CreatedAt:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestMilestone(projectID, name string, start, end int64) *domain.Milestone {
	return &domain.Milestone{
		UID:       uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		Color:     "#BAE1FF",
		StartDate: start,
		EndDate:   end,
		CreatedAt: time.Now().UTC(),
	}
}

// Subtask options
type SubtaskOption func(*domain.Subtask)

func WithAssignee(u *domain.User) SubtaskOption {
	return func(s *domain.Subtask) {
		m := domain.SnapshotMember(u)
		s.Assignee = &m
	}
}

func WithStatus(status domain.SubtaskStatus) SubtaskOption {
	return func(s *domain.Subtask) {
		s.Status = status
	}
}

func NewTestSubtask(milestoneID, name string, reporter *domain.User, opts ...SubtaskOption) *domain.Subtask {
	s := &domain.Subtask{
		UID:         uuid.New().String(),
		MilestoneID: milestoneID,
		Name:        name,
		Status:      domain.SubtaskToDo,
		Reporter:    domain.SnapshotMember(reporter),
		CreatedAt:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewTestInvitation(p *domain.Project, email string, role domain.Role, invitedBy string) *domain.Invitation {
	return &domain.Invitation{
		UID:         uuid.New().String(),
		ProjectID:   p.UID,
		ProjectName: p.Name,
		Email:       email,
		Role:        role,
		InvitedBy:   invitedBy,
		Accepted:    false,
		CreatedAt:   time.Now().UTC(),
	}
}
