package service

import (
	"context"

	"github.com/mbrandeis/taskloom/internal/domain"
)

// Request records for the mutating operations. The HTTP layer validates
// shapes at the boundary and hands these to the services typed, never as raw
// maps.

type ProjectCreate struct {
	Name     string
	PhotoURL string
}

type MilestoneCreate struct {
	ProjectID   string
	Name        string
	Description string
	Color       string
	StartDate   int64
	EndDate     int64
}

type SubtaskCreate struct {
	MilestoneID string
	Name        string
	Description string
	Status      domain.SubtaskStatus
	AssigneeUID string
}

type SubtaskUpdate struct {
	Name          *string
	Description   *string
	Status        *domain.SubtaskStatus
	AssigneeUID   *string
	ClearAssignee bool
}

type InvitationCreate struct {
	ProjectID string
	Email     string
	Role      domain.Role
}

type UserService interface {
	SignUp(ctx context.Context, subjectID string) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, subjectID, userID string, p domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, subjectID, userID string) error
}

type ProjectService interface {
	Create(ctx context.Context, subjectID string, req ProjectCreate) (*domain.Project, error)
	Get(ctx context.Context, subjectID, projectID string) (*domain.Project, error)
	ListForUser(ctx context.Context, subjectID string) ([]*domain.Project, error)
	Update(ctx context.Context, subjectID, projectID string, patch domain.ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, subjectID, projectID string) error
	Leave(ctx context.Context, subjectID, projectID string) error
}

type MilestoneService interface {
	Create(ctx context.Context, subjectID string, req MilestoneCreate) (*domain.Milestone, error)
	Get(ctx context.Context, subjectID, milestoneID string) (*domain.Milestone, error)
	ListByProject(ctx context.Context, subjectID, projectID string) ([]*domain.Milestone, error)
	Update(ctx context.Context, subjectID, milestoneID string, p domain.MilestonePatch) (*domain.Milestone, error)
	Delete(ctx context.Context, subjectID, milestoneID string) error
}

type SubtaskService interface {
	Create(ctx context.Context, subjectID string, req SubtaskCreate) (*domain.Subtask, error)
	Get(ctx context.Context, subjectID, subtaskID string) (*domain.Subtask, error)
	ListByMilestone(ctx context.Context, subjectID, milestoneID string) ([]*domain.Subtask, error)
	Update(ctx context.Context, subjectID, subtaskID string, req SubtaskUpdate) (*domain.Subtask, error)
	Delete(ctx context.Context, subjectID, subtaskID string) error
}

type InvitationService interface {
	Create(ctx context.Context, subjectID string, req InvitationCreate) (*domain.Invitation, error)
	ListForSubject(ctx context.Context, subjectID string) ([]*domain.Invitation, error)
	Accept(ctx context.Context, subjectID, invitationID string) error
	Decline(ctx context.Context, subjectID, invitationID string) error
	Delete(ctx context.Context, subjectID, invitationID string) error
}
