package repository

import (
	"context"

	"github.com/mbrandeis/taskloom/internal/domain"
)

// Repositories are thin typed wrappers over the document store. Find returns
// (nil, nil) for a missing id; store-level read errors are logged and also
// reported as not found. Update with an all-nil patch fails with ErrEmptyPatch
// for every entity type.

type UserRepo interface {
	Find(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// ListByProject returns every user whose projects list references the
	// given project id.
	ListByProject(ctx context.Context, projectID string) ([]*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, id string, p domain.UserPatch) error
	// SetProjects replaces the denormalized project-membership list. Cascade
	// steps use it; it is not part of the profile patch surface.
	SetProjects(ctx context.Context, id string, projects []string) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Find(ctx context.Context, id string) (*domain.Project, error)
	FindMany(ctx context.Context, ids []string) ([]*domain.Project, error)
	Create(ctx context.Context, p *domain.Project) error
	Update(ctx context.Context, id string, patch domain.ProjectPatch) error
	Delete(ctx context.Context, id string) error
}

type MilestoneRepo interface {
	Find(ctx context.Context, id string) (*domain.Milestone, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Milestone, error)
	Create(ctx context.Context, m *domain.Milestone) error
	Update(ctx context.Context, id string, p domain.MilestonePatch) error
	Delete(ctx context.Context, id string) error
	DeleteBatch(ctx context.Context, ids []string) error
}

type SubtaskRepo interface {
	Find(ctx context.Context, id string) (*domain.Subtask, error)
	ListByMilestone(ctx context.Context, milestoneID string) ([]*domain.Subtask, error)
	ListByAssignee(ctx context.Context, uid string) ([]*domain.Subtask, error)
	ListByReporter(ctx context.Context, uid string) ([]*domain.Subtask, error)
	Create(ctx context.Context, s *domain.Subtask) error
	Update(ctx context.Context, id string, p domain.SubtaskPatch) error
	Delete(ctx context.Context, id string) error
	DeleteBatch(ctx context.Context, ids []string) error
}

type InvitationRepo interface {
	Find(ctx context.Context, id string) (*domain.Invitation, error)
	ListByEmail(ctx context.Context, email string) ([]*domain.Invitation, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Invitation, error)
	Create(ctx context.Context, inv *domain.Invitation) error
	Update(ctx context.Context, id string, p domain.InvitationPatch) error
	Delete(ctx context.Context, id string) error
}
