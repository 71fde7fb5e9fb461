package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mbrandeis/taskloom/internal/authz"
	"github.com/mbrandeis/taskloom/internal/domain"
	"github.com/mbrandeis/taskloom/internal/repository"
)

type projectService struct {
	users    repository.UserRepo
	projects repository.ProjectRepo
	guard    *authz.Guard
	cascader *Cascader
	obs      UseCaseObserver
}

// NewProjectService creates the project service.
func NewProjectService(
	users repository.UserRepo,
	projects repository.ProjectRepo,
	guard *authz.Guard,
	cascader *Cascader,
	observers ...UseCaseObserver,
) ProjectService {
	return &projectService{
		users:    users,
		projects: projects,
		guard:    guard,
		cascader: cascader,
		obs:      useCaseObserverOrNoop(observers),
	}
}

// Create makes a project with the creator as its only member, at OWNER.
func (s *projectService) Create(ctx context.Context, subjectID string, req ProjectCreate) (p *domain.Project, err error) {
	defer observe(ctx, s.obs, "project_create", &err, map[string]any{"user": subjectID})()

	creator, err := s.users.Find(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, ErrUserNotFound
	}

	p = &domain.Project{
		UID:         uuid.New().String(),
		Name:        req.Name,
		PhotoURL:    req.PhotoURL,
		Members:     []domain.ProjectMember{domain.SnapshotProjectMember(creator, domain.RoleOwner)},
		Milestones:  []string{},
		Invitations: []string{},
		CreatedAt:   time.Now().UTC(),
	}
	if err = s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	s.cascader.ProjectCreated(ctx, subjectID, p)
	return p, nil
}

// Get returns the project for any member, at any role.
func (s *projectService) Get(ctx context.Context, subjectID, projectID string) (*domain.Project, error) {
	if projectID == "" {
		return nil, authz.ErrProjectIDMissing
	}
	p, err := s.projects.Find(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, authz.ErrProjectNotFound
	}
	if p.Member(subjectID) == nil {
		return nil, authz.ErrUnauthorized
	}
	return p, nil
}

func (s *projectService) ListForUser(ctx context.Context, subjectID string) ([]*domain.Project, error) {
	u, err := s.users.Find(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return s.projects.FindMany(ctx, u.Projects)
}

func (s *projectService) Update(ctx context.Context, subjectID, projectID string, patch domain.ProjectPatch) (p *domain.Project, err error) {
	defer observe(ctx, s.obs, "project_update", &err, map[string]any{"project": projectID})()

	if _, err = s.guard.ProjectForSubject(ctx, subjectID, projectID); err != nil {
		return nil, err
	}
	if err = s.projects.Update(ctx, projectID, patch); err != nil {
		return nil, err
	}
	return s.projects.Find(ctx, projectID)
}

// Delete removes the project and cascades to members, milestones and
// subtasks.
func (s *projectService) Delete(ctx context.Context, subjectID, projectID string) (err error) {
	defer observe(ctx, s.obs, "project_delete", &err, map[string]any{"project": projectID})()

	p, err := s.guard.ProjectForSubject(ctx, subjectID, projectID)
	if err != nil {
		return err
	}
	if err = s.projects.Delete(ctx, projectID); err != nil {
		return err
	}
	s.cascader.ProjectDeleted(ctx, p)
	return nil
}

// Leave removes the subject from the project. Any member may leave, viewers
// included, so this bypasses the write-permission guard. A sole owner leaving
// deletes the whole project.
func (s *projectService) Leave(ctx context.Context, subjectID, projectID string) (err error) {
	defer observe(ctx, s.obs, "project_leave", &err, map[string]any{"project": projectID, "user": subjectID})()

	if projectID == "" {
		return authz.ErrProjectIDMissing
	}
	p, err := s.projects.Find(ctx, projectID)
	if err != nil {
		return err
	}
	if p == nil {
		return authz.ErrProjectNotFound
	}
	if p.Member(subjectID) == nil {
		return ErrNotAMember
	}

	if p.IsSoleOwner(subjectID) {
		if err = s.projects.Delete(ctx, projectID); err != nil {
			return err
		}
		s.cascader.ProjectDeleted(ctx, p)
		return nil
	}

	s.cascader.MemberLeft(ctx, p, subjectID)
	return nil
}
