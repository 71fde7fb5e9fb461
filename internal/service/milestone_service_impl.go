package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mbrandeis/taskloom/internal/authz"
	"github.com/mbrandeis/taskloom/internal/domain"
	"github.com/mbrandeis/taskloom/internal/repository"
)

type milestoneService struct {
	projects   repository.ProjectRepo
	milestones repository.MilestoneRepo
	guard      *authz.Guard
	cascader   *Cascader
	obs        UseCaseObserver
}

// NewMilestoneService creates the milestone service.
func NewMilestoneService(
	projects repository.ProjectRepo,
	milestones repository.MilestoneRepo,
	guard *authz.Guard,
	cascader *Cascader,
	observers ...UseCaseObserver,
) MilestoneService {
	return &milestoneService{
		projects:   projects,
		milestones: milestones,
		guard:      guard,
		cascader:   cascader,
		obs:        useCaseObserverOrNoop(observers),
	}
}

func (s *milestoneService) Create(ctx context.Context, subjectID string, req MilestoneCreate) (m *domain.Milestone, err error) {
	defer observe(ctx, s.obs, "milestone_create", &err, map[string]any{"project": req.ProjectID})()

	p, err := s.guard.ProjectForSubject(ctx, subjectID, req.ProjectID)
	if err != nil {
		return nil, err
	}

	m = &domain.Milestone{
		UID:         uuid.New().String(),
		ProjectID:   p.UID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedAt:   time.Now().UTC(),
	}
	if err = m.ValidateDates(); err != nil {
		return nil, err
	}
	if err = s.milestones.Create(ctx, m); err != nil {
		return nil, err
	}
	s.cascader.MilestoneCreated(ctx, p, m)
	return m, nil
}

func (s *milestoneService) Get(ctx context.Context, subjectID, milestoneID string) (*domain.Milestone, error) {
	m, err := s.milestones.Find(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, authz.ErrMilestoneNotFound
	}
	if err := s.checkRead(ctx, subjectID, m.ProjectID); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *milestoneService) ListByProject(ctx context.Context, subjectID, projectID string) ([]*domain.Milestone, error) {
	if projectID == "" {
		return nil, authz.ErrProjectIDMissing
	}
	if err := s.checkRead(ctx, subjectID, projectID); err != nil {
		return nil, err
	}
	return s.milestones.ListByProject(ctx, projectID)
}

func (s *milestoneService) Update(ctx context.Context, subjectID, milestoneID string, patch domain.MilestonePatch) (m *domain.Milestone, err error) {
	defer observe(ctx, s.obs, "milestone_update", &err, map[string]any{"milestone": milestoneID})()

	_, current, err := s.guard.ProjectForMilestone(ctx, subjectID, milestoneID)
	if err != nil {
		return nil, err
	}
	candidate := *current
	patch.Apply(&candidate)
	if err = candidate.ValidateDates(); err != nil {
		return nil, err
	}
	if err = s.milestones.Update(ctx, milestoneID, patch); err != nil {
		return nil, err
	}
	return s.milestones.Find(ctx, milestoneID)
}

// Delete removes the milestone, unregisters it from its project and deletes
// its subtasks.
func (s *milestoneService) Delete(ctx context.Context, subjectID, milestoneID string) (err error) {
	defer observe(ctx, s.obs, "milestone_delete", &err, map[string]any{"milestone": milestoneID})()

	_, m, err := s.guard.ProjectForMilestone(ctx, subjectID, milestoneID)
	if err != nil {
		return err
	}
	if err = s.milestones.Delete(ctx, milestoneID); err != nil {
		return err
	}
	s.cascader.MilestoneDeleted(ctx, m)
	return nil
}

// checkRead allows any member of the project, at any role.
func (s *milestoneService) checkRead(ctx context.Context, subjectID, projectID string) error {
	p, err := s.projects.Find(ctx, projectID)
	if err != nil {
		return err
	}
	if p == nil {
		return authz.ErrProjectNotFound
	}
	if p.Member(subjectID) == nil {
		return authz.ErrUnauthorized
	}
	return nil
}
