package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mbrandeis/taskloom/internal/authz"
	"github.com/mbrandeis/taskloom/internal/domain"
	"github.com/mbrandeis/taskloom/internal/repository"
)

type subtaskService struct {
	users      repository.UserRepo
	projects   repository.ProjectRepo
	milestones repository.MilestoneRepo
	subtasks   repository.SubtaskRepo
	guard      *authz.Guard
	obs        UseCaseObserver
}

// NewSubtaskService creates the subtask service.
func NewSubtaskService(
	users repository.UserRepo,
	projects repository.ProjectRepo,
	milestones repository.MilestoneRepo,
	subtasks repository.SubtaskRepo,
	guard *authz.Guard,
	observers ...UseCaseObserver,
) SubtaskService {
	return &subtaskService{
		users:      users,
		projects:   projects,
		milestones: milestones,
		subtasks:   subtasks,
		guard:      guard,
		obs:        useCaseObserverOrNoop(observers),
	}
}

// Create makes a subtask under a milestone. The reporter is always the
// creating subject, snapshotted at creation time; an assignee, when given,
// must already be a member of the owning project.
func (s *subtaskService) Create(ctx context.Context, subjectID string, req SubtaskCreate) (st *domain.Subtask, err error) {
	defer observe(ctx, s.obs, "subtask_create", &err, map[string]any{"milestone": req.MilestoneID})()

	p, m, err := s.guard.ProjectForMilestone(ctx, subjectID, req.MilestoneID)
	if err != nil {
		return nil, err
	}

	reporter, err := s.users.Find(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if reporter == nil {
		return nil, ErrUserNotFound
	}

	status := req.Status
	if status == "" {
		status = domain.SubtaskToDo
	}
	if !domain.ValidSubtaskStatuses[string(status)] {
		return nil, ErrInvalidStatus
	}

	var assignee *domain.SubtaskMember
	if req.AssigneeUID != "" {
		assignee, err = s.resolveAssignee(ctx, p, req.AssigneeUID)
		if err != nil {
			return nil, err
		}
	}

	st = &domain.Subtask{
		UID:         uuid.New().String(),
		MilestoneID: m.UID,
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		Assignee:    assignee,
		Reporter:    domain.SnapshotMember(reporter),
		CreatedAt:   time.Now().UTC(),
	}
	if err = s.subtasks.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *subtaskService) Get(ctx context.Context, subjectID, subtaskID string) (*domain.Subtask, error) {
	st, err := s.subtasks.Find(ctx, subtaskID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, authz.ErrSubtaskNotFound
	}
	if err := s.checkRead(ctx, subjectID, st.MilestoneID); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *subtaskService) ListByMilestone(ctx context.Context, subjectID, milestoneID string) ([]*domain.Subtask, error) {
	if err := s.checkRead(ctx, subjectID, milestoneID); err != nil {
		return nil, err
	}
	return s.subtasks.ListByMilestone(ctx, milestoneID)
}

// Update applies a partial update. The reporter snapshot is immutable through
// this path; clearing the assignee wins over setting one.
func (s *subtaskService) Update(ctx context.Context, subjectID, subtaskID string, req SubtaskUpdate) (st *domain.Subtask, err error) {
	defer observe(ctx, s.obs, "subtask_update", &err, map[string]any{"subtask": subtaskID})()

	p, _, err := s.guard.ProjectForSubtask(ctx, subjectID, subtaskID)
	if err != nil {
		return nil, err
	}

	patch := domain.SubtaskPatch{
		Name:          req.Name,
		Description:   req.Description,
		ClearAssignee: req.ClearAssignee,
	}
	if req.Status != nil {
		if !domain.ValidSubtaskStatuses[string(*req.Status)] {
			return nil, ErrInvalidStatus
		}
		patch.Status = req.Status
	}
	if !req.ClearAssignee && req.AssigneeUID != nil {
		assignee, err := s.resolveAssignee(ctx, p, *req.AssigneeUID)
		if err != nil {
			return nil, err
		}
		patch.Assignee = assignee
	}

	if err = s.subtasks.Update(ctx, subtaskID, patch); err != nil {
		return nil, err
	}
	return s.subtasks.Find(ctx, subtaskID)
}

func (s *subtaskService) Delete(ctx context.Context, subjectID, subtaskID string) (err error) {
	defer observe(ctx, s.obs, "subtask_delete", &err, map[string]any{"subtask": subtaskID})()

	if _, _, err = s.guard.ProjectForSubtask(ctx, subjectID, subtaskID); err != nil {
		return err
	}
	return s.subtasks.Delete(ctx, subtaskID)
}

// resolveAssignee checks project membership and snapshots the user.
func (s *subtaskService) resolveAssignee(ctx context.Context, p *domain.Project, uid string) (*domain.SubtaskMember, error) {
	if p.Member(uid) == nil {
		return nil, ErrAssigneeNotMember
	}
	u, err := s.users.Find(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	snapshot := domain.SnapshotMember(u)
	return &snapshot, nil
}

// checkRead resolves the milestone to its project and allows any member.
func (s *subtaskService) checkRead(ctx context.Context, subjectID, milestoneID string) error {
	m, err := s.milestones.Find(ctx, milestoneID)
	if err != nil {
		return err
	}
	if m == nil {
		return authz.ErrMilestoneNotFound
	}
	p, err := s.projects.Find(ctx, m.ProjectID)
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
