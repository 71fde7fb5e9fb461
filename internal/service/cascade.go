package service

import (
	"context"
	"log/slog"

	"github.com/mbrandeis/taskloom/internal/domain"
	"github.com/mbrandeis/taskloom/internal/repository"
)

// Cascader runs the follow-up mutations that keep cross-references consistent
// after a primary entity change. Every cascade is a best-effort sequence of
// independent store calls: a failed step is logged and the remaining steps
// still execute. Nothing here is transactional and nothing is rolled back.
type Cascader struct {
	users       repository.UserRepo
	projects    repository.ProjectRepo
	milestones  repository.MilestoneRepo
	subtasks    repository.SubtaskRepo
	invitations repository.InvitationRepo
	log         *slog.Logger
}

// NewCascader creates a Cascader over the given repositories.
func NewCascader(
	users repository.UserRepo,
	projects repository.ProjectRepo,
	milestones repository.MilestoneRepo,
	subtasks repository.SubtaskRepo,
	invitations repository.InvitationRepo,
	log *slog.Logger,
) *Cascader {
	if log == nil {
		log = slog.Default()
	}
	return &Cascader{
		users:       users,
		projects:    projects,
		milestones:  milestones,
		subtasks:    subtasks,
		invitations: invitations,
		log:         log,
	}
}

// ProjectCreated records the new project on the creating user's membership
// list.
func (c *Cascader) ProjectCreated(ctx context.Context, creatorUID string, p *domain.Project) {
	u, err := c.users.Find(ctx, creatorUID)
	if err != nil || u == nil {
		c.log.ErrorContext(ctx, "cascade: project created, creator missing",
			"project", p.UID, "user", creatorUID, "error", err)
		return
	}
	if err := c.users.SetProjects(ctx, creatorUID, append(u.Projects, p.UID)); err != nil {
		c.log.ErrorContext(ctx, "cascade: adding project to creator",
			"project", p.UID, "user", creatorUID, "error", err)
	}
}

// ProjectDeleted removes the project from every referencing user's list and
// deletes all milestones (and, through them, subtasks) that referenced it.
// Users are found by querying their denormalized project lists rather than
// walking the member snapshots, so stale back-references get cleaned up too.
func (c *Cascader) ProjectDeleted(ctx context.Context, p *domain.Project) {
	members, err := c.users.ListByProject(ctx, p.UID)
	if err != nil {
		c.log.ErrorContext(ctx, "cascade: listing members of deleted project",
			"project", p.UID, "error", err)
	}
	for _, u := range members {
		if err := c.users.SetProjects(ctx, u.UID, u.WithoutProject(p.UID)); err != nil {
			c.log.ErrorContext(ctx, "cascade: removing project from member",
				"project", p.UID, "user", u.UID, "error", err)
		}
	}

	milestones, err := c.milestones.ListByProject(ctx, p.UID)
	if err != nil {
		c.log.ErrorContext(ctx, "cascade: listing milestones of deleted project",
			"project", p.UID, "error", err)
		return
	}
	ids := make([]string, 0, len(milestones))
	for _, m := range milestones {
		c.deleteSubtasksOf(ctx, m.UID)
		ids = append(ids, m.UID)
	}
	if len(ids) > 0 {
		if err := c.milestones.DeleteBatch(ctx, ids); err != nil {
			c.log.ErrorContext(ctx, "cascade: deleting milestones of deleted project",
				"project", p.UID, "error", err)
		}
	}
}

// MilestoneCreated registers the milestone id on its project.
func (c *Cascader) MilestoneCreated(ctx context.Context, p *domain.Project, m *domain.Milestone) {
	patch := domain.ProjectPatch{Milestones: append(p.Milestones, m.UID), SetMilestones: true}
	if err := c.projects.Update(ctx, p.UID, patch); err != nil {
		c.log.ErrorContext(ctx, "cascade: registering milestone on project",
			"project", p.UID, "milestone", m.UID, "error", err)
	}
}

// MilestoneDeleted unregisters the milestone from its project (skipped when
// the project is already gone) and deletes the milestone's subtasks either
// way, so orphans do not accumulate.
func (c *Cascader) MilestoneDeleted(ctx context.Context, m *domain.Milestone) {
	p, err := c.projects.Find(ctx, m.ProjectID)
	if err != nil {
		c.log.ErrorContext(ctx, "cascade: loading project of deleted milestone",
			"milestone", m.UID, "project", m.ProjectID, "error", err)
	}
	if p != nil {
		kept := make([]string, 0, len(p.Milestones))
		for _, id := range p.Milestones {
			if id != m.UID {
				kept = append(kept, id)
			}
		}
		patch := domain.ProjectPatch{Milestones: kept, SetMilestones: true}
		if err := c.projects.Update(ctx, p.UID, patch); err != nil {
			c.log.ErrorContext(ctx, "cascade: unregistering milestone from project",
				"project", p.UID, "milestone", m.UID, "error", err)
		}
	}

	c.deleteSubtasksOf(ctx, m.UID)
}

// ProfileUpdated fans the user's new name/photo out to every ProjectMember
// and SubtaskMember snapshot that embeds them. Roles are left untouched.
func (c *Cascader) ProfileUpdated(ctx context.Context, u *domain.User) {
	for _, projectID := range u.Projects {
		p, err := c.projects.Find(ctx, projectID)
		if err != nil || p == nil {
			c.log.WarnContext(ctx, "cascade: profile update, project missing",
				"user", u.UID, "project", projectID, "error", err)
			continue
		}
		changed := false
		for i := range p.Members {
			if p.Members[i].UID == u.UID {
				p.Members[i].Name = u.Name
				p.Members[i].PhotoURL = u.PhotoURL
				changed = true
			}
		}
		if !changed {
			continue
		}
		patch := domain.ProjectPatch{Members: p.Members, SetMembers: true}
		if err := c.projects.Update(ctx, projectID, patch); err != nil {
			c.log.ErrorContext(ctx, "cascade: refreshing member snapshot",
				"user", u.UID, "project", projectID, "error", err)
		}
	}

	snapshot := domain.SnapshotMember(u)

	assigned, err := c.subtasks.ListByAssignee(ctx, u.UID)
	if err != nil {
		c.log.ErrorContext(ctx, "cascade: listing assigned subtasks", "user", u.UID, "error", err)
	}
	for _, s := range assigned {
		if err := c.subtasks.Update(ctx, s.UID, domain.SubtaskPatch{Assignee: &snapshot}); err != nil {
			c.log.ErrorContext(ctx, "cascade: refreshing assignee snapshot",
				"user", u.UID, "subtask", s.UID, "error", err)
		}
	}

	reported, err := c.subtasks.ListByReporter(ctx, u.UID)
	if err != nil {
		c.log.ErrorContext(ctx, "cascade: listing reported subtasks", "user", u.UID, "error", err)
	}
	for _, s := range reported {
		if err := c.subtasks.Update(ctx, s.UID, domain.SubtaskPatch{SetReporter: &snapshot}); err != nil {
			c.log.ErrorContext(ctx, "cascade: refreshing reporter snapshot",
				"user", u.UID, "subtask", s.UID, "error", err)
		}
	}
}

// MemberLeft removes a non-sole-owner member: unassigns them from every
// subtask in the project, drops them from the member list, and drops the
// project from their own list. The sole-owner case is decided by the caller,
// which deletes the whole project instead.
func (c *Cascader) MemberLeft(ctx context.Context, p *domain.Project, uid string) {
	milestones, err := c.milestones.ListByProject(ctx, p.UID)
	if err != nil {
		c.log.ErrorContext(ctx, "cascade: member left, listing milestones",
			"project", p.UID, "user", uid, "error", err)
	}
	for _, m := range milestones {
		subtasks, err := c.subtasks.ListByMilestone(ctx, m.UID)
		if err != nil {
			c.log.ErrorContext(ctx, "cascade: member left, listing subtasks",
				"milestone", m.UID, "user", uid, "error", err)
			continue
		}
		for _, s := range subtasks {
			if s.Assignee == nil || s.Assignee.UID != uid {
				continue
			}
			if err := c.subtasks.Update(ctx, s.UID, domain.SubtaskPatch{ClearAssignee: true}); err != nil {
				c.log.ErrorContext(ctx, "cascade: unassigning departing member",
					"subtask", s.UID, "user", uid, "error", err)
			}
		}
	}

	patch := domain.ProjectPatch{Members: p.WithoutMember(uid), SetMembers: true}
	if err := c.projects.Update(ctx, p.UID, patch); err != nil {
		c.log.ErrorContext(ctx, "cascade: removing member from project",
			"project", p.UID, "user", uid, "error", err)
	}

	u, err := c.users.Find(ctx, uid)
	if err != nil || u == nil {
		c.log.WarnContext(ctx, "cascade: member left, user missing",
			"project", p.UID, "user", uid, "error", err)
		return
	}
	if err := c.users.SetProjects(ctx, uid, u.WithoutProject(p.UID)); err != nil {
		c.log.ErrorContext(ctx, "cascade: removing project from departing member",
			"project", p.UID, "user", uid, "error", err)
	}
}

// UserDeleted walks the user's projects before their document is removed: a
// project where they are the sole member, or where they hold the OWNER role
// at all, is deleted outright with the full project cascade. Memberships at
// lower roles are left as-is, matching the upstream rule (see DESIGN.md on
// the sole-ownership question).
func (c *Cascader) UserDeleted(ctx context.Context, u *domain.User) {
	for _, projectID := range u.Projects {
		p, err := c.projects.Find(ctx, projectID)
		if err != nil || p == nil {
			c.log.WarnContext(ctx, "cascade: user deleted, project missing",
				"user", u.UID, "project", projectID, "error", err)
			continue
		}
		m := p.Member(u.UID)
		soleMember := len(p.Members) == 1 && m != nil
		if soleMember || (m != nil && m.Role == domain.RoleOwner) {
			if err := c.projects.Delete(ctx, projectID); err != nil {
				c.log.ErrorContext(ctx, "cascade: deleting project of deleted user",
					"user", u.UID, "project", projectID, "error", err)
				continue
			}
			c.ProjectDeleted(ctx, p)
		}
	}
}

// InvitationCreated registers the invitation id on its target project.
func (c *Cascader) InvitationCreated(ctx context.Context, p *domain.Project, inv *domain.Invitation) {
	patch := domain.ProjectPatch{
		Invitations:    append(p.Invitations, inv.UID),
		SetInvitations: true,
	}
	if err := c.projects.Update(ctx, p.UID, patch); err != nil {
		c.log.ErrorContext(ctx, "cascade: registering invitation on project",
			"project", p.UID, "invitation", inv.UID, "error", err)
	}
}

// InvitationAccepted applies the acceptance as one logical unit of sequential
// calls: mark accepted, extend the user's project list, append the member
// snapshot, and unregister the invitation from the project. Partial failure
// leaves partial state; the first failing step's error is returned.
func (c *Cascader) InvitationAccepted(ctx context.Context, inv *domain.Invitation, u *domain.User) error {
	accepted := true
	if err := c.invitations.Update(ctx, inv.UID, domain.InvitationPatch{Accepted: &accepted}); err != nil {
		return err
	}

	if err := c.users.SetProjects(ctx, u.UID, append(u.Projects, inv.ProjectID)); err != nil {
		return err
	}

	p, err := c.projects.Find(ctx, inv.ProjectID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNoProject
	}
	patch := domain.ProjectPatch{
		Members:        append(p.Members, domain.SnapshotProjectMember(u, inv.Role)),
		SetMembers:     true,
		Invitations:    withoutString(p.Invitations, inv.UID),
		SetInvitations: true,
	}
	return c.projects.Update(ctx, p.UID, patch)
}

// InvitationDeclined unregisters the invitation from its project and deletes
// the invitation document.
func (c *Cascader) InvitationDeclined(ctx context.Context, inv *domain.Invitation, p *domain.Project) error {
	patch := domain.ProjectPatch{
		Invitations:    withoutString(p.Invitations, inv.UID),
		SetInvitations: true,
	}
	if err := c.projects.Update(ctx, p.UID, patch); err != nil {
		return err
	}
	return c.invitations.Delete(ctx, inv.UID)
}

func (c *Cascader) deleteSubtasksOf(ctx context.Context, milestoneID string) {
	subtasks, err := c.subtasks.ListByMilestone(ctx, milestoneID)
	if err != nil {
		c.log.ErrorContext(ctx, "cascade: listing subtasks of deleted milestone",
			"milestone", milestoneID, "error", err)
		return
	}
	if len(subtasks) == 0 {
		return
	}
	ids := make([]string, 0, len(subtasks))
	for _, s := range subtasks {
		ids = append(ids, s.UID)
	}
	if err := c.subtasks.DeleteBatch(ctx, ids); err != nil {
		c.log.ErrorContext(ctx, "cascade: deleting subtasks of deleted milestone",
			"milestone", milestoneID, "error", err)
	}
}

func withoutString(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
