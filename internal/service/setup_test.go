package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mbrandeis/taskloom/internal/authz"
	"github.com/mbrandeis/taskloom/internal/domain"
	"github.com/mbrandeis/taskloom/internal/notify"
	"github.com/mbrandeis/taskloom/internal/repository"
	"github.com/mbrandeis/taskloom/internal/service"
	"github.com/mbrandeis/taskloom/internal/testutil"
)

// env wires the full service stack over an in-memory store, the same way the
// server does at startup.
type env struct {
	users       repository.UserRepo
	projects    repository.ProjectRepo
	milestones  repository.MilestoneRepo
	subtasks    repository.SubtaskRepo
	invitations repository.InvitationRepo

	idp      *testutil.FakeIdentity
	cascader *service.Cascader

	userSvc       service.UserService
	projectSvc    service.ProjectService
	milestoneSvc  service.MilestoneService
	subtaskSvc    service.SubtaskService
	invitationSvc service.InvitationService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	st := testutil.NewTestStore(t)
	log := testutil.NewTestLogger()

	users := repository.NewDocUserRepo(st, log)
	projects := repository.NewDocProjectRepo(st, log)
	milestones := repository.NewDocMilestoneRepo(st, log)
	subtasks := repository.NewDocSubtaskRepo(st, log)
	invitations := repository.NewDocInvitationRepo(st, log)

	guard := authz.NewGuard(projects, milestones, subtasks)
	cascader := service.NewCascader(users, projects, milestones, subtasks, invitations, log)
	idp := testutil.NewFakeIdentity()

	return &env{
		users:       users,
		projects:    projects,
		milestones:  milestones,
		subtasks:    subtasks,
		invitations: invitations,
		idp:         idp,
		cascader:    cascader,

		userSvc:       service.NewUserService(users, idp, cascader),
		projectSvc:    service.NewProjectService(users, projects, guard, cascader),
		milestoneSvc:  service.NewMilestoneService(projects, milestones, guard, cascader),
		subtaskSvc:    service.NewSubtaskService(users, projects, milestones, subtasks, guard),
		invitationSvc: service.NewInvitationService(users, projects, invitations, guard, cascader, idp, notify.NoopNotifier{}),
	}
}

func milestoneCreate(projectID, name string, start, end int64) service.MilestoneCreate {
	return service.MilestoneCreate{
		ProjectID: projectID,
		Name:      name,
		Color:     "#BAE1FF",
		StartDate: start,
		EndDate:   end,
	}
}

// addUser persists the fixture and mirrors it in the identity provider.
func (e *env) addUser(t *testing.T, u *domain.User) {
	t.Helper()
	require.NoError(t, e.users.Create(context.Background(), u))
	e.idp.RegisterUser(u)
}

// addProject persists the fixture and records the membership on every member's
// own project list.
func (e *env) addProject(t *testing.T, p *domain.Project) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.projects.Create(ctx, p))
	for _, m := range p.Members {
		u, err := e.users.Find(ctx, m.UID)
		require.NoError(t, err)
		if u == nil {
			continue
		}
		require.NoError(t, e.users.SetProjects(ctx, m.UID, append(u.Projects, p.UID)))
	}
}
