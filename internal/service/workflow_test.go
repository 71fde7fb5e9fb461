package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbrandeis/taskloom/internal/domain"
	"github.com/mbrandeis/taskloom/internal/identity"
	"github.com/mbrandeis/taskloom/internal/service"
)

// Walks the whole lifecycle: sign up, create, invite, accept, plan, assign,
// rename, and tear down, checking the cross-references at every step.
func TestWorkflow_FullProjectLifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.idp.Register(ctx, identity.Account{UID: "ada", Email: "ada@example.com", Name: "Ada"}))
	require.NoError(t, e.idp.Register(ctx, identity.Account{UID: "grace", Email: "grace@example.com", Name: "Grace"}))

	ada, err := e.userSvc.SignUp(ctx, "ada")
	require.NoError(t, err)
	grace, err := e.userSvc.SignUp(ctx, "grace")
	require.NoError(t, err)

	p, err := e.projectSvc.Create(ctx, ada.UID, service.ProjectCreate{Name: "apollo"})
	require.NoError(t, err)

	inv, err := e.invitationSvc.Create(ctx, ada.UID, service.InvitationCreate{
		ProjectID: p.UID,
		Email:     grace.Email,
		Role:      domain.RoleEditor,
	})
	require.NoError(t, err)
	require.NoError(t, e.invitationSvc.Accept(ctx, grace.UID, inv.UID))

	m, err := e.milestoneSvc.Create(ctx, grace.UID, milestoneCreate(p.UID, "design", 100, 200))
	require.NoError(t, err)

	s, err := e.subtaskSvc.Create(ctx, grace.UID, service.SubtaskCreate{
		MilestoneID: m.UID,
		Name:        "wireframes",
		AssigneeUID: ada.UID,
	})
	require.NoError(t, err)
	assert.Equal(t, grace.UID, s.Reporter.UID)

	name := "Ada Lovelace"
	_, err = e.userSvc.UpdateProfile(ctx, ada.UID, ada.UID, domain.UserPatch{Name: &name})
	require.NoError(t, err)

	gotS, err := e.subtasks.Find(ctx, s.UID)
	require.NoError(t, err)
	require.NotNil(t, gotS.Assignee)
	assert.Equal(t, name, gotS.Assignee.Name)

	gotP, err := e.projects.Find(ctx, p.UID)
	require.NoError(t, err)
	assert.Equal(t, name, gotP.Member(ada.UID).Name)

	// Ada owns the project, so deleting her account takes it down entirely.
	require.NoError(t, e.userSvc.Delete(ctx, ada.UID, ada.UID))

	gone, err := e.projects.Find(ctx, p.UID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	goneM, err := e.milestones.Find(ctx, m.UID)
	require.NoError(t, err)
	assert.Nil(t, goneM)

	goneS, err := e.subtasks.Find(ctx, s.UID)
	require.NoError(t, err)
	assert.Nil(t, goneS)

	g, err := e.users.Find(ctx, grace.UID)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Empty(t, g.Projects)

	list, err := e.projectSvc.ListForUser(ctx, grace.UID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
