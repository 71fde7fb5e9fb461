package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbrandeis/taskloom/internal/authz"
	"github.com/mbrandeis/taskloom/internal/domain"
	"github.com/mbrandeis/taskloom/internal/service"
	"github.com/mbrandeis/taskloom/internal/testutil"
)

func TestProjectCreate_SeedsOwnerMembership(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	ada := testutil.NewTestUser("Ada")
	e.addUser(t, ada)

	p, err := e.projectSvc.Create(ctx, ada.UID, service.ProjectCreate{Name: "apollo"})
	require.NoError(t, err)
	require.Len(t, p.Members, 1)
	assert.Equal(t, ada.UID, p.Members[0].UID)
	assert.Equal(t, domain.RoleOwner, p.Members[0].Role)
	assert.Empty(t, p.Milestones)
	assert.Empty(t, p.Invitations)

	u, err := e.users.Find(ctx, ada.UID)
	require.NoError(t, err)
	assert.Contains(t, u.Projects, p.UID)
}

func TestProjectGet_MembershipRules(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := testutil.NewTestUser("Ada")
	viewer := testutil.NewTestUser("Grace")
	outsider := testutil.NewTestUser("Edsger")
	e.addUser(t, owner)
	e.addUser(t, viewer)
	e.addUser(t, outsider)

	p := testutil.NewTestProject("apollo", owner, testutil.WithMember(viewer, domain.RoleViewer))
	e.addProject(t, p)

	got, err := e.projectSvc.Get(ctx, viewer.UID, p.UID)
	require.NoError(t, err, "viewers may read")
	assert.Equal(t, p.UID, got.UID)

	_, err = e.projectSvc.Get(ctx, outsider.UID, p.UID)
	assert.ErrorIs(t, err, authz.ErrUnauthorized)

	_, err = e.projectSvc.Get(ctx, owner.UID, "")
	require.Error(t, err)
	assert.Equal(t, "Project id not provided", err.Error())

	_, err = e.projectSvc.Get(ctx, owner.UID, "nope")
	require.Error(t, err)
	assert.Equal(t, "Project with provided id does not exist", err.Error())
}

func TestProjectUpdate_ViewerRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := testutil.NewTestUser("Ada")
	viewer := testutil.NewTestUser("Grace")
	e.addUser(t, owner)
	e.addUser(t, viewer)
	p := testutil.NewTestProject("apollo", owner, testutil.WithMember(viewer, domain.RoleViewer))
	e.addProject(t, p)

	name := "artemis"
	_, err := e.projectSvc.Update(ctx, viewer.UID, p.UID, domain.ProjectPatch{Name: &name})
	assert.ErrorIs(t, err, authz.ErrUnauthorized)

	got, err := e.projectSvc.Update(ctx, owner.UID, p.UID, domain.ProjectPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "artemis", got.Name)
}

func TestProjectLeave_SoleOwnerDeletesProject(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := testutil.NewTestUser("Ada")
	viewer := testutil.NewTestUser("Grace")
	e.addUser(t, owner)
	e.addUser(t, viewer)
	p := testutil.NewTestProject("apollo", owner, testutil.WithMember(viewer, domain.RoleViewer))
	e.addProject(t, p)

	require.NoError(t, e.projectSvc.Leave(ctx, owner.UID, p.UID))

	got, err := e.projects.Find(ctx, p.UID)
	require.NoError(t, err)
	assert.Nil(t, got, "a sole owner leaving tears the project down")

	v, err := e.users.Find(ctx, viewer.UID)
	require.NoError(t, err)
	assert.NotContains(t, v.Projects, p.UID)
}

func TestProjectLeave_MemberLeavesAndIsUnassigned(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := testutil.NewTestUser("Ada")
	editor := testutil.NewTestUser("Grace")
	e.addUser(t, owner)
	e.addUser(t, editor)
	p := testutil.NewTestProject("apollo", owner, testutil.WithMember(editor, domain.RoleEditor))
	e.addProject(t, p)

	m := testutil.NewTestMilestone(p.UID, "design", 100, 200)
	require.NoError(t, e.milestones.Create(ctx, m))
	s := testutil.NewTestSubtask(m.UID, "wireframes", owner, testutil.WithAssignee(editor))
	require.NoError(t, e.subtasks.Create(ctx, s))

	require.NoError(t, e.projectSvc.Leave(ctx, editor.UID, p.UID))

	gotP, err := e.projects.Find(ctx, p.UID)
	require.NoError(t, err)
	require.NotNil(t, gotP)
	assert.Nil(t, gotP.Member(editor.UID))

	gotS, err := e.subtasks.Find(ctx, s.UID)
	require.NoError(t, err)
	require.NotNil(t, gotS)
	assert.Nil(t, gotS.Assignee, "departing member is unassigned from subtasks")

	u, err := e.users.Find(ctx, editor.UID)
	require.NoError(t, err)
	assert.NotContains(t, u.Projects, p.UID)
}

func TestProjectLeave_NonMemberRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := testutil.NewTestUser("Ada")
	outsider := testutil.NewTestUser("Edsger")
	e.addUser(t, owner)
	e.addUser(t, outsider)
	p := testutil.NewTestProject("apollo", owner)
	e.addProject(t, p)

	err := e.projectSvc.Leave(ctx, outsider.UID, p.UID)
	assert.ErrorIs(t, err, service.ErrNotAMember)
}

func TestProjectListForUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	ada := testutil.NewTestUser("Ada")
	e.addUser(t, ada)

	p1, err := e.projectSvc.Create(ctx, ada.UID, service.ProjectCreate{Name: "apollo"})
	require.NoError(t, err)
	p2, err := e.projectSvc.Create(ctx, ada.UID, service.ProjectCreate{Name: "gemini"})
	require.NoError(t, err)

	list, err := e.projectSvc.ListForUser(ctx, ada.UID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	ids := []string{list[0].UID, list[1].UID}
	assert.Contains(t, ids, p1.UID)
	assert.Contains(t, ids, p2.UID)
}
