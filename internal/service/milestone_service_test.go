package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbrandeis/taskloom/internal/authz"
	"github.com/mbrandeis/taskloom/internal/domain"
	"github.com/mbrandeis/taskloom/internal/testutil"
)

func TestMilestoneCreate_RegistersOnProject(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := testutil.NewTestUser("Ada")
	e.addUser(t, owner)
	p := testutil.NewTestProject("apollo", owner)
	e.addProject(t, p)

	m, err := e.milestoneSvc.Create(ctx, owner.UID, milestoneCreate(p.UID, "design", 100, 200))
	require.NoError(t, err)
	assert.Equal(t, p.UID, m.ProjectID)

	gotP, err := e.projects.Find(ctx, p.UID)
	require.NoError(t, err)
	assert.Contains(t, gotP.Milestones, m.UID)
}

func TestMilestoneCreate_RejectsInvertedDates(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := testutil.NewTestUser("Ada")
	e.addUser(t, owner)
	p := testutil.NewTestProject("apollo", owner)
	e.addProject(t, p)

	_, err := e.milestoneSvc.Create(ctx, owner.UID, milestoneCreate(p.UID, "design", 200, 100))
	require.Error(t, err)
	assert.Equal(t, "Start date must be sooner than end date.", err.Error())

	// Nothing was persisted and nothing was registered on the project.
	gotP, err := e.projects.Find(ctx, p.UID)
	require.NoError(t, err)
	assert.Empty(t, gotP.Milestones)
}

func TestMilestoneUpdate_RejectsInvertedDates(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := testutil.NewTestUser("Ada")
	e.addUser(t, owner)
	p := testutil.NewTestProject("apollo", owner)
	e.addProject(t, p)

	m, err := e.milestoneSvc.Create(ctx, owner.UID, milestoneCreate(p.UID, "design", 100, 200))
	require.NoError(t, err)

	badStart := int64(500)
	_, err = e.milestoneSvc.Update(ctx, owner.UID, m.UID, domain.MilestonePatch{StartDate: &badStart})
	require.Error(t, err)
	assert.Equal(t, "Start date must be sooner than end date.", err.Error())

	got, err := e.milestones.Find(ctx, m.UID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.StartDate, "rejected update must not persist")

	newEnd := int64(300)
	updated, err := e.milestoneSvc.Update(ctx, owner.UID, m.UID, domain.MilestonePatch{EndDate: &newEnd})
	require.NoError(t, err)
	assert.Equal(t, int64(300), updated.EndDate)
}

func TestMilestoneGet_NonMemberRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := testutil.NewTestUser("Ada")
	outsider := testutil.NewTestUser("Edsger")
	e.addUser(t, owner)
	e.addUser(t, outsider)
	p := testutil.NewTestProject("apollo", owner)
	e.addProject(t, p)

	m, err := e.milestoneSvc.Create(ctx, owner.UID, milestoneCreate(p.UID, "design", 100, 200))
	require.NoError(t, err)

	_, err = e.milestoneSvc.Get(ctx, outsider.UID, m.UID)
	assert.ErrorIs(t, err, authz.ErrUnauthorized)

	_, err = e.milestoneSvc.Get(ctx, owner.UID, "nope")
	assert.ErrorIs(t, err, authz.ErrMilestoneNotFound)
}

func TestMilestoneListByProject(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := testutil.NewTestUser("Ada")
	viewer := testutil.NewTestUser("Grace")
	e.addUser(t, owner)
	e.addUser(t, viewer)
	p := testutil.NewTestProject("apollo", owner, testutil.WithMember(viewer, domain.RoleViewer))
	other := testutil.NewTestProject("gemini", owner)
	e.addProject(t, p)
	e.addProject(t, other)

	m1, err := e.milestoneSvc.Create(ctx, owner.UID, milestoneCreate(p.UID, "design", 100, 200))
	require.NoError(t, err)
	_, err = e.milestoneSvc.Create(ctx, owner.UID, milestoneCreate(other.UID, "kickoff", 100, 200))
	require.NoError(t, err)

	list, err := e.milestoneSvc.ListByProject(ctx, viewer.UID, p.UID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, m1.UID, list[0].UID)
}
