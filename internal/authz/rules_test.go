package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbrandeis/taskloom/internal/domain"
	"github.com/mbrandeis/taskloom/internal/repository"
	"github.com/mbrandeis/taskloom/internal/testutil"
)

func TestCanManipulate(t *testing.T) {
	tests := []struct {
		name    string
		members []domain.ProjectMember
		subject string
		want    bool
	}{
		{"empty membership", nil, "u1", false},
		{"owner", []domain.ProjectMember{{UID: "u1", Role: domain.RoleOwner}}, "u1", true},
		{"editor", []domain.ProjectMember{{UID: "u1", Role: domain.RoleEditor}}, "u1", true},
		{"viewer is read-only", []domain.ProjectMember{{UID: "u1", Role: domain.RoleViewer}}, "u1", false},
		{"non-member among owners", []domain.ProjectMember{{UID: "u1", Role: domain.RoleOwner}}, "u2", false},
		{"viewer-only project", []domain.ProjectMember{{UID: "u1", Role: domain.RoleViewer}, {UID: "u2", Role: domain.RoleViewer}}, "u2", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &domain.Project{UID: "p1", Members: tc.members}
			assert.Equal(t, tc.want, CanManipulate(tc.subject, p))
		})
	}

	assert.False(t, CanManipulate("u1", nil), "nil project never allows")
}

func TestCheckSelf(t *testing.T) {
	assert.NoError(t, CheckSelf("u1", "u1"))

	err := CheckSelf("u1", "u2")
	require.Error(t, err)
	assert.Equal(t, "Unauthorized to access this endpoint", err.Error())
}

func newGuard(t *testing.T) (*Guard, repository.ProjectRepo, repository.MilestoneRepo, repository.SubtaskRepo) {
	t.Helper()
	st := testutil.NewTestStore(t)
	log := testutil.NewTestLogger()
	projects := repository.NewDocProjectRepo(st, log)
	milestones := repository.NewDocMilestoneRepo(st, log)
	subtasks := repository.NewDocSubtaskRepo(st, log)
	return NewGuard(projects, milestones, subtasks), projects, milestones, subtasks
}

func TestGuard_ProjectForSubject(t *testing.T) {
	guard, projects, _, _ := newGuard(t)
	ctx := context.Background()

	owner := testutil.NewTestUser("Ada")
	viewer := testutil.NewTestUser("Ben")
	proj := testutil.NewTestProject("Launch", owner, testutil.WithMember(viewer, domain.RoleViewer))
	require.NoError(t, projects.Create(ctx, proj))

	_, err := guard.ProjectForSubject(ctx, owner.UID, "")
	assert.ErrorIs(t, err, ErrProjectIDMissing)

	_, err = guard.ProjectForSubject(ctx, owner.UID, "no-such-project")
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, err = guard.ProjectForSubject(ctx, viewer.UID, proj.UID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	got, err := guard.ProjectForSubject(ctx, owner.UID, proj.UID)
	require.NoError(t, err)
	assert.Equal(t, proj.UID, got.UID)
}

func TestGuard_ProjectForMilestone(t *testing.T) {
	guard, projects, milestones, _ := newGuard(t)
	ctx := context.Background()

	owner := testutil.NewTestUser("Ada")
	proj := testutil.NewTestProject("Launch", owner)
	require.NoError(t, projects.Create(ctx, proj))

	ms := testutil.NewTestMilestone(proj.UID, "Beta", 100, 200)
	require.NoError(t, milestones.Create(ctx, ms))

	_, _, err := guard.ProjectForMilestone(ctx, owner.UID, "missing")
	assert.ErrorIs(t, err, ErrMilestoneNotFound)

	_, _, err = guard.ProjectForMilestone(ctx, "stranger", ms.UID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	p, m, err := guard.ProjectForMilestone(ctx, owner.UID, ms.UID)
	require.NoError(t, err)
	assert.Equal(t, proj.UID, p.UID)
	assert.Equal(t, ms.UID, m.UID)
}

func TestGuard_ProjectForSubtask(t *testing.T) {
	guard, projects, milestones, subtasks := newGuard(t)
	ctx := context.Background()

	owner := testutil.NewTestUser("Ada")
	proj := testutil.NewTestProject("Launch", owner)
	require.NoError(t, projects.Create(ctx, proj))

	ms := testutil.NewTestMilestone(proj.UID, "Beta", 100, 200)
	require.NoError(t, milestones.Create(ctx, ms))

	task := testutil.NewTestSubtask(ms.UID, "Wire the API", owner)
	require.NoError(t, subtasks.Create(ctx, task))

	_, _, err := guard.ProjectForSubtask(ctx, owner.UID, "missing")
	assert.ErrorIs(t, err, ErrSubtaskNotFound)

	_, _, err = guard.ProjectForSubtask(ctx, "stranger", task.UID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	p, s, err := guard.ProjectForSubtask(ctx, owner.UID, task.UID)
	require.NoError(t, err)
	assert.Equal(t, proj.UID, p.UID)
	assert.Equal(t, task.UID, s.UID)
}

// A milestone orphaned by a deleted project resolves to the project-not-found
// error, not a membership failure.
func TestGuard_OrphanedMilestone(t *testing.T) {
	guard, _, milestones, _ := newGuard(t)
	ctx := context.Background()

	ms := testutil.NewTestMilestone("deleted-project", "Orphan", 1, 2)
	require.NoError(t, milestones.Create(ctx, ms))

	_, _, err := guard.ProjectForMilestone(ctx, "u1", ms.UID)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
