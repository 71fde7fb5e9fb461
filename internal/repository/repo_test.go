package repository

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbrandeis/taskloom/internal/domain"
	"github.com/mbrandeis/taskloom/internal/store"
	"github.com/mbrandeis/taskloom/internal/testutil"
)

func setupStore(t *testing.T) (store.Store, *slog.Logger) {
	t.Helper()
	return testutil.NewTestStore(t), testutil.NewTestLogger()
}

func TestUserRepo_Roundtrip(t *testing.T) {
	st, log := setupStore(t)
	repo := NewDocUserRepo(st, log)
	ctx := context.Background()

	u := testutil.NewTestUser("Ada", testutil.WithEmail("ada@example.com"))
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.Find(ctx, u.UID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.NotEmpty(t, got.AvatarColor)

	byEmail, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, u.UID, byEmail.UID)

	// Email matching is case-sensitive exact match.
	byEmail, err = repo.FindByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Nil(t, byEmail)
}

func TestUserRepo_FindMissingReturnsNil(t *testing.T) {
	st, log := setupStore(t)
	repo := NewDocUserRepo(st, log)

	got, err := repo.Find(context.Background(), "missing")
	require.NoError(t, err, "missing id is a null result, not an error")
	assert.Nil(t, got)
}

func TestUserRepo_SetProjects(t *testing.T) {
	st, log := setupStore(t)
	repo := NewDocUserRepo(st, log)
	ctx := context.Background()

	u := testutil.NewTestUser("Ada")
	require.NoError(t, repo.Create(ctx, u))

	require.NoError(t, repo.SetProjects(ctx, u.UID, []string{"p1", "p2"}))

	got, err := repo.Find(ctx, u.UID)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, got.Projects)
}

func TestUserRepo_ListByProject(t *testing.T) {
	st, log := setupStore(t)
	repo := NewDocUserRepo(st, log)
	ctx := context.Background()

	ada := testutil.NewTestUser("Ada")
	ben := testutil.NewTestUser("Ben")
	eva := testutil.NewTestUser("Eva")
	for _, u := range []*domain.User{ada, ben, eva} {
		require.NoError(t, repo.Create(ctx, u))
	}
	require.NoError(t, repo.SetProjects(ctx, ada.UID, []string{"p1", "p2"}))
	require.NoError(t, repo.SetProjects(ctx, ben.UID, []string{"p2"}))

	got, err := repo.ListByProject(ctx, "p2")
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = repo.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ada.UID, got[0].UID)

	got, err = repo.ListByProject(ctx, "p9")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUserRepo_UpdateAppliesPartial(t *testing.T) {
	st, log := setupStore(t)
	repo := NewDocUserRepo(st, log)
	ctx := context.Background()

	u := testutil.NewTestUser("Ada", testutil.WithPhotoURL("http://old"))
	require.NoError(t, repo.Create(ctx, u))

	name := "Ada L."
	require.NoError(t, repo.Update(ctx, u.UID, domain.UserPatch{Name: &name}))

	got, err := repo.Find(ctx, u.UID)
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", got.Name)
	assert.Equal(t, "http://old", got.PhotoURL, "untouched fields survive the patch")
}

func TestUserRepo_UpdateMissingIDFails(t *testing.T) {
	st, log := setupStore(t)
	repo := NewDocUserRepo(st, log)

	name := "Ghost"
	err := repo.Update(context.Background(), "missing", domain.UserPatch{Name: &name})
	assert.Error(t, err, "writes targeting a missing id fail")
}

func TestMilestoneRepo_ListByProject(t *testing.T) {
	st, log := setupStore(t)
	repo := NewDocMilestoneRepo(st, log)
	ctx := context.Background()

	m1 := testutil.NewTestMilestone("p1", "Alpha", 1, 2)
	m2 := testutil.NewTestMilestone("p1", "Beta", 3, 4)
	m3 := testutil.NewTestMilestone("p2", "Other", 5, 6)
	for _, m := range []*domain.Milestone{m1, m2, m3} {
		require.NoError(t, repo.Create(ctx, m))
	}

	got, err := repo.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.NoError(t, repo.DeleteBatch(ctx, []string{m1.UID, m2.UID}))
	got, err = repo.ListByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSubtaskRepo_ListByAssigneeAndReporter(t *testing.T) {
	st, log := setupStore(t)
	repo := NewDocSubtaskRepo(st, log)
	ctx := context.Background()

	ada := testutil.NewTestUser("Ada")
	ben := testutil.NewTestUser("Ben")

	s1 := testutil.NewTestSubtask("m1", "one", ada, testutil.WithAssignee(ben))
	s2 := testutil.NewTestSubtask("m1", "two", ben)
	s3 := testutil.NewTestSubtask("m2", "three", ada, testutil.WithAssignee(ada))
	for _, s := range []*domain.Subtask{s1, s2, s3} {
		require.NoError(t, repo.Create(ctx, s))
	}

	byAssignee, err := repo.ListByAssignee(ctx, ben.UID)
	require.NoError(t, err)
	require.Len(t, byAssignee, 1)
	assert.Equal(t, s1.UID, byAssignee[0].UID)

	byReporter, err := repo.ListByReporter(ctx, ada.UID)
	require.NoError(t, err)
	assert.Len(t, byReporter, 2)

	byMilestone, err := repo.ListByMilestone(ctx, "m1")
	require.NoError(t, err)
	assert.Len(t, byMilestone, 2)
}

func TestSubtaskRepo_ClearAssignee(t *testing.T) {
	st, log := setupStore(t)
	repo := NewDocSubtaskRepo(st, log)
	ctx := context.Background()

	ada := testutil.NewTestUser("Ada")
	s := testutil.NewTestSubtask("m1", "one", ada, testutil.WithAssignee(ada))
	require.NoError(t, repo.Create(ctx, s))

	require.NoError(t, repo.Update(ctx, s.UID, domain.SubtaskPatch{ClearAssignee: true}))

	got, err := repo.Find(ctx, s.UID)
	require.NoError(t, err)
	assert.Nil(t, got.Assignee)
	assert.Equal(t, ada.UID, got.Reporter.UID, "reporter untouched by unassignment")
}

func TestInvitationRepo_ListByEmail(t *testing.T) {
	st, log := setupStore(t)
	repo := NewDocInvitationRepo(st, log)
	ctx := context.Background()

	owner := testutil.NewTestUser("Ada")
	proj := testutil.NewTestProject("Launch", owner)

	inv1 := testutil.NewTestInvitation(proj, "b@x.com", domain.RoleEditor, owner.Email)
	inv2 := testutil.NewTestInvitation(proj, "c@x.com", domain.RoleViewer, owner.Email)
	require.NoError(t, repo.Create(ctx, inv1))
	require.NoError(t, repo.Create(ctx, inv2))

	got, err := repo.ListByEmail(ctx, "b@x.com")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, inv1.UID, got[0].UID)
	assert.False(t, got[0].Accepted)

	byProject, err := repo.ListByProject(ctx, proj.UID)
	require.NoError(t, err)
	assert.Len(t, byProject, 2)
}

// Empty partials are rejected uniformly for every entity type, with no write
// performed.
func TestUpdate_EmptyPatchRejected(t *testing.T) {
	st, log := setupStore(t)
	ctx := context.Background()

	users := NewDocUserRepo(st, log)
	projects := NewDocProjectRepo(st, log)
	milestones := NewDocMilestoneRepo(st, log)
	subtasks := NewDocSubtaskRepo(st, log)
	invitations := NewDocInvitationRepo(st, log)

	owner := testutil.NewTestUser("Ada")
	proj := testutil.NewTestProject("Launch", owner)
	ms := testutil.NewTestMilestone(proj.UID, "Beta", 1, 2)
	task := testutil.NewTestSubtask(ms.UID, "one", owner)
	inv := testutil.NewTestInvitation(proj, "b@x.com", domain.RoleEditor, owner.Email)

	require.NoError(t, users.Create(ctx, owner))
	require.NoError(t, projects.Create(ctx, proj))
	require.NoError(t, milestones.Create(ctx, ms))
	require.NoError(t, subtasks.Create(ctx, task))
	require.NoError(t, invitations.Create(ctx, inv))

	assert.ErrorIs(t, users.Update(ctx, owner.UID, domain.UserPatch{}), ErrEmptyPatch)
	assert.ErrorIs(t, projects.Update(ctx, proj.UID, domain.ProjectPatch{}), ErrEmptyPatch)
	assert.ErrorIs(t, milestones.Update(ctx, ms.UID, domain.MilestonePatch{}), ErrEmptyPatch)
	assert.ErrorIs(t, subtasks.Update(ctx, task.UID, domain.SubtaskPatch{}), ErrEmptyPatch)
	assert.ErrorIs(t, invitations.Update(ctx, inv.UID, domain.InvitationPatch{}), ErrEmptyPatch)

	// The rejected update must not have touched the stored document.
	got, err := users.Find(ctx, owner.UID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
}
