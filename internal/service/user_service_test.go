package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbrandeis/taskloom/internal/domain"
	"github.com/mbrandeis/taskloom/internal/identity"
	"github.com/mbrandeis/taskloom/internal/repository"
	"github.com/mbrandeis/taskloom/internal/service"
	"github.com/mbrandeis/taskloom/internal/testutil"
)

func TestSignUp_CreatesFromIdentityAccount(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.idp.Register(ctx, identity.Account{
		UID:   "ada-1",
		Email: "ada@example.com",
		Name:  "Ada",
	}))

	u, err := e.userSvc.SignUp(ctx, "ada-1")
	require.NoError(t, err)
	assert.Equal(t, "ada-1", u.UID)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "Ada", u.Name)
	assert.NotEmpty(t, u.AvatarColor)
	assert.Empty(t, u.Projects)

	_, err = e.userSvc.SignUp(ctx, "ada-1")
	assert.ErrorIs(t, err, service.ErrUserExists)
}

func TestSignUp_UnknownSubjectRejected(t *testing.T) {
	e := newEnv(t)

	_, err := e.userSvc.SignUp(context.Background(), "nobody")
	assert.ErrorIs(t, err, service.ErrNoIdentityAccount)
}

func TestUserGet_NotFound(t *testing.T) {
	e := newEnv(t)

	_, err := e.userSvc.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, "User not found", err.Error())
}

func TestUpdateProfile_SelfOnly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	ada := testutil.NewTestUser("Ada")
	grace := testutil.NewTestUser("Grace")
	e.addUser(t, ada)
	e.addUser(t, grace)

	name := "Mallory"
	_, err := e.userSvc.UpdateProfile(ctx, ada.UID, grace.UID, domain.UserPatch{Name: &name})
	require.Error(t, err)
	assert.Equal(t, "Unauthorized to access this endpoint", err.Error())

	err = e.userSvc.Delete(ctx, ada.UID, grace.UID)
	require.Error(t, err)
	assert.Equal(t, "Unauthorized to access this endpoint", err.Error())
}

func TestUpdateProfile_EmptyPatchRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	ada := testutil.NewTestUser("Ada")
	e.addUser(t, ada)

	_, err := e.userSvc.UpdateProfile(ctx, ada.UID, ada.UID, domain.UserPatch{})
	assert.ErrorIs(t, err, repository.ErrEmptyPatch)
}

func TestUpdateProfile_AppliesPartial(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	ada := testutil.NewTestUser("Ada")
	e.addUser(t, ada)

	title := "Engineer"
	u, err := e.userSvc.UpdateProfile(ctx, ada.UID, ada.UID, domain.UserPatch{JobTitle: &title})
	require.NoError(t, err)
	assert.Equal(t, "Engineer", u.JobTitle)
	assert.Equal(t, "Ada", u.Name, "untouched fields survive")
	assert.Equal(t, ada.Email, u.Email)
}
