package service

import (
	"context"
	"time"

	"github.com/mbrandeis/taskloom/internal/authz"
	"github.com/mbrandeis/taskloom/internal/domain"
	"github.com/mbrandeis/taskloom/internal/identity"
	"github.com/mbrandeis/taskloom/internal/repository"
)

type userService struct {
	users    repository.UserRepo
	idp      identity.Provider
	cascader *Cascader
	obs      UseCaseObserver
}

// NewUserService creates the user service.
func NewUserService(
	users repository.UserRepo,
	idp identity.Provider,
	cascader *Cascader,
	observers ...UseCaseObserver,
) UserService {
	return &userService{
		users:    users,
		idp:      idp,
		cascader: cascader,
		obs:      useCaseObserverOrNoop(observers),
	}
}

// SignUp materializes the application-side user document for an authenticated
// subject. The identity account is the source of truth for email and name;
// the avatar color is assigned here, once, at creation.
func (s *userService) SignUp(ctx context.Context, subjectID string) (u *domain.User, err error) {
	defer observe(ctx, s.obs, "user_sign_up", &err, map[string]any{"user": subjectID})()

	existing, err := s.users.Find(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	acct, err := s.idp.UserByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, ErrNoIdentityAccount
	}

	u = &domain.User{
		UID:           subjectID,
		Email:         acct.Email,
		Name:          acct.Name,
		AvatarColor:   domain.PastelColor(),
		EmailVerified: acct.EmailVerified,
		Projects:      []string{},
		CreatedAt:     time.Now().UTC(),
	}
	if err = s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UpdateProfile applies a partial update to the subject's own document. When
// the patch touches name or photo the change fans out to every member and
// subtask snapshot embedding this user.
func (s *userService) UpdateProfile(ctx context.Context, subjectID, userID string, patch domain.UserPatch) (u *domain.User, err error) {
	defer observe(ctx, s.obs, "user_update_profile", &err, map[string]any{"user": userID})()

	if err = authz.CheckSelf(subjectID, userID); err != nil {
		return nil, err
	}
	if err = s.users.Update(ctx, userID, patch); err != nil {
		return nil, err
	}
	u, err = s.users.Find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if patch.TouchesProfile() {
		s.cascader.ProfileUpdated(ctx, u)
	}
	return u, nil
}

// Delete removes the subject's own account: owned and sole-membership
// projects are deleted first, then the user document, then the identity
// account.
func (s *userService) Delete(ctx context.Context, subjectID, userID string) (err error) {
	defer observe(ctx, s.obs, "user_delete", &err, map[string]any{"user": userID})()

	if err = authz.CheckSelf(subjectID, userID); err != nil {
		return err
	}
	u, err := s.users.Find(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	s.cascader.UserDeleted(ctx, u)
	if err = s.users.Delete(ctx, userID); err != nil {
		return err
	}
	return s.idp.DeleteAccount(ctx, userID)
}
