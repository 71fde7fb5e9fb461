package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mbrandeis/taskloom/internal/authz"
	"github.com/mbrandeis/taskloom/internal/domain"
	"github.com/mbrandeis/taskloom/internal/identity"
	"github.com/mbrandeis/taskloom/internal/notify"
	"github.com/mbrandeis/taskloom/internal/repository"
)

type invitationService struct {
	users       repository.UserRepo
	projects    repository.ProjectRepo
	invitations repository.InvitationRepo
	guard       *authz.Guard
	cascader    *Cascader
	idp         identity.Provider
	notifier    notify.Notifier
	obs         UseCaseObserver
}

// NewInvitationService creates the invitation service.
func NewInvitationService(
	users repository.UserRepo,
	projects repository.ProjectRepo,
	invitations repository.InvitationRepo,
	guard *authz.Guard,
	cascader *Cascader,
	idp identity.Provider,
	notifier notify.Notifier,
	observers ...UseCaseObserver,
) InvitationService {
	if notifier == nil {
		notifier = notify.NoopNotifier{}
	}
	return &invitationService{
		users:       users,
		projects:    projects,
		invitations: invitations,
		guard:       guard,
		cascader:    cascader,
		idp:         idp,
		notifier:    notifier,
		obs:         useCaseObserverOrNoop(observers),
	}
}

// Create invites an email address to a project. The invite is rejected when a
// pending invitation for the same project and email already exists, or when
// the email already belongs to a member.
func (s *invitationService) Create(ctx context.Context, subjectID string, req InvitationCreate) (inv *domain.Invitation, err error) {
	defer observe(ctx, s.obs, "invitation_create", &err, map[string]any{"project": req.ProjectID})()

	p, err := s.guard.ProjectForSubject(ctx, subjectID, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if !domain.ValidRoles[string(req.Role)] {
		return nil, ErrInvalidRole
	}

	pending, err := s.invitations.ListByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	for _, existing := range pending {
		if existing.ProjectID == p.UID && existing.Pending() {
			return nil, ErrAlreadyInvited
		}
	}

	for _, m := range p.Members {
		acct, err := s.idp.UserByID(ctx, m.UID)
		if err != nil {
			return nil, err
		}
		if acct != nil && acct.Email == req.Email {
			return nil, MemberExistsError{Email: req.Email}
		}
	}

	invitedBy := ""
	if acct, err := s.idp.UserByID(ctx, subjectID); err == nil && acct != nil {
		invitedBy = acct.Email
	}

	inv = &domain.Invitation{
		UID:         uuid.New().String(),
		ProjectID:   p.UID,
		ProjectName: p.Name,
		Email:       req.Email,
		Role:        req.Role,
		InvitedBy:   invitedBy,
		Accepted:    false,
		CreatedAt:   time.Now().UTC(),
	}
	if err = s.invitations.Create(ctx, inv); err != nil {
		return nil, err
	}
	s.cascader.InvitationCreated(ctx, p, inv)
	s.notifier.InviteSent(ctx, inv)
	return inv, nil
}

// ListForSubject returns the pending invitations addressed to the subject's
// email.
func (s *invitationService) ListForSubject(ctx context.Context, subjectID string) ([]*domain.Invitation, error) {
	u, err := s.users.Find(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	all, err := s.invitations.ListByEmail(ctx, u.Email)
	if err != nil {
		return nil, err
	}
	pending := make([]*domain.Invitation, 0, len(all))
	for _, inv := range all {
		if inv.Pending() {
			pending = append(pending, inv)
		}
	}
	return pending, nil
}

// Accept joins the subject to the invited project with the invited role.
func (s *invitationService) Accept(ctx context.Context, subjectID, invitationID string) (err error) {
	defer observe(ctx, s.obs, "invitation_accept", &err, map[string]any{"invitation": invitationID})()

	u, inv, err := s.resolve(ctx, subjectID, invitationID)
	if err != nil {
		return err
	}
	return s.cascader.InvitationAccepted(ctx, inv, u)
}

// Decline discards the invitation and unregisters it from the project.
func (s *invitationService) Decline(ctx context.Context, subjectID, invitationID string) (err error) {
	defer observe(ctx, s.obs, "invitation_decline", &err, map[string]any{"invitation": invitationID})()

	_, inv, err := s.resolve(ctx, subjectID, invitationID)
	if err != nil {
		return err
	}
	p, err := s.projects.Find(ctx, inv.ProjectID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNoProject
	}
	return s.cascader.InvitationDeclined(ctx, inv, p)
}

// Delete revokes an invitation from the project side. Only members with
// write permission on the project may revoke, and the project's invitation
// list is deliberately left alone.
func (s *invitationService) Delete(ctx context.Context, subjectID, invitationID string) (err error) {
	defer observe(ctx, s.obs, "invitation_delete", &err, map[string]any{"invitation": invitationID})()

	inv, err := s.invitations.Find(ctx, invitationID)
	if err != nil {
		return err
	}
	if inv == nil {
		return ErrNoInvitation
	}
	if _, err = s.guard.ProjectForSubject(ctx, subjectID, inv.ProjectID); err != nil {
		return err
	}
	return s.invitations.Delete(ctx, invitationID)
}

// resolve loads the subject's user and matches the invitation id against the
// pending invitations addressed to their email. An invitation addressed to a
// different email, or already accepted, is not found.
func (s *invitationService) resolve(ctx context.Context, subjectID, invitationID string) (*domain.User, *domain.Invitation, error) {
	u, err := s.users.Find(ctx, subjectID)
	if err != nil {
		return nil, nil, err
	}
	if u == nil {
		return nil, nil, ErrUserNotFound
	}
	invs, err := s.invitations.ListByEmail(ctx, u.Email)
	if err != nil {
		return nil, nil, err
	}
	for _, inv := range invs {
		if inv.UID == invitationID && inv.Pending() {
			return u, inv, nil
		}
	}
	return nil, nil, ErrNoInvitation
}
