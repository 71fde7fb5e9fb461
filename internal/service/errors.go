package service

import (
	"errors"
	"fmt"
)

// User-facing error strings. These surface verbatim in API responses.
var (
	ErrUserNotFound      = errors.New("User not found")
	ErrUserExists        = errors.New("User already exists")
	ErrNoInvitation      = errors.New("No invitation found")
	ErrNoProject         = errors.New("No project found")
	ErrAlreadyInvited    = errors.New("User already invited")
	ErrNotAMember        = errors.New("User is not a member of this project")
	ErrNoIdentityAccount = errors.New("No identity account for this subject")
	ErrInvalidRole       = errors.New("Invalid role")
	ErrInvalidStatus     = errors.New("Invalid status")
	ErrAssigneeNotMember = errors.New("Assignee must be a project member")
)

// MemberExistsError rejects inviting an email that already belongs to a
// project member.
type MemberExistsError struct {
	Email string
}

func (e MemberExistsError) Error() string {
	return fmt.Sprintf("User with email: %s is already part of this project", e.Email)
}
