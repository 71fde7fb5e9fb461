package repository

import "errors"

// Collection names in the document store.
const (
	ColUsers       = "users"
	ColProjects    = "projects"
	ColMilestones  = "milestones"
	ColSubtasks    = "subtasks"
	ColInvitations = "invitations"
)

// ErrEmptyPatch rejects updates that carry no fields. Enforced uniformly for
// User/Project/Milestone/Subtask/Invitation.
var ErrEmptyPatch = errors.New("Update request must be a non-empty partial")
