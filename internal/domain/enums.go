package domain

type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleEditor Role = "EDITOR"
	RoleViewer Role = "VIEWER"
)

// ValidRoles is the canonical set of accepted role strings.
var ValidRoles = map[string]bool{
	"OWNER": true, "EDITOR": true, "VIEWER": true,
}

// CanWrite reports whether the role may mutate a project and its children.
// VIEWER is read-only.
func (r Role) CanWrite() bool {
	return r == RoleOwner || r == RoleEditor
}

type SubtaskStatus string

const (
	SubtaskToDo       SubtaskStatus = "ToDo"
	SubtaskInProgress SubtaskStatus = "InProgress"
	SubtaskDone       SubtaskStatus = "Done"
)

// ValidSubtaskStatuses is the canonical set of accepted subtask status strings.
var ValidSubtaskStatuses = map[string]bool{
	"ToDo": true, "InProgress": true, "Done": true,
}
