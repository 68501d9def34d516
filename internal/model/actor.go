package model

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleVendor   Role = "VENDOR"
	RoleMechanic Role = "MECHANIC"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleVendor, RoleMechanic:
		return true
	default:
		return false
	}
}

// Actor is the caller of an engine operation. It is passed explicitly to every
// authorization decision.
type Actor struct {
	ID int64
	// SessionID scopes the one-edit-in-flight flags.
	SessionID string
	Role      Role
	// MechanicID links a MECHANIC actor to the mechanic record orders are assigned to.
	MechanicID *int64
}

func (a Actor) IsMechanic() bool { return a.Role == RoleMechanic }

// IsAdministrator is true for the administrator and vendor roles.
func (a Actor) IsAdministrator() bool { return a.Role == RoleAdmin || a.Role == RoleVendor }

func (a Actor) Validate() error {
	if !a.Role.Valid() {
		return NewValidationError("role", "unknown role "+string(a.Role))
	}
	if a.IsMechanic() && a.MechanicID == nil {
		return NewValidationError("mechanic_id", "mechanic actor without mechanic id")
	}
	if a.SessionID == "" {
		return NewValidationError("session_id", "empty session id")
	}
	return nil
}
