// Package rbac implements the permission model shared by administrator and
// member accounts: a flat set of boolean capability flags gated behind a
// general administrative flag.
package rbac

// Capability names accepted by the permission gate.
const (
	CapEvents        = "events"
	CapAnnouncements = "announcements"
	CapRegistrations = "registrations"
	CapTeams         = "teams"
)

// PermissionSet holds the capability flags stored on an account record.
// The JSON field names match what the admin panel client sends and renders.
type PermissionSet struct {
	IsAdmin                bool `json:"isAdmin"`
	CanManageEvents        bool `json:"canManageEvents"`
	CanManageAnnouncements bool `json:"canManageAnnouncements"`
	CanViewRegistrations   bool `json:"canViewRegistrations"`
	CanManageTeams         bool `json:"canManageTeams"`
}

// FullPermissions returns a set with every flag granted.
func FullPermissions() PermissionSet {
	return PermissionSet{
		IsAdmin:                true,
		CanManageEvents:        true,
		CanManageAnnouncements: true,
		CanViewRegistrations:   true,
		CanManageTeams:         true,
	}
}

// Allows reports whether the set grants the named capability. The general
// administrative flag is checked separately by the gate; this only resolves
// the specific flag.
func (p PermissionSet) Allows(capability string) bool {
	switch capability {
	case CapEvents:
		return p.CanManageEvents
	case CapAnnouncements:
		return p.CanManageAnnouncements
	case CapRegistrations:
		return p.CanViewRegistrations
	case CapTeams:
		return p.CanManageTeams
	default:
		return false
	}
}

// DeriveEffectivePermissions applies the grant rule enforced before every
// persist: holding any specific capability implies dashboard access, so the
// general administrative flag is forced on.
func DeriveEffectivePermissions(p PermissionSet) PermissionSet {
	if p.CanManageEvents || p.CanManageAnnouncements || p.CanViewRegistrations || p.CanManageTeams {
		p.IsAdmin = true
	}
	return p
}

// AccountKind distinguishes the two backing stores an authenticated identity
// can originate from.
type AccountKind string

const (
	KindAdministrator AccountKind = "admin"
	KindMember        AccountKind = "member"
)

// Principal describes the authenticated actor for the current request. It is
// rebuilt from storage on every request, never from token claims.
type Principal struct {
	ID          int64
	Kind        AccountKind
	FullName    string
	Email       string
	SuperAdmin  bool
	Permissions PermissionSet
}
