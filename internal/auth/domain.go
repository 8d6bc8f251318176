package auth

import (
	"time"

	"github.com/css-society/portal/internal/rbac"
)

// Administrator is a root-tier account. It is provisioned out-of-band (seed
// script) and never created or deleted through the HTTP surface.
type Administrator struct {
	ID           int64
	Email        string
	PasswordHash string
	SuperAdmin   bool
	// Permissions is nil when the stored record predates the flag columns.
	// Administrators default to full privileges in that case.
	Permissions *rbac.PermissionSet
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MemberAccount is the authentication view of an approved membership record.
// The member feature package owns the full record; this projection carries
// only what login and the gate need.
type MemberAccount struct {
	ID           int64
	FullName     string
	Email        string
	PasswordHash string
	Approved     bool
	Permissions  rbac.PermissionSet
}

// Profile is the normalized account shape returned to the client on login.
// Member records store the address under a different column; the resolver
// maps both stores onto the single Email field.
type Profile struct {
	ID          int64               `json:"id"`
	Kind        rbac.AccountKind    `json:"kind"`
	FullName    string              `json:"fullName"`
	Email       string              `json:"email"`
	Permissions rbac.PermissionSet  `json:"permissions"`
}
