// Package members manages society membership records through their whole
// lifecycle: public application, administrator review, capability grants and
// self-service account activation.
package members

import (
	"time"

	"github.com/css-society/portal/internal/rbac"
)

// Member is a membership record. It doubles as a staff account once approved
// and activated; the password hash never leaves the repository layer.
type Member struct {
	ID           int64              `json:"id"`
	FullName     string             `json:"fullName"`
	RollNo       string             `json:"rollNo"`
	Department   string             `json:"department"`
	Semester     string             `json:"semester"`
	Email        string             `json:"email"`
	Phone        string             `json:"phoneNumber"`
	ApplyingRole string             `json:"applyingRole"`
	Approved     bool               `json:"approved"`
	Activated    bool               `json:"activated"`
	Permissions  rbac.PermissionSet `json:"permissions"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// Application is the public join-request payload. Records always start
// unapproved and without a password.
type Application struct {
	FullName     string `json:"fullName" validate:"required"`
	RollNo       string `json:"rollNo" validate:"required"`
	Department   string `json:"department" validate:"required"`
	Semester     string `json:"semester" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phoneNumber" validate:"required"`
	ApplyingRole string `json:"applyingRole" validate:"required"`
}

// PermissionUpdate carries the admin review decision. Omitted fields keep
// their stored value.
type PermissionUpdate struct {
	Approved    *bool               `json:"approved"`
	Permissions *rbac.PermissionSet `json:"permissions"`
}
