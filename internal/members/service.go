package members

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/css-society/portal/internal/platform/httpx"
	"github.com/css-society/portal/internal/rbac"
)

// MinPasswordLength is enforced during activation. Unlike login failures this
// limit is reported specifically: it is not an authentication oracle.
const MinPasswordLength = 8

// Service wraps membership business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Apply records a public join request. Roll numbers are normalized upper-case
// and emails lower-case before they become uniqueness keys.
func (s *Service) Apply(ctx context.Context, app Application) (*Member, error) {
	app.FullName = strings.TrimSpace(app.FullName)
	app.RollNo = strings.ToUpper(strings.TrimSpace(app.RollNo))
	app.Email = strings.ToLower(strings.TrimSpace(app.Email))
	app.Department = strings.TrimSpace(app.Department)
	app.Semester = strings.TrimSpace(app.Semester)
	app.ApplyingRole = strings.TrimSpace(app.ApplyingRole)
	return s.repo.Create(ctx, app)
}

// List returns every membership record for the review dashboard.
func (s *Service) List(ctx context.Context) ([]Member, error) {
	return s.repo.List(ctx)
}

// Approve flips the approval bit without touching capability flags.
func (s *Service) Approve(ctx context.Context, id int64, approved bool) (*Member, error) {
	return s.repo.UpdatePermissions(ctx, id, &approved, nil)
}

// UpdatePermissions applies an administrator's review decision. Capability
// grants pass through DeriveEffectivePermissions, so handing out any specific
// power also grants the general administrative flag. This is the only place
// the rule is enforced; client-supplied flags are never trusted as-is.
func (s *Service) UpdatePermissions(ctx context.Context, id int64, update PermissionUpdate) (*Member, error) {
	perms := update.Permissions
	if perms != nil {
		derived := rbac.DeriveEffectivePermissions(*perms)
		perms = &derived
	}
	return s.repo.UpdatePermissions(ctx, id, update.Approved, perms)
}

// Delete rejects an application or removes a member permanently.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Activate sets the password on an approved record after the caller proves
// identity with the exact (rollNo, email) pair. Re-activation of an already
// activated account is rejected: password resets go through an administrator,
// not through this public endpoint.
func (s *Service) Activate(ctx context.Context, rollNo, email, password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", httpx.ErrValidation, MinPasswordLength)
	}
	rollNo = strings.ToUpper(strings.TrimSpace(rollNo))
	email = strings.ToLower(strings.TrimSpace(email))

	id, hasPassword, err := s.repo.FindForActivation(ctx, rollNo, email)
	if err != nil {
		return err
	}
	if hasPassword {
		return fmt.Errorf("%w: account already activated", httpx.ErrDuplicate)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.SetPassword(ctx, id, string(hash))
}
