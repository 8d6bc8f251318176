package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/css-society/portal/internal/platform/httpx"
	"github.com/css-society/portal/internal/rbac"
)

// ErrInvalidCredentials is the single login failure returned to callers.
// Unknown address, wrong password and unapproved member are deliberately
// indistinguishable.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// Service resolves credentials against the two account stores and issues
// session tokens.
type Service struct {
	admins  AdminStore
	members MemberStore
	tokens  *TokenIssuer
}

// NewService constructs a new Service.
func NewService(admins AdminStore, members MemberStore, tokens *TokenIssuer) *Service {
	return &Service{admins: admins, members: members, tokens: tokens}
}

// Login validates an email/password pair and returns a signed token with the
// normalized profile. The administrator store is always consulted first so a
// member record can never shadow a provisioned administrator on the same
// address.
func (s *Service) Login(ctx context.Context, email, password string) (string, *Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if admin, err := s.admins.FindByEmail(ctx, email); err == nil {
		if !verifyPassword(admin.PasswordHash, password) {
			return "", nil, ErrInvalidCredentials
		}
		token, err := s.tokens.Issue(admin.ID, rbac.KindAdministrator)
		if err != nil {
			return "", nil, err
		}
		return token, adminProfile(admin), nil
	}

	member, err := s.members.FindAccountByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	// An unapproved member never authenticates, password or not. Activation
	// is gated on approval so the hash is normally absent anyway.
	if !member.Approved || member.PasswordHash == "" {
		return "", nil, ErrInvalidCredentials
	}
	if !verifyPassword(member.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(member.ID, rbac.KindMember)
	if err != nil {
		return "", nil, err
	}
	return token, memberProfile(member), nil
}

// ResolvePrincipal rebuilds the request principal from the claims' origin
// store. The account is re-fetched on every call: a record deleted after
// token issuance fails immediately.
func (s *Service) ResolvePrincipal(ctx context.Context, claims *Claims) (*rbac.Principal, error) {
	id, err := claims.AccountID()
	if err != nil {
		return nil, httpx.ErrUnauthorized
	}
	switch claims.Kind {
	case rbac.KindAdministrator:
		admin, err := s.admins.FindByID(ctx, id)
		if err != nil {
			return nil, httpx.ErrUnauthorized
		}
		return &rbac.Principal{
			ID:          admin.ID,
			Kind:        rbac.KindAdministrator,
			FullName:    adminDisplayName,
			Email:       admin.Email,
			SuperAdmin:  admin.SuperAdmin,
			Permissions: adminPermissions(admin),
		}, nil
	case rbac.KindMember:
		member, err := s.members.FindAccountByID(ctx, id)
		if err != nil {
			return nil, httpx.ErrUnauthorized
		}
		if !member.Approved {
			return nil, httpx.ErrUnauthorized
		}
		return &rbac.Principal{
			ID:          member.ID,
			Kind:        rbac.KindMember,
			FullName:    member.FullName,
			Email:       member.Email,
			Permissions: member.Permissions,
		}, nil
	default:
		return nil, httpx.ErrUnauthorized
	}
}

const adminDisplayName = "Administrator"

func verifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func adminPermissions(admin *Administrator) rbac.PermissionSet {
	if admin.Permissions == nil {
		return rbac.FullPermissions()
	}
	return *admin.Permissions
}

func adminProfile(admin *Administrator) *Profile {
	return &Profile{
		ID:          admin.ID,
		Kind:        rbac.KindAdministrator,
		FullName:    adminDisplayName,
		Email:       admin.Email,
		Permissions: adminPermissions(admin),
	}
}

func memberProfile(member *MemberAccount) *Profile {
	return &Profile{
		ID:          member.ID,
		Kind:        rbac.KindMember,
		FullName:    member.FullName,
		Email:       member.Email,
		Permissions: member.Permissions,
	}
}
