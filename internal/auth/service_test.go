package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/css-society/portal/internal/platform/httpx"
	"github.com/css-society/portal/internal/rbac"
)

type mockAdminStore struct {
	byEmail map[string]*Administrator
	byID    map[int64]*Administrator
}

func newMockAdminStore() *mockAdminStore {
	return &mockAdminStore{byEmail: map[string]*Administrator{}, byID: map[int64]*Administrator{}}
}

func (m *mockAdminStore) add(admin *Administrator) {
	m.byEmail[admin.Email] = admin
	m.byID[admin.ID] = admin
}

func (m *mockAdminStore) FindByEmail(ctx context.Context, email string) (*Administrator, error) {
	admin, ok := m.byEmail[email]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return admin, nil
}

func (m *mockAdminStore) FindByID(ctx context.Context, id int64) (*Administrator, error) {
	admin, ok := m.byID[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return admin, nil
}

type mockMemberStore struct {
	byEmail map[string]*MemberAccount
	byID    map[int64]*MemberAccount
}

func newMockMemberStore() *mockMemberStore {
	return &mockMemberStore{byEmail: map[string]*MemberAccount{}, byID: map[int64]*MemberAccount{}}
}

func (m *mockMemberStore) add(member *MemberAccount) {
	m.byEmail[member.Email] = member
	m.byID[member.ID] = member
}

func (m *mockMemberStore) FindAccountByEmail(ctx context.Context, email string) (*MemberAccount, error) {
	member, ok := m.byEmail[email]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return member, nil
}

func (m *mockMemberStore) FindAccountByID(ctx context.Context, id int64) (*MemberAccount, error) {
	member, ok := m.byID[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return member, nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newTestService(t *testing.T) (*Service, *mockAdminStore, *mockMemberStore) {
	t.Helper()
	admins := newMockAdminStore()
	members := newMockMemberStore()
	service := NewService(admins, members, NewTokenIssuer("test-secret", time.Hour))
	return service, admins, members
}

func TestLoginAdministrator(t *testing.T) {
	service, admins, _ := newTestService(t)
	admins.add(&Administrator{ID: 1, Email: "root@org.test", PasswordHash: hashPassword(t, "CorrectPass1")})

	token, profile, err := service.Login(context.Background(), "Root@Org.Test ", "CorrectPass1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, int64(1), profile.ID)
	assert.Equal(t, rbac.KindAdministrator, profile.Kind)
	assert.Equal(t, "root@org.test", profile.Email)
	assert.True(t, profile.Permissions.IsAdmin)
	assert.Equal(t, rbac.FullPermissions(), profile.Permissions)

	claims, err := service.tokens.Parse(token)
	require.NoError(t, err)
	id, err := claims.AccountID()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, rbac.KindAdministrator, claims.Kind)
}

func TestLoginUnknownEmail(t *testing.T) {
	service, _, _ := newTestService(t)

	_, _, err := service.Login(context.Background(), "nobody@org.test", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginAdministratorWrongPassword(t *testing.T) {
	service, admins, _ := newTestService(t)
	admins.add(&Administrator{ID: 1, Email: "root@org.test", PasswordHash: hashPassword(t, "CorrectPass1")})

	_, _, err := service.Login(context.Background(), "root@org.test", "WrongPass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnapprovedMemberNeverAuthenticates(t *testing.T) {
	service, _, members := newTestService(t)
	members.add(&MemberAccount{
		ID: 7, FullName: "Some Member", Email: "a@b.test",
		PasswordHash: hashPassword(t, "SecretPass1"), Approved: false,
	})

	_, _, err := service.Login(context.Background(), "a@b.test", "SecretPass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginMemberWithoutPassword(t *testing.T) {
	service, _, members := newTestService(t)
	members.add(&MemberAccount{ID: 7, Email: "a@b.test", Approved: true})

	_, _, err := service.Login(context.Background(), "a@b.test", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginApprovedMember(t *testing.T) {
	service, _, members := newTestService(t)
	members.add(&MemberAccount{
		ID: 7, FullName: "Some Member", Email: "a@b.test",
		PasswordHash: hashPassword(t, "SecretPass1"), Approved: true,
		Permissions: rbac.PermissionSet{IsAdmin: true, CanManageEvents: true},
	})

	token, profile, err := service.Login(context.Background(), "a@b.test", "SecretPass1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, rbac.KindMember, profile.Kind)
	assert.Equal(t, "Some Member", profile.FullName)
	assert.True(t, profile.Permissions.CanManageEvents)
	assert.False(t, profile.Permissions.CanManageTeams)
}

func TestLoginAdministratorShadowsMember(t *testing.T) {
	service, admins, members := newTestService(t)
	admins.add(&Administrator{ID: 1, Email: "shared@org.test", PasswordHash: hashPassword(t, "AdminPass1")})
	members.add(&MemberAccount{
		ID: 2, Email: "shared@org.test",
		PasswordHash: hashPassword(t, "MemberPass1"), Approved: true,
	})

	// The member password is useless on a shared address.
	_, _, err := service.Login(context.Background(), "shared@org.test", "MemberPass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, profile, err := service.Login(context.Background(), "shared@org.test", "AdminPass1")
	require.NoError(t, err)
	assert.Equal(t, rbac.KindAdministrator, profile.Kind)
	assert.Equal(t, int64(1), profile.ID)
}

func TestResolvePrincipalAdministrator(t *testing.T) {
	service, admins, _ := newTestService(t)
	admins.add(&Administrator{ID: 1, Email: "root@org.test", SuperAdmin: true})

	token, err := service.tokens.Issue(1, rbac.KindAdministrator)
	require.NoError(t, err)
	claims, err := service.tokens.Parse(token)
	require.NoError(t, err)

	p, err := service.ResolvePrincipal(context.Background(), claims)
	require.NoError(t, err)
	assert.True(t, p.SuperAdmin)
	assert.Equal(t, rbac.KindAdministrator, p.Kind)
	assert.Equal(t, rbac.FullPermissions(), p.Permissions)
}

func TestResolvePrincipalDeletedAccount(t *testing.T) {
	service, admins, _ := newTestService(t)
	admins.add(&Administrator{ID: 1, Email: "root@org.test"})

	token, err := service.tokens.Issue(1, rbac.KindAdministrator)
	require.NoError(t, err)
	claims, err := service.tokens.Parse(token)
	require.NoError(t, err)

	delete(admins.byID, 1)

	_, err = service.ResolvePrincipal(context.Background(), claims)
	assert.ErrorIs(t, err, httpx.ErrUnauthorized)
}

func TestResolvePrincipalRevokedApproval(t *testing.T) {
	service, _, members := newTestService(t)
	member := &MemberAccount{ID: 7, Email: "a@b.test", Approved: true}
	members.add(member)

	token, err := service.tokens.Issue(7, rbac.KindMember)
	require.NoError(t, err)
	claims, err := service.tokens.Parse(token)
	require.NoError(t, err)

	member.Approved = false

	_, err = service.ResolvePrincipal(context.Background(), claims)
	assert.ErrorIs(t, err, httpx.ErrUnauthorized)
}

func TestResolvePrincipalReadsFreshPermissions(t *testing.T) {
	service, _, members := newTestService(t)
	member := &MemberAccount{
		ID: 7, Email: "a@b.test", Approved: true,
		Permissions: rbac.PermissionSet{IsAdmin: true, CanManageEvents: true},
	}
	members.add(member)

	token, err := service.tokens.Issue(7, rbac.KindMember)
	require.NoError(t, err)
	claims, err := service.tokens.Parse(token)
	require.NoError(t, err)

	member.Permissions.CanManageEvents = false

	p, err := service.ResolvePrincipal(context.Background(), claims)
	require.NoError(t, err)
	assert.False(t, p.Permissions.CanManageEvents)
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("round-trip-secret", time.Hour)

	token, err := issuer.Issue(42, rbac.KindMember)
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	id, err := claims.AccountID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, rbac.KindMember, claims.Kind)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("round-trip-secret", -time.Minute)

	token, err := issuer.Issue(42, rbac.KindMember)
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-one", time.Hour)
	other := NewTokenIssuer("secret-two", time.Hour)

	token, err := issuer.Issue(42, rbac.KindAdministrator)
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	_, err := issuer.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
