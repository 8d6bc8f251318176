package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/css-society/portal/internal/platform/httpx"
	"github.com/css-society/portal/internal/rbac"
)

// AdminStore defines persistence operations for administrator accounts.
type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (*Administrator, error)
	FindByID(ctx context.Context, id int64) (*Administrator, error)
}

// MemberStore exposes the membership collection to the identity resolver.
// Implemented by the members feature repository.
type MemberStore interface {
	FindAccountByEmail(ctx context.Context, email string) (*MemberAccount, error)
	FindAccountByID(ctx context.Context, id int64) (*MemberAccount, error)
}

// PGAdminRepository implements AdminStore using PostgreSQL.
type PGAdminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository constructs a PostgreSQL administrator repository.
func NewAdminRepository(pool *pgxpool.Pool) *PGAdminRepository {
	return &PGAdminRepository{pool: pool}
}

const adminColumns = `id, email, password_hash, is_super_admin,
	is_admin, can_manage_events, can_manage_announcements, can_view_registrations, can_manage_teams,
	created_at, updated_at`

// FindByEmail fetches an administrator by canonical (lower-cased) email.
func (r *PGAdminRepository) FindByEmail(ctx context.Context, email string) (*Administrator, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM administrators WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)))
	return scanAdministrator(row)
}

// FindByID fetches an administrator by id.
func (r *PGAdminRepository) FindByID(ctx context.Context, id int64) (*Administrator, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM administrators WHERE id = $1`, id)
	return scanAdministrator(row)
}

func scanAdministrator(row pgx.Row) (*Administrator, error) {
	var (
		admin                                                Administrator
		isAdmin, events, announcements, registrations, teams pgtype.Bool
		created, updated                                     pgtype.Timestamptz
	)
	err := row.Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.SuperAdmin,
		&isAdmin, &events, &announcements, &registrations, &teams,
		&created, &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	admin.CreatedAt = created.Time
	admin.UpdatedAt = updated.Time
	// Flag columns added after the record was written stay NULL. Each unset
	// flag defaults to granted: administrators are fully privileged unless a
	// flag was explicitly revoked.
	admin.Permissions = &rbac.PermissionSet{
		IsAdmin:                flagOrTrue(isAdmin),
		CanManageEvents:        flagOrTrue(events),
		CanManageAnnouncements: flagOrTrue(announcements),
		CanViewRegistrations:   flagOrTrue(registrations),
		CanManageTeams:         flagOrTrue(teams),
	}
	return &admin, nil
}

func flagOrTrue(b pgtype.Bool) bool {
	if !b.Valid {
		return true
	}
	return b.Bool
}

var _ AdminStore = (*PGAdminRepository)(nil)
