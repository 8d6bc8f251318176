package members

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/css-society/portal/internal/auth"
	"github.com/css-society/portal/internal/platform/httpx"
	"github.com/css-society/portal/internal/rbac"
)

// Repository defines persistence operations for membership records. It also
// satisfies auth.MemberStore so the identity resolver can consult the same
// collection.
type Repository interface {
	Create(ctx context.Context, app Application) (*Member, error)
	List(ctx context.Context) ([]Member, error)
	Get(ctx context.Context, id int64) (*Member, error)
	UpdatePermissions(ctx context.Context, id int64, approved *bool, perms *rbac.PermissionSet) (*Member, error)
	Delete(ctx context.Context, id int64) error
	FindForActivation(ctx context.Context, rollNo, email string) (int64, bool, error)
	SetPassword(ctx context.Context, id int64, hash string) error

	FindAccountByEmail(ctx context.Context, email string) (*auth.MemberAccount, error)
	FindAccountByID(ctx context.Context, id int64) (*auth.MemberAccount, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const memberColumns = `id, full_name, roll_no, department, semester, email, phone, applying_role,
	approved, password_hash IS NOT NULL,
	is_admin, can_manage_events, can_manage_announcements, can_view_registrations, can_manage_teams,
	created_at, updated_at`

// Create inserts a new unapproved application.
func (r *PGRepository) Create(ctx context.Context, app Application) (*Member, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO members (full_name, roll_no, department, semester, email, phone, applying_role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+memberColumns,
		app.FullName, app.RollNo, app.Department, app.Semester, app.Email, app.Phone, app.ApplyingRole)
	member, err := scanMember(row)
	if err != nil {
		return nil, mapPGError(err)
	}
	return member, nil
}

// List returns all membership records, newest application first.
func (r *PGRepository) List(ctx context.Context) ([]Member, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+memberColumns+` FROM members ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *member)
	}
	return result, rows.Err()
}

// Get fetches one record by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Member, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1`, id)
	member, err := scanMember(row)
	if err != nil {
		return nil, mapPGError(err)
	}
	return member, nil
}

// UpdatePermissions persists the review decision. Nil fields leave the stored
// value untouched (COALESCE keeps the update a single statement, consistent
// with last-writer-wins semantics).
func (r *PGRepository) UpdatePermissions(ctx context.Context, id int64, approved *bool, perms *rbac.PermissionSet) (*Member, error) {
	var (
		isAdmin, events, announcements, registrations, teams *bool
	)
	if perms != nil {
		isAdmin = &perms.IsAdmin
		events = &perms.CanManageEvents
		announcements = &perms.CanManageAnnouncements
		registrations = &perms.CanViewRegistrations
		teams = &perms.CanManageTeams
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE members SET
			approved = COALESCE($2, approved),
			is_admin = COALESCE($3, is_admin),
			can_manage_events = COALESCE($4, can_manage_events),
			can_manage_announcements = COALESCE($5, can_manage_announcements),
			can_view_registrations = COALESCE($6, can_view_registrations),
			can_manage_teams = COALESCE($7, can_manage_teams),
			updated_at = now()
		WHERE id = $1
		RETURNING `+memberColumns,
		id, approved, isAdmin, events, announcements, registrations, teams)
	member, err := scanMember(row)
	if err != nil {
		return nil, mapPGError(err)
	}
	return member, nil
}

// Delete removes a record permanently.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// FindForActivation matches the exact (rollNo, email, approved) triple and
// reports whether a password is already set.
func (r *PGRepository) FindForActivation(ctx context.Context, rollNo, email string) (int64, bool, error) {
	var (
		id          int64
		hasPassword bool
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, password_hash IS NOT NULL
		FROM members
		WHERE roll_no = $1 AND email = $2 AND approved = TRUE`,
		rollNo, email).Scan(&id, &hasPassword)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, httpx.ErrNotFound
		}
		return 0, false, err
	}
	return id, hasPassword, nil
}

// SetPassword stores the bcrypt hash on the record.
func (r *PGRepository) SetPassword(ctx context.Context, id int64, hash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE members SET password_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

const memberAccountColumns = `id, full_name, email, COALESCE(password_hash, ''), approved,
	is_admin, can_manage_events, can_manage_announcements, can_view_registrations, can_manage_teams`

// FindAccountByEmail resolves a member for login.
func (r *PGRepository) FindAccountByEmail(ctx context.Context, email string) (*auth.MemberAccount, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+memberAccountColumns+` FROM members WHERE email = $1`, email)
	return scanMemberAccount(row)
}

// FindAccountByID resolves a member for per-request principal rebuilding.
func (r *PGRepository) FindAccountByID(ctx context.Context, id int64) (*auth.MemberAccount, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+memberAccountColumns+` FROM members WHERE id = $1`, id)
	return scanMemberAccount(row)
}

func scanMember(row pgx.Row) (*Member, error) {
	var (
		m                Member
		created, updated pgtype.Timestamptz
	)
	err := row.Scan(&m.ID, &m.FullName, &m.RollNo, &m.Department, &m.Semester, &m.Email, &m.Phone,
		&m.ApplyingRole, &m.Approved, &m.Activated,
		&m.Permissions.IsAdmin, &m.Permissions.CanManageEvents, &m.Permissions.CanManageAnnouncements,
		&m.Permissions.CanViewRegistrations, &m.Permissions.CanManageTeams,
		&created, &updated)
	if err != nil {
		return nil, err
	}
	m.CreatedAt = created.Time
	m.UpdatedAt = updated.Time
	return &m, nil
}

func scanMemberAccount(row pgx.Row) (*auth.MemberAccount, error) {
	var account auth.MemberAccount
	err := row.Scan(&account.ID, &account.FullName, &account.Email, &account.PasswordHash, &account.Approved,
		&account.Permissions.IsAdmin, &account.Permissions.CanManageEvents,
		&account.Permissions.CanManageAnnouncements, &account.Permissions.CanViewRegistrations,
		&account.Permissions.CanManageTeams)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

func mapPGError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return httpx.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return httpx.ErrDuplicate
	}
	return err
}

var _ Repository = (*PGRepository)(nil)
var _ auth.MemberStore = (*PGRepository)(nil)
