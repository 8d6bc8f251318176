package registrations

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/css-society/portal/internal/platform/httpx"
)

// Repository defines persistence operations for the ledger.
type Repository interface {
	Create(ctx context.Context, input Input) (*Registration, error)
	List(ctx context.Context) ([]Registration, error)
	Delete(ctx context.Context, id int64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const registrationColumns = `id, name, roll_no, email, phone, department, semester, event_title, message, created_at`

// Create inserts a ledger entry. The (roll_no, event_title) unique index
// rejects duplicate sign-ups.
func (r *PGRepository) Create(ctx context.Context, input Input) (*Registration, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO registrations (name, roll_no, email, phone, department, semester, event_title, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+registrationColumns,
		input.Name, input.RollNo, input.Email, input.Phone, input.Department, input.Semester,
		input.EventTitle, input.Message)
	reg, err := scanRegistration(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, httpx.ErrDuplicate
		}
		return nil, err
	}
	return reg, nil
}

// List returns the ledger newest first.
func (r *PGRepository) List(ctx context.Context) ([]Registration, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+registrationColumns+` FROM registrations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *reg)
	}
	return result, rows.Err()
}

// Delete removes a ledger entry.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func scanRegistration(row pgx.Row) (*Registration, error) {
	var (
		reg     Registration
		created pgtype.Timestamptz
	)
	err := row.Scan(&reg.ID, &reg.Name, &reg.RollNo, &reg.Email, &reg.Phone, &reg.Department,
		&reg.Semester, &reg.EventTitle, &reg.Message, &created)
	if err != nil {
		return nil, err
	}
	reg.CreatedAt = created.Time
	return &reg, nil
}

var _ Repository = (*PGRepository)(nil)
