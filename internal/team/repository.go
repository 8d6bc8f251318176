package team

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/css-society/portal/internal/platform/httpx"
)

// Repository defines persistence operations for the board roster.
type Repository interface {
	List(ctx context.Context) ([]BoardMember, error)
	Create(ctx context.Context, input Input) (*BoardMember, error)
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

const boardColumns = `id, name, role, image, bio, instagram, linkedin, rank, created_at, updated_at`

// List returns the roster ordered by rank ascending.
func (r *PGRepository) List(ctx context.Context) ([]BoardMember, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+boardColumns+` FROM team_members ORDER BY rank, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []BoardMember
	for rows.Next() {
		member, err := scanBoardMember(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *member)
	}
	return result, rows.Err()
}

// Create adds a roster entry.
func (r *PGRepository) Create(ctx context.Context, input Input) (*BoardMember, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO team_members (name, role, image, bio, instagram, linkedin, rank)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+boardColumns,
		input.Name, input.Role, input.Image, input.Bio, input.Instagram, input.LinkedIn, input.Rank)
	return scanBoardMember(row)
}

// Delete removes a roster entry.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func scanBoardMember(row pgx.Row) (*BoardMember, error) {
	var (
		member           BoardMember
		created, updated pgtype.Timestamptz
	)
	err := row.Scan(&member.ID, &member.Name, &member.Role, &member.Image, &member.Bio,
		&member.Instagram, &member.LinkedIn, &member.Rank, &created, &updated)
	if err != nil {
		return nil, err
	}
	member.CreatedAt = created.Time
	member.UpdatedAt = updated.Time
	return &member, nil
}

var _ Repository = (*PGRepository)(nil)
