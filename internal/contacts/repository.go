package contacts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/css-society/portal/internal/platform/httpx"
)

// Repository defines persistence operations for the inbox.
type Repository interface {
	Create(ctx context.Context, input Input) (*Contact, error)
	List(ctx context.Context) ([]Contact, error)
	SetRead(ctx context.Context, id int64, read bool) (*Contact, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const contactColumns = `id, name, email, subject, body, read, priority, created_at`

// Create stores an incoming message.
func (r *PGRepository) Create(ctx context.Context, input Input) (*Contact, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO contact_messages (name, email, subject, body, priority)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+contactColumns,
		input.Name, input.Email, input.Subject, input.Body, input.Priority)
	return scanContact(row)
}

// List returns the inbox newest first.
func (r *PGRepository) List(ctx context.Context) ([]Contact, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+contactColumns+` FROM contact_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Contact
	for rows.Next() {
		item, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	return result, rows.Err()
}

// SetRead updates the read marker on a message.
func (r *PGRepository) SetRead(ctx context.Context, id int64, read bool) (*Contact, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE contact_messages SET read = $2 WHERE id = $1
		RETURNING `+contactColumns, id, read)
	item, err := scanContact(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, httpx.ErrNotFound
	}
	return item, err
}

func scanContact(row pgx.Row) (*Contact, error) {
	var (
		item    Contact
		created pgtype.Timestamptz
	)
	err := row.Scan(&item.ID, &item.Name, &item.Email, &item.Subject, &item.Body, &item.Read, &item.Priority, &created)
	if err != nil {
		return nil, err
	}
	item.CreatedAt = created.Time
	return &item, nil
}

var _ Repository = (*PGRepository)(nil)
