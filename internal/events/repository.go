package events

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/css-society/portal/internal/platform/httpx"
)

// Repository defines persistence operations for events.
type Repository interface {
	List(ctx context.Context, includeArchived bool) ([]Event, error)
	Get(ctx context.Context, id int64) (*Event, error)
	Create(ctx context.Context, input Input) (*Event, error)
	Update(ctx context.Context, id int64, input Input) (*Event, error)
	Delete(ctx context.Context, id int64) error
	CompletePast(ctx context.Context, now time.Time) (int64, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const eventColumns = `id, title, description, starts_at, image, location, status, archived, created_at, updated_at`

// List returns events ordered by date ascending.
func (r *PGRepository) List(ctx context.Context, includeArchived bool) ([]Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY starts_at`
	if !includeArchived {
		query = `SELECT ` + eventColumns + ` FROM events WHERE NOT archived ORDER BY starts_at`
	}
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *event)
	}
	return result, rows.Err()
}

// Get fetches one event by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

// Create inserts a new event.
func (r *PGRepository) Create(ctx context.Context, input Input) (*Event, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (title, description, starts_at, image, location, status, archived)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+eventColumns,
		input.Title, input.Description, input.StartsAt, input.Image, input.Location, input.Status, input.Archived)
	return scanEvent(row)
}

// Update replaces the mutable fields of an event.
func (r *PGRepository) Update(ctx context.Context, id int64, input Input) (*Event, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE events SET
			title = $2, description = $3, starts_at = $4, image = $5,
			location = $6, status = $7, archived = $8, updated_at = now()
		WHERE id = $1
		RETURNING `+eventColumns,
		id, input.Title, input.Description, input.StartsAt, input.Image, input.Location, input.Status, input.Archived)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

// Delete removes an event.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// CompletePast flips upcoming events whose date has passed to completed and
// reports how many rows changed.
func (r *PGRepository) CompletePast(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE events SET status = $1, updated_at = now()
		WHERE status = $2 AND starts_at < $3`,
		StatusCompleted, StatusUpcoming, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanEvent(row pgx.Row) (*Event, error) {
	var (
		event            Event
		starts           pgtype.Timestamptz
		created, updated pgtype.Timestamptz
	)
	err := row.Scan(&event.ID, &event.Title, &event.Description, &starts, &event.Image,
		&event.Location, &event.Status, &event.Archived, &created, &updated)
	if err != nil {
		return nil, err
	}
	event.StartsAt = starts.Time
	event.CreatedAt = created.Time
	event.UpdatedAt = updated.Time
	return &event, nil
}

var _ Repository = (*PGRepository)(nil)
