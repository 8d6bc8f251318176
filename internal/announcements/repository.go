package announcements

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/css-society/portal/internal/platform/httpx"
)

// Repository defines persistence operations for announcements.
type Repository interface {
	List(ctx context.Context, includeArchived bool) ([]Announcement, error)
	Create(ctx context.Context, input Input) (*Announcement, error)
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

const announcementColumns = `id, title, body, published_at, kind, archived, created_at, updated_at`

// List returns announcements newest first.
func (r *PGRepository) List(ctx context.Context, includeArchived bool) ([]Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements ORDER BY created_at DESC`
	if !includeArchived {
		query = `SELECT ` + announcementColumns + ` FROM announcements WHERE NOT archived ORDER BY created_at DESC`
	}
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Announcement
	for rows.Next() {
		item, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	return result, rows.Err()
}

// Create inserts a new feed entry.
func (r *PGRepository) Create(ctx context.Context, input Input) (*Announcement, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO announcements (title, body, published_at, kind)
		VALUES ($1, $2, $3, $4)
		RETURNING `+announcementColumns,
		input.Title, input.Body, input.PublishedAt, input.Kind)
	return scanAnnouncement(row)
}

// Delete removes a feed entry.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func scanAnnouncement(row pgx.Row) (*Announcement, error) {
	var (
		item                        Announcement
		published, created, updated pgtype.Timestamptz
	)
	err := row.Scan(&item.ID, &item.Title, &item.Body, &published, &item.Kind, &item.Archived, &created, &updated)
	if err != nil {
		return nil, err
	}
	item.PublishedAt = published.Time
	item.CreatedAt = created.Time
	item.UpdatedAt = updated.Time
	return &item, nil
}

var _ Repository = (*PGRepository)(nil)
