package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pharmalink/cv/pkg/cv"
)

// CVRepository stores CV records with the structured document as an opaque
// JSONB blob. The blob is written and read back verbatim; projections are
// always derived in memory, never persisted.
type CVRepository struct {
	pool *pgxpool.Pool
}

func NewCVRepository(pool *pgxpool.Pool) (*CVRepository, error) {
	r := &CVRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *CVRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS cvs (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			variant TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			content JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS cvs_owner_idx ON cvs (owner_id, created_at DESC);
	`)
	return err
}

func (r *CVRepository) Create(ctx context.Context, rec cv.Record) error {
	content, err := json.Marshal(rec.Content)
	if err != nil {
		return fmt.Errorf("marshal cv content: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO cvs (id, owner_id, variant, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rec.ID, rec.OwnerID, rec.Variant, rec.Title, content, rec.CreatedAt, rec.UpdatedAt)
	return err
}

func (r *CVRepository) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (cv.Record, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, variant, title, content, created_at, updated_at
		FROM cvs WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	return scanRecord(row)
}

func (r *CVRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]cv.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, variant, title, content, created_at, updated_at
		FROM cvs WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []cv.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

func (r *CVRepository) Update(ctx context.Context, rec cv.Record) error {
	content, err := json.Marshal(rec.Content)
	if err != nil {
		return fmt.Errorf("marshal cv content: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE cvs SET title = $3, content = $4, updated_at = $5
		WHERE id = $1 AND owner_id = $2
	`, rec.ID, rec.OwnerID, rec.Title, content, rec.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return cv.ErrNotFound
	}
	return nil
}

func (r *CVRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM cvs WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return cv.ErrNotFound
	}
	return nil
}

func scanRecord(row pgx.Row) (cv.Record, error) {
	var rec cv.Record
	var content []byte
	var created, updated time.Time
	if err := row.Scan(&rec.ID, &rec.OwnerID, &rec.Variant, &rec.Title, &content, &created, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cv.Record{}, cv.ErrNotFound
		}
		return cv.Record{}, err
	}
	if err := json.Unmarshal(content, &rec.Content); err != nil {
		return cv.Record{}, fmt.Errorf("unmarshal cv content: %w", err)
	}
	rec.CreatedAt = created.UTC()
	rec.UpdatedAt = updated.UTC()
	return rec, nil
}
