package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pharmalink/cv/pkg/profile"
)

// ProfileRepository stores the display identity each CV projection reads.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) (*ProfileRepository, error) {
	r := &ProfileRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ProfileRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS profiles (
			user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			nickname TEXT NOT NULL DEFAULT '',
			current_city TEXT NOT NULL DEFAULT '',
			current_region TEXT NOT NULL DEFAULT '',
			photo_url TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`)
	return err
}

func (r *ProfileRepository) Get(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT user_id, first_name, last_name, nickname, current_city, current_region,
		       photo_url, phone, rating, updated_at
		FROM profiles WHERE user_id = $1
	`, userID)
	var p profile.Profile
	var updated time.Time
	err := row.Scan(&p.UserID, &p.FirstName, &p.LastName, &p.Nickname, &p.CurrentCity,
		&p.CurrentRegion, &p.PhotoURL, &p.Phone, &p.Rating, &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	p.UpdatedAt = updated.UTC()
	return p, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p profile.Profile) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (user_id, first_name, last_name, nickname, current_city,
		                      current_region, photo_url, phone, rating, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			nickname = EXCLUDED.nickname,
			current_city = EXCLUDED.current_city,
			current_region = EXCLUDED.current_region,
			photo_url = EXCLUDED.photo_url,
			phone = EXCLUDED.phone,
			rating = EXCLUDED.rating,
			updated_at = EXCLUDED.updated_at
	`, p.UserID, p.FirstName, p.LastName, p.Nickname, p.CurrentCity, p.CurrentRegion,
		p.PhotoURL, p.Phone, p.Rating, p.UpdatedAt)
	return err
}
