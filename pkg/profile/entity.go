package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Profile is the user-level identity a CV projection draws from. The CV
// pipeline reads it, never mutates it.
type Profile struct {
	UserID        uuid.UUID `json:"userId"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Nickname      string    `json:"nickname"`
	CurrentCity   string    `json:"currentCity"`
	CurrentRegion string    `json:"currentRegion"`
	PhotoURL      string    `json:"photoUrl"`
	Phone         string    `json:"phone"`
	// Rating is the platform-wide aggregate shown on animator cards.
	// Maintained elsewhere; read-only here.
	Rating    float64   `json:"rating"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("profile not found")

// Repository is the persistence port for profiles.
type Repository interface {
	Get(ctx context.Context, userID uuid.UUID) (Profile, error)
	Upsert(ctx context.Context, p Profile) error
}
