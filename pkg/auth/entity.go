package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a platform account. The identity shown on CVs lives in the
// profile, not here.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}
