package auth

import "context"

// TokenGenerator abstracts token creation (e.g., JWT) so use cases stay
// framework-agnostic.
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}
