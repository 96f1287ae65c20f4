package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUsers struct {
	byEmail map[string]User
}

func (r *memUsers) Create(_ context.Context, u User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrUserAlreadyExists
	}
	r.byEmail[u.Email] = u
	return nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

type staticTokens struct{}

func (staticTokens) Generate(_ context.Context, _ User) (string, error) { return "tok", nil }

func newTestAuth() AuthUseCase {
	return NewAuthService(&memUsers{byEmail: map[string]User{}}, staticTokens{})
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuth()

	res, err := svc.Register(context.Background(), "paul@exemple.fr", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "paul@exemple.fr", res.User.Email)
	assert.Equal(t, "tok", res.Token)
	assert.NotEmpty(t, res.User.PasswordHash)
	assert.NotEqual(t, "secret123", res.User.PasswordHash)

	logged, err := svc.Login(context.Background(), "paul@exemple.fr", "secret123")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, logged.User.ID)
}

func TestRegisterDuplicate(t *testing.T) {
	svc := newTestAuth()
	_, err := svc.Register(context.Background(), "paul@exemple.fr", "secret123")
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "paul@exemple.fr", "autre")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterRejectsBlankInput(t *testing.T) {
	svc := newTestAuth()
	_, err := svc.Register(context.Background(), "   ", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Register(context.Background(), "paul@exemple.fr", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginFailures(t *testing.T) {
	svc := newTestAuth()
	_, err := svc.Login(context.Background(), "absent@exemple.fr", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(context.Background(), "paul@exemple.fr", "secret123")
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), "paul@exemple.fr", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
