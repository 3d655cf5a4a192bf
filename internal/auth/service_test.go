package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepository struct {
	usersByID    map[string]*User
	usersByEmail map[string]*User
	sessions     map[string]*Session
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		usersByID:    make(map[string]*User),
		usersByEmail: make(map[string]*User),
		sessions:     make(map[string]*Session),
	}
}

func (f *fakeRepository) CreateUser(ctx context.Context, user *User) error {
	f.usersByID[user.ID] = user
	f.usersByEmail[user.Email] = user
	return nil
}

func (f *fakeRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	u, ok := f.usersByID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := f.usersByEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeRepository) UpdateUser(ctx context.Context, user *User) error {
	f.usersByID[user.ID] = user
	f.usersByEmail[user.Email] = user
	return nil
}

func (f *fakeRepository) CreateSession(ctx context.Context, session *Session) error {
	f.sessions[session.RefreshToken] = session
	return nil
}

func (f *fakeRepository) GetSessionByRefreshToken(ctx context.Context, token string) (*Session, error) {
	s, ok := f.sessions[token]
	if !ok {
		return nil, ErrInvalidToken
	}
	return s, nil
}

func (f *fakeRepository) DeleteSession(ctx context.Context, id string) error {
	for token, s := range f.sessions {
		if s.ID == id {
			delete(f.sessions, token)
		}
	}
	return nil
}

func (f *fakeRepository) DeleteUserSessions(ctx context.Context, userID string) error {
	for token, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, token)
		}
	}
	return nil
}

func newTestService(repo Repository) Service {
	return NewService(repo, &Config{
		JWTSecret:          "test-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
		BCryptCost:         bcrypt.MinCost,
	})
}

func signupRequest() *SignupRequest {
	return &SignupRequest{
		Username: "mariasantos",
		Email:    "maria@example.com",
		Password: "correct-horse-42",
	}
}

func TestSignupAndSignin(t *testing.T) {
	svc := newTestService(newFakeRepository())

	resp, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "maria@example.com", resp.User.Email)

	resp, err = svc.Signin(context.Background(), &SigninRequest{
		Email:    "maria@example.com",
		Password: "correct-horse-42",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc := newTestService(newFakeRepository())

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), signupRequest())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSigninWrongPassword(t *testing.T) {
	svc := newTestService(newFakeRepository())

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	_, err = svc.Signin(context.Background(), &SigninRequest{
		Email:    "maria@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSigninUnknownEmail(t *testing.T) {
	svc := newTestService(newFakeRepository())

	_, err := svc.Signin(context.Background(), &SigninRequest{
		Email:    "ghost@example.com",
		Password: "whatever-123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokenRotatesSession(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	resp, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	rotated, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

	// The old refresh token is single use.
	_, err = svc.RefreshToken(context.Background(), resp.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
