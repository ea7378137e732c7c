package service

import (
	"context"
	"testing"
	"time"

	"github.com/2dawng/CorsairStream-BE/internal/domain"
	"github.com/2dawng/CorsairStream-BE/internal/dto"
	"github.com/2dawng/CorsairStream-BE/internal/repository"
	"github.com/2dawng/CorsairStream-BE/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = r.nextID
	r.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			found := *user
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := *user
	return &found, nil
}

func newTestAuthService(repo repository.UserRepository) AuthService {
	jwtManager := utils.NewJWTManager(
		"test-secret-key-that-is-at-least-32-characters-long",
		30*time.Minute,
		7*24*time.Hour,
	)
	return NewAuthService(repo, jwtManager, bcrypt.MinCost)
}

func TestAuthService_Signup(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	resp, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.NotZero(t, resp.ID)
	assert.False(t, resp.CreatedAt.IsZero())

	stored, err := repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("s3cret", stored.PasswordHash))
	assert.True(t, stored.IsActive)
	assert.False(t, stored.IsAdmin)
}

func TestAuthService_SignupDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), &dto.SignupRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "other",
	})
	assert.ErrorIs(t, err, ErrEmailRegistered)

	// The original account is untouched.
	assert.Len(t, repo.users, 1)
	user, err := repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestAuthService_SignupInvalidEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Username: "alice",
		Email:    "not-an-email",
		Password: "s3cret",
	})
	assert.Error(t, err)
	assert.Empty(t, repo.users)
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEqual(t, resp.AccessToken, resp.RefreshToken)
	assert.Equal(t, "alice", resp.Username)
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "missing@example.com",
		Password: "s3cret",
	})
	assert.ErrorIs(t, err, ErrEmailNotFound)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrIncorrectPassword)
}

func TestAuthService_LoginEmptyPasswordOAuthAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	// Provisioned via OAuth: the stored hash is a digest of the empty string.
	sentinel, err := utils.HashPassword("", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: sentinel,
		IsActive:     true,
	}))

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "",
	})
	assert.ErrorIs(t, err, ErrIncorrectPassword)
}

func TestAuthService_Authenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	// Refresh tokens share the claim shape and also resolve a session.
	user, err = svc.Authenticate(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestAuthService_AuthenticateBadToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Authenticate(context.Background(), "garbage")
	assert.Error(t, err)
}

func TestAuthService_AuthenticateDeletedUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	// Token remains well-formed, but its subject no longer exists.
	delete(repo.users, resp.ID)

	_, err = svc.Authenticate(context.Background(), resp.AccessToken)
	assert.Error(t, err)
}
