package user

import (
	"context"
	"testing"

	"unbroken/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, name, email, passwordHash, role string) (*User, error) {
	args := m.Called(ctx, name, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func TestRegister_CreatesStaffUser(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewService(repo, testSecret)

	created := &User{ID: 1, Name: "Ana", Email: "ana@unbroken.gym", Role: "staff"}

	repo.On("EmailExists", mock.Anything, "ana@unbroken.gym").Return(false, nil)
	repo.On("Create", mock.Anything, "Ana", "ana@unbroken.gym", mock.AnythingOfType("string"), "staff").Return(created, nil)

	user, accessToken, refreshToken, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Ana",
		Email:    "ana@unbroken.gym",
		Password: "supersecret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "staff", user.Role)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	claims, err := auth.ValidateToken(accessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, "staff", claims.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewService(repo, testSecret)

	repo.On("EmailExists", mock.Anything, "ana@unbroken.gym").Return(true, nil)

	_, _, _, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Ana",
		Email:    "ana@unbroken.gym",
		Password: "supersecret1",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
	repo.AssertNotCalled(t, "Create")
}

func TestLogin_Success(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewService(repo, testSecret)

	hash, err := auth.HashPassword("supersecret1")
	require.NoError(t, err)

	repo.On("FindByEmail", mock.Anything, "ana@unbroken.gym").Return(&User{
		ID:           1,
		Email:        "ana@unbroken.gym",
		PasswordHash: hash,
		Role:         "staff",
	}, nil)

	user, accessToken, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ana@unbroken.gym",
		Password: "supersecret1",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.NotEmpty(t, accessToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewService(repo, testSecret)

	hash, err := auth.HashPassword("supersecret1")
	require.NoError(t, err)

	repo.On("FindByEmail", mock.Anything, "ana@unbroken.gym").Return(&User{
		ID:           1,
		Email:        "ana@unbroken.gym",
		PasswordHash: hash,
		Role:         "staff",
	}, nil)

	_, _, _, err = svc.Login(context.Background(), LoginRequest{
		Email:    "ana@unbroken.gym",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewService(repo, testSecret)

	repo.On("FindByEmail", mock.Anything, "ghost@unbroken.gym").Return(nil, ErrUserNotFound)

	_, _, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@unbroken.gym",
		Password: "whatever123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewService(repo, testSecret)

	refreshToken, err := auth.GenerateRefreshToken(1, "ana@unbroken.gym", "staff", testSecret)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, 1).Return(&User{
		ID:    1,
		Email: "ana@unbroken.gym",
		Role:  "staff",
	}, nil)

	newAccess, user, err := svc.RefreshToken(context.Background(), refreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)

	claims, err := auth.ValidateToken(newAccess, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.TokenType)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewService(repo, testSecret)

	accessToken, err := auth.GenerateAccessToken(1, "ana@unbroken.gym", "staff", testSecret)
	require.NoError(t, err)

	_, _, err = svc.RefreshToken(context.Background(), accessToken)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "FindByID")
}
