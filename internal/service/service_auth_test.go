package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/notulensi/notulensi-pro/internal/config"
	"github.com/notulensi/notulensi-pro/internal/logger"
	"github.com/notulensi/notulensi-pro/internal/store"
	"github.com/notulensi/notulensi-pro/internal/utils"
	"github.com/notulensi/notulensi-pro/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockUserRepository is a func-field stub for the user persistence layer.
type mockUserRepository struct {
	createUserFunc      func(ctx context.Context, user models.User) (models.User, error)
	createUsersFunc     func(ctx context.Context, users []models.User) ([]models.User, error)
	findUserByEmailFunc func(ctx context.Context, email string) (models.User, error)
	countUsersFunc      func(ctx context.Context) (int64, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	return m.createUserFunc(ctx, user)
}

func (m *mockUserRepository) CreateUsers(ctx context.Context, users []models.User) ([]models.User, error) {
	return m.createUsersFunc(ctx, users)
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return m.findUserByEmailFunc(ctx, email)
}

func (m *mockUserRepository) CountUsers(ctx context.Context) (int64, error) {
	return m.countUsersFunc(ctx)
}

func newTestAuthService(repo store.UserRepository, environment string) AuthService {
	return NewAuthService(
		repo,
		config.App{Name: "Notulensi Pro", Environment: environment},
		config.Session{
			Secret:        "test-secret",
			TokenIssuer:   "notulensi-pro",
			TokenDuration: time.Hour,
		},
		logger.Nop(),
	)
}

func TestAuthService_RegisterUser_HashesPasswordBeforePersisting(t *testing.T) {
	var persisted models.User
	repo := &mockUserRepository{
		createUserFunc: func(ctx context.Context, user models.User) (models.User, error) {
			persisted = user
			user.ID = "u1"
			return user, nil
		},
	}
	svc := newTestAuthService(repo, "development")

	registered, err := svc.RegisterUser(context.Background(), models.RegisterRequest{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "@Home123",
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", registered.ID)
	assert.NotEqual(t, "@Home123", persisted.PasswordHash)
	assert.True(t, utils.VerifyPassword("@Home123", persisted.PasswordHash))
}

func TestAuthService_RegisterUser_RejectsEmptyFields(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, "development")

	tests := []models.RegisterRequest{
		{Email: "john@example.com", Password: "pass"},
		{Name: "John", Password: "pass"},
		{Name: "John", Email: "john@example.com"},
	}

	for _, req := range tests {
		_, err := svc.RegisterUser(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
	}
}

func TestAuthService_RegisterUser_DisabledInProduction(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, "production")

	_, err := svc.RegisterUser(context.Background(), models.RegisterRequest{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "@Home123",
	})
	assert.ErrorIs(t, err, ErrRegistrationDisabled)
}

func TestAuthService_RegisterUser_PropagatesDuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		createUserFunc: func(ctx context.Context, user models.User) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}
	svc := newTestAuthService(repo, "development")

	_, err := svc.RegisterUser(context.Background(), models.RegisterRequest{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "@Home123",
	})
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAuthService_Login_Success(t *testing.T) {
	hash, err := utils.HashPassword("@Home123")
	require.NoError(t, err)

	repo := &mockUserRepository{
		findUserByEmailFunc: func(ctx context.Context, email string) (models.User, error) {
			return models.User{ID: "u1", Name: "John Doe", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := newTestAuthService(repo, "development")

	user, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "john@example.com",
		Password: "@Home123",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("@Home123")
	require.NoError(t, err)

	repo := &mockUserRepository{
		findUserByEmailFunc: func(ctx context.Context, email string) (models.User, error) {
			return models.User{ID: "u1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := newTestAuthService(repo, "development")

	_, err = svc.Login(context.Background(), models.LoginRequest{
		Email:    "john@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := &mockUserRepository{
		findUserByEmailFunc: func(ctx context.Context, email string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}
	svc := newTestAuthService(repo, "development")

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "@Home123",
	})
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestAuthService_Login_RejectsEmptyCredentials(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, "development")

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "john@example.com"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Login(context.Background(), models.LoginRequest{Password: "@Home123"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_TokenRoundTripPreservesClaims(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, "development")
	ctx := context.Background()

	user := models.User{ID: "u1", Name: "John Doe", Email: "john@example.com"}

	issued, err := svc.CreateToken(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, issued.SignedString)

	parsed, err := svc.ParseToken(ctx, issued.SignedString)
	require.NoError(t, err)

	assert.Equal(t, "u1", parsed.Claims.UserID)
	assert.Equal(t, "John Doe", parsed.Claims.Name)
	assert.Equal(t, "john@example.com", parsed.Claims.Email)
}

func TestAuthService_ParseToken_RejectsGarbage(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, "development")

	_, err := svc.ParseToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_RejectsForeignIssuer(t *testing.T) {
	foreign := NewAuthService(
		&mockUserRepository{},
		config.App{Environment: "development"},
		config.Session{Secret: "test-secret", TokenIssuer: "someone-else", TokenDuration: time.Hour},
		logger.Nop(),
	)
	svc := newTestAuthService(&mockUserRepository{}, "development")
	ctx := context.Background()

	issued, err := foreign.CreateToken(ctx, models.User{ID: "u1", Email: "john@example.com"})
	require.NoError(t, err)

	_, err = svc.ParseToken(ctx, issued.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_SeedDemoUsers_CreatesAccountsOnEmptyDatabase(t *testing.T) {
	repo := &mockUserRepository{
		countUsersFunc: func(ctx context.Context) (int64, error) { return 0, nil },
		createUsersFunc: func(ctx context.Context, users []models.User) ([]models.User, error) {
			for i := range users {
				users[i].ID = "u" + users[i].Name
			}
			return users, nil
		},
	}
	svc := newTestAuthService(repo, "development")

	created, err := svc.SeedDemoUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, created, 2)

	for _, user := range created {
		assert.NotEmpty(t, user.PasswordHash)
		assert.True(t, utils.VerifyPassword("@Home123", user.PasswordHash))
	}
}

func TestAuthService_SeedDemoUsers_RunsOnlyOnce(t *testing.T) {
	repo := &mockUserRepository{
		countUsersFunc: func(ctx context.Context) (int64, error) { return 2, nil },
	}
	svc := newTestAuthService(repo, "development")

	_, err := svc.SeedDemoUsers(context.Background())
	assert.ErrorIs(t, err, ErrAlreadySeeded)
}

func TestAuthService_SeedDemoUsers_DisabledInProduction(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, "production")

	_, err := svc.SeedDemoUsers(context.Background())
	assert.ErrorIs(t, err, ErrRegistrationDisabled)
}

func TestAuthService_SeedDemoUsers_DuplicateRaceReportsAlreadySeeded(t *testing.T) {
	repo := &mockUserRepository{
		countUsersFunc: func(ctx context.Context) (int64, error) { return 0, nil },
		createUsersFunc: func(ctx context.Context, users []models.User) ([]models.User, error) {
			return nil, store.ErrEmailAlreadyExists
		},
	}
	svc := newTestAuthService(repo, "development")

	_, err := svc.SeedDemoUsers(context.Background())
	assert.ErrorIs(t, err, ErrAlreadySeeded)
}

func TestAuthService_SeedDemoUsers_CountFailure(t *testing.T) {
	countErr := errors.New("connection reset")
	repo := &mockUserRepository{
		countUsersFunc: func(ctx context.Context) (int64, error) { return 0, countErr },
	}
	svc := newTestAuthService(repo, "development")

	_, err := svc.SeedDemoUsers(context.Background())
	assert.ErrorIs(t, err, countErr)
}
