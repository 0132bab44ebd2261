package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/notulensi/notulensi-pro/internal/config"
	"github.com/notulensi/notulensi-pro/internal/logger"
	"github.com/notulensi/notulensi-pro/internal/store"
	"github.com/notulensi/notulensi-pro/internal/utils"
	"github.com/notulensi/notulensi-pro/models"
)

// Demo accounts created by the seeder. Registration is open in development,
// so these exist purely to give a fresh database something to log into.
var demoUsers = []models.RegisterRequest{
	{Name: "John Doe", Email: "john@example.com", Password: "@Home123"},
	{Name: "Jane Smith", Email: "jane@example.com", Password: "@Home123"},
}

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and session token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// production disables registration and seeding entirely.
	production bool

	// tokenSignKey is the HMAC secret used to sign and verify session JWTs.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with session parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, app config.App, session config.Session, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		production:     app.IsProduction(),
		tokenSignKey:   session.Secret,
		tokenIssuer:    session.TokenIssuer,
		tokenDuration:  session.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser creates a new user account.
//
// It validates that name, email, and password are all non-empty, hashes the
// password with bcrypt, and delegates persistence to the UserRepository.
//
// Returns the persisted user (with a store-assigned identity) or:
//   - ErrRegistrationDisabled in production deployments.
//   - ErrInvalidDataProvided if any field is empty.
//   - A wrapped storage error if the repository call fails (e.g. email
//     already taken — see store.ErrEmailAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if a.production {
		return models.User{}, ErrRegistrationDisabled
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		log.Error().Str("email", req.Email).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	now := time.Now()
	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It validates that email and password are non-empty, looks up the account
// by email, and verifies the password against the stored bcrypt hash.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - A wrapped storage error if the repository lookup fails (e.g. user not
//     found — see store.ErrNoUserWasFound).
//   - ErrWrongPassword if the password does not verify.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		log.Error().Str("email", req.Email).Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.VerifyPassword(req.Password, foundUser.PasswordHash) {
		log.Warn().
			Str("id", foundUser.ID).
			Str("email", foundUser.Email).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// CreateToken issues a signed session JWT for the given user.
//
// The token is signed with the configured session secret, carries the
// configured issuer as the "iss" claim plus the userId/email/name claims,
// and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw session JWT.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature
// and the issuer claim. Any validation failure (expired, wrong issuer,
// malformed) is normalised to ErrTokenIsExpiredOrInvalid so that callers do
// not need to inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// SeedDemoUsers creates the demo accounts on an empty database.
//
// Returns ErrRegistrationDisabled in production and ErrAlreadySeeded when
// any account exists; the seeder can only run once.
func (a *authService) SeedDemoUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	if a.production {
		return nil, ErrRegistrationDisabled
	}

	count, err := a.userRepository.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting users failed: %w", err)
	}
	if count > 0 {
		return nil, ErrAlreadySeeded
	}

	now := time.Now()
	users := make([]models.User, 0, len(demoUsers))
	for _, demo := range demoUsers {
		hash, err := utils.HashPassword(demo.Password)
		if err != nil {
			return nil, fmt.Errorf("password hashing failed: %w", err)
		}
		users = append(users, models.User{
			Name:         demo.Name,
			Email:        demo.Email,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	created, err := a.userRepository.CreateUsers(ctx, users)
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return nil, ErrAlreadySeeded
		}
		log.Err(err).Msg("seeding demo users failed")
		return nil, fmt.Errorf("seeding demo users failed: %w", err)
	}

	return created, nil
}
