package service

import (
	"context"

	"github.com/notulensi/notulensi-pro/models"
)

// AuthService covers the account lifecycle: registration, credential
// verification, session token issuance and validation, and dev seeding.
type AuthService interface {
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// SeedDemoUsers creates the demo accounts once per database. Returns
	// ErrAlreadySeeded when any account already exists.
	SeedDemoUsers(ctx context.Context) ([]models.User, error)
}

// NoteService validates note operations at the boundary and delegates
// persistence to the reconciliation layer.
type NoteService interface {
	List(ctx context.Context, userID string) ([]models.Note, error)
	Create(ctx context.Context, userID string, note models.Note) (models.Note, error)
	Update(ctx context.Context, userID string, update models.NoteUpdate) (models.Note, error)
	Delete(ctx context.Context, userID, noteID string) error
}
