package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/notulensi/notulensi-pro/internal/config"
	"github.com/notulensi/notulensi-pro/internal/logger"
	"github.com/notulensi/notulensi-pro/internal/ratelimit"
	"github.com/notulensi/notulensi-pro/internal/service"
	"github.com/notulensi/notulensi-pro/models"
)

// validTestToken is the token string the mock auth service accepts.
const validTestToken = "valid-session-token"

var testClaims = models.Claims{UserID: "u1", Email: "john@example.com", Name: "John Doe"}

// mockAuthService is a func-field stub for the auth service.
type mockAuthService struct {
	registerUserFunc  func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	loginFunc         func(ctx context.Context, req models.LoginRequest) (models.User, error)
	createTokenFunc   func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFunc    func(ctx context.Context, tokenString string) (models.Token, error)
	seedDemoUsersFunc func(ctx context.Context) ([]models.User, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return m.registerUserFunc(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	return m.loginFunc(ctx, req)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if m.createTokenFunc != nil {
		return m.createTokenFunc(ctx, user)
	}
	return models.Token{SignedString: validTestToken, Claims: testClaims}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFunc != nil {
		return m.parseTokenFunc(ctx, tokenString)
	}
	if tokenString == validTestToken {
		return models.Token{SignedString: tokenString, Claims: testClaims}, nil
	}
	return models.Token{}, service.ErrTokenIsExpiredOrInvalid
}

func (m *mockAuthService) SeedDemoUsers(ctx context.Context) ([]models.User, error) {
	return m.seedDemoUsersFunc(ctx)
}

// mockNoteService is a func-field stub for the note service.
type mockNoteService struct {
	listFunc   func(ctx context.Context, userID string) ([]models.Note, error)
	createFunc func(ctx context.Context, userID string, note models.Note) (models.Note, error)
	updateFunc func(ctx context.Context, userID string, update models.NoteUpdate) (models.Note, error)
	deleteFunc func(ctx context.Context, userID, noteID string) error
}

func (m *mockNoteService) List(ctx context.Context, userID string) ([]models.Note, error) {
	return m.listFunc(ctx, userID)
}

func (m *mockNoteService) Create(ctx context.Context, userID string, note models.Note) (models.Note, error) {
	return m.createFunc(ctx, userID, note)
}

func (m *mockNoteService) Update(ctx context.Context, userID string, update models.NoteUpdate) (models.Note, error) {
	return m.updateFunc(ctx, userID, update)
}

func (m *mockNoteService) Delete(ctx context.Context, userID, noteID string) error {
	return m.deleteFunc(ctx, userID, noteID)
}

// newTestRouter builds a fully routed handler over the given mocks.
func newTestRouter(t *testing.T, auth *mockAuthService, notes *mockNoteService) (*chi.Mux, *ratelimit.Limiter) {
	t.Helper()

	cfg := &config.StructuredConfig{
		App: config.App{Name: "Notulensi Pro", Environment: "development"},
		Session: config.Session{
			Secret:        "test-secret",
			TokenIssuer:   "notulensi-pro",
			TokenDuration: time.Hour,
		},
	}

	limiter := ratelimit.NewLimiter(logger.Nop())
	h := NewHandler(
		&service.Services{AuthService: auth, NoteService: notes},
		limiter,
		cfg,
		logger.Nop(),
	)

	return h.Init(), limiter
}

// sessionCookie returns the auth cookie set on a recorded response, or nil.
func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == authTokenCookie {
			return cookie
		}
	}
	return nil
}
