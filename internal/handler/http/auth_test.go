package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/notulensi/notulensi-pro/internal/ratelimit"
	"github.com/notulensi/notulensi-pro/internal/service"
	"github.com/notulensi/notulensi-pro/internal/store"
	"github.com/notulensi/notulensi-pro/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(target, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestHandler_Register_Success(t *testing.T) {
	auth := &mockAuthService{
		registerUserFunc: func(ctx context.Context, req models.RegisterRequest) (models.User, error) {
			return models.User{ID: "u1", Name: req.Name, Email: req.Email}, nil
		},
	}
	router, _ := newTestRouter(t, auth, &mockNoteService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, postJSON("/api/auth/register", `{"name":"John Doe","email":"john@example.com","password":"@Home123"}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"success": true,
		"user": {"id":"u1","name":"John Doe","email":"john@example.com"},
		"token": "valid-session-token"
	}`, w.Body.String())

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Equal(t, validTestToken, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestHandler_Register_DisabledInProduction(t *testing.T) {
	auth := &mockAuthService{
		registerUserFunc: func(ctx context.Context, req models.RegisterRequest) (models.User, error) {
			return models.User{}, service.ErrRegistrationDisabled
		},
	}
	router, _ := newTestRouter(t, auth, &mockNoteService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, postJSON("/api/auth/register", `{"name":"n","email":"e","password":"p"}`))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_Register_DuplicateEmail(t *testing.T) {
	auth := &mockAuthService{
		registerUserFunc: func(ctx context.Context, req models.RegisterRequest) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}
	router, _ := newTestRouter(t, auth, &mockNoteService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, postJSON("/api/auth/register", `{"name":"n","email":"e","password":"p"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestHandler_Login_Success_SetsCookieAndResetsLimiter(t *testing.T) {
	auth := &mockAuthService{
		loginFunc: func(ctx context.Context, req models.LoginRequest) (models.User, error) {
			return models.User{ID: "u1", Name: "John Doe", Email: req.Email}, nil
		},
	}
	router, limiter := newTestRouter(t, auth, &mockNoteService{})

	// a couple of failed-looking attempts beforehand
	limiter.Check("192.0.2.1", ratelimit.LoginMaxAttempts, ratelimit.LoginWindow, ratelimit.LoginBlockDuration)
	limiter.Check("192.0.2.1", ratelimit.LoginMaxAttempts, ratelimit.LoginWindow, ratelimit.LoginBlockDuration)

	r := postJSON("/api/auth/login", `{"email":"john@example.com","password":"@Home123"}`)
	r.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, sessionCookie(w))
	assert.Zero(t, limiter.Len(), "successful login clears the attempt history")
}

func TestHandler_Login_WrongPassword(t *testing.T) {
	auth := &mockAuthService{
		loginFunc: func(ctx context.Context, req models.LoginRequest) (models.User, error) {
			return models.User{}, service.ErrWrongPassword
		},
	}
	router, _ := newTestRouter(t, auth, &mockNoteService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, postJSON("/api/auth/login", `{"email":"john@example.com","password":"wrong"}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestHandler_Login_UnknownUserLooksLikeWrongPassword(t *testing.T) {
	auth := &mockAuthService{
		loginFunc: func(ctx context.Context, req models.LoginRequest) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}
	router, _ := newTestRouter(t, auth, &mockNoteService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, postJSON("/api/auth/login", `{"email":"nobody@example.com","password":"p"}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestHandler_Login_RateLimited(t *testing.T) {
	auth := &mockAuthService{
		loginFunc: func(ctx context.Context, req models.LoginRequest) (models.User, error) {
			return models.User{}, service.ErrWrongPassword
		},
	}
	router, _ := newTestRouter(t, auth, &mockNoteService{})

	var w *httptest.ResponseRecorder
	for i := 0; i <= ratelimit.LoginMaxAttempts; i++ {
		r := postJSON("/api/auth/login", `{"email":"john@example.com","password":"wrong"}`)
		r.RemoteAddr = "192.0.2.2:1234"
		w = httptest.NewRecorder()
		router.ServeHTTP(w, r)
	}

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many login attempts")

	retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.Positive(t, retryAfter)

	// the next blocked retry must not report a larger Retry-After
	r := postJSON("/api/auth/login", `{"email":"john@example.com","password":"wrong"}`)
	r.RemoteAddr = "192.0.2.2:1234"
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	nextRetryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.LessOrEqual(t, nextRetryAfter, retryAfter)
}

func TestHandler_Login_RateLimitKeyedByClientIP(t *testing.T) {
	auth := &mockAuthService{
		loginFunc: func(ctx context.Context, req models.LoginRequest) (models.User, error) {
			return models.User{}, service.ErrWrongPassword
		},
	}
	router, _ := newTestRouter(t, auth, &mockNoteService{})

	for i := 0; i <= ratelimit.LoginMaxAttempts; i++ {
		r := postJSON("/api/auth/login", `{"email":"john@example.com","password":"wrong"}`)
		r.RemoteAddr = "192.0.2.3:1234"
		router.ServeHTTP(httptest.NewRecorder(), r)
	}

	// a different client is unaffected
	r := postJSON("/api/auth/login", `{"email":"john@example.com","password":"wrong"}`)
	r.RemoteAddr = "192.0.2.4:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_Logout_ClearsCookie(t *testing.T) {
	router, _ := newTestRouter(t, &mockAuthService{}, &mockNoteService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, postJSON("/api/auth/logout", ``))

	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestHandler_Me_WithCookie(t *testing.T) {
	router, _ := newTestRouter(t, &mockAuthService{}, &mockNoteService{})

	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r.AddCookie(&http.Cookie{Name: authTokenCookie, Value: validTestToken})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"success": true,
		"user": {"id":"u1","name":"John Doe","email":"john@example.com"}
	}`, w.Body.String())
}

func TestHandler_Me_WithBearerToken(t *testing.T) {
	router, _ := newTestRouter(t, &mockAuthService{}, &mockNoteService{})

	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+validTestToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_Me_Anonymous(t *testing.T) {
	router, _ := newTestRouter(t, &mockAuthService{}, &mockNoteService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_Me_InvalidTokenTreatedAsAnonymous(t *testing.T) {
	router, _ := newTestRouter(t, &mockAuthService{}, &mockNoteService{})

	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r.AddCookie(&http.Cookie{Name: authTokenCookie, Value: "expired-or-forged"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
