package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/notulensi/notulensi-pro/internal/logger"
	"github.com/notulensi/notulensi-pro/internal/ratelimit"
	"github.com/notulensi/notulensi-pro/internal/service"
	"github.com/notulensi/notulensi-pro/internal/store"
	"github.com/notulensi/notulensi-pro/internal/utils"
	"github.com/notulensi/notulensi-pro/models"
)

// register handles POST /api/auth/register.
//
// Registration is open only outside production. On success the new account
// is logged in immediately: a session token is issued, set as the session
// cookie, and echoed in the response body for non-browser clients.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	ctx := r.Context()

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("decoding register request failed")
		writeError(w, r, "Invalid request body", http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationDisabled):
			writeError(w, r, "Registration is disabled", http.StatusForbidden)
		case errors.Is(err, service.ErrInvalidDataProvided):
			writeError(w, r, "Name, email, and password are required", http.StatusBadRequest)
		case errors.Is(err, store.ErrEmailAlreadyExists):
			writeError(w, r, "User with this email already exists", http.StatusBadRequest)
		default:
			log.Err(err).Msg("registration failed")
			writeError(w, r, "Failed to register", http.StatusInternalServerError)
		}
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("token creation after registration failed")
		writeError(w, r, "Failed to register", http.StatusInternalServerError)
		return
	}

	h.setAuthCookie(w, token.SignedString)
	if _, err := utils.WriteJSON(w, models.AuthResponse{
		Success: true,
		User:    registeredUser.Payload(),
		Token:   token.SignedString,
	}, http.StatusOK); err != nil {
		log.Err(err).Msg("writing register response failed")
	}
}

// login handles POST /api/auth/login.
//
// Attempts are rate-limited per client identifier before the request body is
// even read, so malformed requests count against the limit too. A blocked
// client receives HTTP 429 with a Retry-After header. Successful
// authentication resets the client's counter, issues a session token, and
// sets the session cookie.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	ctx := r.Context()

	identifier := ratelimit.ClientIP(r)
	result := h.limiter.Check(identifier, ratelimit.LoginMaxAttempts, ratelimit.LoginWindow, ratelimit.LoginBlockDuration)
	if !result.Allowed {
		w.Header().Set("Retry-After", retryAfterSeconds(result.ResetTime))
		writeError(w, r, "Too many login attempts. Please try again later.", http.StatusTooManyRequests)
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("decoding login request failed")
		writeError(w, r, "Invalid request body", http.StatusBadRequest)
		return
	}

	authenticatedUser, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			writeError(w, r, "Email and password are required", http.StatusBadRequest)
		case errors.Is(err, store.ErrNoUserWasFound), errors.Is(err, service.ErrWrongPassword):
			writeError(w, r, "Invalid email or password", http.StatusUnauthorized)
		default:
			log.Err(err).Msg("login failed")
			writeError(w, r, "Failed to login", http.StatusInternalServerError)
		}
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, authenticatedUser)
	if err != nil {
		log.Err(err).Msg("token creation after login failed")
		writeError(w, r, "Failed to login", http.StatusInternalServerError)
		return
	}

	h.limiter.Reset(identifier)

	h.setAuthCookie(w, token.SignedString)
	if _, err := utils.WriteJSON(w, models.AuthResponse{
		Success: true,
		User:    authenticatedUser.Payload(),
		Token:   token.SignedString,
	}, http.StatusOK); err != nil {
		log.Err(err).Msg("writing login response failed")
	}
}

// logout handles POST /api/auth/logout by expiring the session cookie.
// Tokens are stateless, so there is nothing to revoke server-side.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookie(w)
	if _, err := utils.WriteJSON(w, models.MessageResponse{
		Success: true,
		Message: "Logged out successfully",
	}, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("writing logout response failed")
	}
}

// me handles GET /api/auth/me. The optional-auth middleware populates the
// context when a valid token is present; an anonymous caller gets 401.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		writeError(w, r, "Not authenticated", http.StatusUnauthorized)
		return
	}

	if _, err := utils.WriteJSON(w, models.MeResponse{
		Success: true,
		User:    claims.Payload(),
	}, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("writing me response failed")
	}
}

// setAuthCookie attaches the session cookie to the response. The cookie is
// HTTP-only and scoped to the whole site; Secure is set in production where
// the app is served over TLS.
func (h *Handler) setAuthCookie(w http.ResponseWriter, signedToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authTokenCookie,
		Value:    signedToken,
		Path:     "/",
		MaxAge:   int(h.session.TokenDuration.Seconds()),
		HttpOnly: true,
		Secure:   h.app.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

// clearAuthCookie expires the session cookie.
func (h *Handler) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.app.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}
