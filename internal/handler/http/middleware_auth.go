// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging, tracing, content negotiation,
// and rate-limiting concerns are all handled at this layer before requests
// are forwarded to the service layer.
package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/notulensi/notulensi-pro/internal/logger"
	"github.com/notulensi/notulensi-pro/internal/utils"
)

// authTokenCookie is the session cookie carrying the signed JWT.
const authTokenCookie = "auth_token"

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the session token from the request (cookie first, then the
// "Authorization" bearer header), validates it via the auth service, and —
// on success — stores the token claims in the request context under
// [utils.ClaimsCtxKey] before delegating to the next handler.
//
// Requests without a token, or with an expired or otherwise invalid one,
// are rejected with HTTP 401 and the uniform error envelope.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := tokenFromRequest(r)
		if err != nil {
			log.Err(err).Send()
			writeError(w, r, "Not authenticated", http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			writeError(w, r, "Not authenticated", http.StatusUnauthorized)
			return
		}

		// Store the claims in the context so that downstream handlers can
		// retrieve them without re-parsing the token.
		ctx = context.WithValue(ctx, utils.ClaimsCtxKey, token.Claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authOptional is the lenient variant of [Handler.auth] used by endpoints
// that serve both anonymous and authenticated callers. A missing or invalid
// token leaves the request anonymous instead of rejecting it; a valid token
// populates the context exactly like the strict middleware.
func (h *Handler) authOptional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := tokenFromRequest(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			logger.FromRequest(r).Debug().Err(err).Msg("ignoring invalid token on optional-auth route")
			next.ServeHTTP(w, r)
			return
		}

		ctx = context.WithValue(ctx, utils.ClaimsCtxKey, token.Claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenFromRequest extracts the raw session token from an incoming request.
//
// The session cookie takes precedence; browser clients rely on it. API
// clients without cookies send the standard header instead:
//
//	Authorization: Bearer <token>
//
// It returns the following sentinel errors:
//   - [ErrNoAuthToken] — neither the cookie nor the header is present.
//   - [ErrInvalidAuthorizationHeader] — the header contains fewer than two
//     space-separated parts.
//   - [ErrEmptyToken] — the cookie or header token value is an empty string.
func tokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(authTokenCookie); err == nil {
		if cookie.Value == "" {
			return "", ErrEmptyToken
		}
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoAuthToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}
	if parts[1] == "" {
		return "", ErrEmptyToken
	}

	return parts[1], nil
}
