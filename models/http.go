package models

// Request and response envelopes for the HTTP API. Every response carries a
// success flag; failures additionally carry a human-readable error string
// and nothing else, so internal details never leak to the caller.

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by successful register and login calls.
type AuthResponse struct {
	Success bool        `json:"success"`
	User    UserPayload `json:"user"`
	Token   string      `json:"token"`
}

// MeResponse is returned by GET /api/auth/me.
type MeResponse struct {
	Success bool        `json:"success"`
	User    UserPayload `json:"user"`
}

// MessageResponse is a generic success envelope with a human-readable note.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the uniform failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NotesResponse is returned by GET /api/notes.
type NotesResponse struct {
	Notes []Note `json:"notes"`
}

// NoteResponse is returned by note create and update calls.
type NoteResponse struct {
	Success bool `json:"success"`
	Note    Note `json:"note"`
}

// DeleteResponse is returned by DELETE /api/notes.
type DeleteResponse struct {
	Success bool `json:"success"`
}

// SeedResponse is returned by POST /api/seed.
type SeedResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Users   []string `json:"users,omitempty"`
}
