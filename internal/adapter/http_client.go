package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/notulensi/notulensi-pro/models"
)

// HTTPClientConfig configures the resty-based API client.
type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpAPIClient struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPAPIClient builds an [APIClient] talking HTTP/JSON to the server at
// cfg.BaseURL.
func NewHTTPAPIClient(cfg HTTPClientConfig) APIClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:3000"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpAPIClient{client: cli}
}

func (h *httpAPIClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpAPIClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// request returns a prepared request with the context, JSON headers, and,
// when a session exists, the bearer token.
func (h *httpAPIClient) request(ctx context.Context) *resty.Request {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}

	return req
}

func (h *httpAPIClient) Register(ctx context.Context, registerReq models.RegisterRequest) (models.UserPayload, error) {
	resp, err := h.request(ctx).
		SetBody(registerReq).
		Post("/api/auth/register")
	if err != nil {
		return models.UserPayload{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserPayload{}, err
	}

	var authResp models.AuthResponse
	if err = json.Unmarshal(resp.Body(), &authResp); err != nil {
		return models.UserPayload{}, fmt.Errorf("register decode response: %w", err)
	}

	h.SetToken(authResp.Token)
	return authResp.User, nil
}

func (h *httpAPIClient) Login(ctx context.Context, loginReq models.LoginRequest) (models.UserPayload, error) {
	resp, err := h.request(ctx).
		SetBody(loginReq).
		Post("/api/auth/login")
	if err != nil {
		return models.UserPayload{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserPayload{}, err
	}

	var authResp models.AuthResponse
	if err = json.Unmarshal(resp.Body(), &authResp); err != nil {
		return models.UserPayload{}, fmt.Errorf("login decode response: %w", err)
	}

	h.SetToken(authResp.Token)
	return authResp.User, nil
}

func (h *httpAPIClient) Logout(ctx context.Context) error {
	resp, err := h.request(ctx).Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

func (h *httpAPIClient) Me(ctx context.Context) (models.UserPayload, error) {
	resp, err := h.request(ctx).Get("/api/auth/me")
	if err != nil {
		return models.UserPayload{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserPayload{}, err
	}

	var meResp models.MeResponse
	if err = json.Unmarshal(resp.Body(), &meResp); err != nil {
		return models.UserPayload{}, fmt.Errorf("me decode response: %w", err)
	}

	return meResp.User, nil
}

func (h *httpAPIClient) ListNotes(ctx context.Context) ([]models.Note, error) {
	resp, err := h.request(ctx).Get("/api/notes")
	if err != nil {
		return nil, fmt.Errorf("list notes request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var notesResp models.NotesResponse
	if err = json.Unmarshal(resp.Body(), &notesResp); err != nil {
		return nil, fmt.Errorf("list notes decode response: %w", err)
	}

	return notesResp.Notes, nil
}

func (h *httpAPIClient) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	resp, err := h.request(ctx).
		SetBody(note).
		Post("/api/notes")
	if err != nil {
		return models.Note{}, fmt.Errorf("create note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	var noteResp models.NoteResponse
	if err = json.Unmarshal(resp.Body(), &noteResp); err != nil {
		return models.Note{}, fmt.Errorf("create note decode response: %w", err)
	}

	return noteResp.Note, nil
}

func (h *httpAPIClient) UpdateNote(ctx context.Context, update models.NoteUpdate) (models.Note, error) {
	resp, err := h.request(ctx).
		SetBody(update).
		Put("/api/notes")
	if err != nil {
		return models.Note{}, fmt.Errorf("update note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	var noteResp models.NoteResponse
	if err = json.Unmarshal(resp.Body(), &noteResp); err != nil {
		return models.Note{}, fmt.Errorf("update note decode response: %w", err)
	}

	return noteResp.Note, nil
}

func (h *httpAPIClient) DeleteNote(ctx context.Context, noteID string) error {
	resp, err := h.request(ctx).
		SetQueryParam("id", noteID).
		Delete("/api/notes")
	if err != nil {
		return fmt.Errorf("delete note request: %w", err)
	}

	return mapHTTPError(resp)
}
