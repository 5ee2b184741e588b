package account

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-client/internal/handlers/v1/respond"
)

type authenticator interface {
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	HasRefreshToken(ctx context.Context) bool
	SessionExpiry() (time.Time, bool)
}

// SessionHandler handles /v1/auth.
type SessionHandler struct {
	Auth authenticator
}

// NewSessionHandler creates a new SessionHandler backed by auth.
func NewSessionHandler(auth authenticator) *SessionHandler {
	return &SessionHandler{Auth: auth}
}

// Register registers the login, logout and session endpoints with the Huma API.
func (h *SessionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/v1/auth/login",
		Summary:     "Sign in",
		Description: "Signs in with the user service. The session cookies are held by this client for every later backend call.",
		Tags:        []string{"Auth"},
	}, h.login)

	huma.Register(api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/v1/auth/logout",
		Summary:     "Sign out",
		Tags:        []string{"Auth"},
	}, h.logout)

	huma.Register(api, huma.Operation{
		OperationID: "get-session",
		Method:      http.MethodGet,
		Path:        "/v1/auth/session",
		Summary:     "Describe the current session",
		Tags:        []string{"Auth"},
	}, h.session)
}

type LoginInput struct {
	Body struct {
		Email    string `json:"email" doc:"Account email"`
		Password string `json:"password" doc:"Account password"`
	}
}

type SessionOutput struct {
	Body Session
}

func (h *SessionHandler) login(ctx context.Context, input *LoginInput) (*SessionOutput, error) {
	respond.AddData(ctx, "email", input.Body.Email)
	if err := h.Auth.Login(ctx, input.Body.Email, input.Body.Password); err != nil {
		return nil, respond.Error(err)
	}
	return &SessionOutput{Body: h.describe(ctx)}, nil
}

func (h *SessionHandler) logout(ctx context.Context, _ *struct{}) (*struct{}, error) {
	if err := h.Auth.Logout(ctx); err != nil {
		return nil, respond.Error(err)
	}
	return &struct{}{}, nil
}

func (h *SessionHandler) session(ctx context.Context, _ *struct{}) (*SessionOutput, error) {
	return &SessionOutput{Body: h.describe(ctx)}, nil
}

func (h *SessionHandler) describe(ctx context.Context) Session {
	s := Session{HasRefreshToken: h.Auth.HasRefreshToken(ctx)}
	if expiresAt, ok := h.Auth.SessionExpiry(); ok {
		s.Authenticated = true
		s.ExpiresAt = expiresAt.UTC().Format(time.RFC3339)
	}
	return s
}
