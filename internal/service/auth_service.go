package service

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/carson-networks/finance-client/internal/gateway"
)

const authTokenCookie = "auth_token"

// cookieSource exposes the session cookies held for the user service.
type cookieSource interface {
	Cookies() []*http.Cookie
}

// AuthService handles the session with the user service. Token issuing and
// validation belong to the user service; this side only carries cookies.
type AuthService struct {
	backend Requester
}

// NewAuthService creates a new AuthService.
func NewAuthService(backend Requester) *AuthService {
	return &AuthService{backend: backend}
}

func (s *AuthService) Login(ctx context.Context, email, password string) error {
	check := fieldCheck{}
	check.require("email", email != "")
	check.require("password", password != "")
	if err := check.err(); err != nil {
		return err
	}

	body := map[string]string{"email": email, "password": password}
	return s.backend.Post(gateway.WithoutRefresh(ctx), "auth/login", body, nil)
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.backend.Post(gateway.WithoutRefresh(ctx), "auth/logout", struct{}{}, nil)
}

// Refresh asks the user service to renew the auth cookie from the refresh
// cookie. It is the gateway's Refresher and never triggers a refresh itself.
func (s *AuthService) Refresh(ctx context.Context) error {
	return s.backend.Get(gateway.WithoutRefresh(ctx), "auth/refresh", nil, nil)
}

// HasRefreshToken reports whether the user service still accepts the refresh
// cookie. Any failure counts as no.
func (s *AuthService) HasRefreshToken(ctx context.Context) bool {
	var out struct {
		Valid bool `json:"valid"`
	}
	if err := s.backend.Get(gateway.WithoutRefresh(ctx), "auth/check-refresh", nil, &out); err != nil {
		return false
	}
	return out.Valid
}

// SessionExpiry reads the expiry claim of the auth cookie without verifying
// its signature. ok is false when there is no readable token.
func (s *AuthService) SessionExpiry() (expiresAt time.Time, ok bool) {
	source, isSource := s.backend.(cookieSource)
	if !isSource {
		return time.Time{}, false
	}

	for _, cookie := range source.Cookies() {
		if cookie.Name != authTokenCookie {
			continue
		}
		return tokenExpiry(cookie.Value)
	}
	return time.Time{}, false
}

func tokenExpiry(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
