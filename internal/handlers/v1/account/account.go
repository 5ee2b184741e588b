// Package account serves the signed in user: session handling against the
// user service and the profile page.
package account

import "github.com/carson-networks/finance-client/internal/service"

// Profile is the API response model for the signed in user.
type Profile struct {
	Username  string `json:"username" doc:"Login name"`
	FullName  string `json:"fullName" doc:"Display name"`
	Email     string `json:"email" format:"email"`
	Telephone string `json:"telephone,omitempty"`
	Language  string `json:"language,omitempty" doc:"Preferred UI language"`
	Currency  string `json:"currency,omitempty" doc:"Preferred display currency"`
}

func fromUser(u service.User) Profile {
	return Profile{
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		Telephone: u.Telephone,
		Language:  u.Language,
		Currency:  u.Currency,
	}
}

// Session describes the client's standing with the user service.
type Session struct {
	Authenticated   bool   `json:"authenticated" doc:"An auth token with a readable expiry is held"`
	ExpiresAt       string `json:"expiresAt,omitempty" format:"date-time" doc:"Expiry of the auth token"`
	HasRefreshToken bool   `json:"hasRefreshToken" doc:"The user service still accepts the refresh token"`
}
