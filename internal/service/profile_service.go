package service

import "context"

const profileResource = "users/profile"

type User struct {
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Telephone string `json:"telephone,omitempty"`
	Language  string `json:"language,omitempty"`
	Currency  string `json:"currency,omitempty"`
}

// ProfileService reads and edits the signed in user's profile.
type ProfileService struct {
	backend Requester
}

// NewProfileService creates a new ProfileService.
func NewProfileService(backend Requester) *ProfileService {
	return &ProfileService{backend: backend}
}

func (s *ProfileService) GetProfile(ctx context.Context) (User, error) {
	var u User
	err := s.backend.Get(ctx, profileResource, nil, &u)
	return u, err
}

func (s *ProfileService) UpdateProfile(ctx context.Context, u User) (User, error) {
	check := fieldCheck{}
	check.require("fullName", u.FullName != "")
	check.require("email", u.Email != "")
	if err := check.err(); err != nil {
		return User{}, err
	}

	var updated User
	if err := s.backend.Put(ctx, profileResource, u, &updated); err != nil {
		return User{}, err
	}
	if updated.Email == "" {
		return u, nil
	}
	return updated, nil
}
