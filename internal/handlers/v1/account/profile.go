package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-client/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-client/internal/service"
)

type profileStore interface {
	GetProfile(ctx context.Context) (service.User, error)
	UpdateProfile(ctx context.Context, u service.User) (service.User, error)
}

// ProfileHandler handles /v1/profile.
type ProfileHandler struct {
	Profiles profileStore
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(store profileStore) *ProfileHandler {
	return &ProfileHandler{Profiles: store}
}

func (h *ProfileHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/v1/profile",
		Summary:     "Get the user profile",
		Tags:        []string{"Profile"},
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPut,
		Path:        "/v1/profile",
		Summary:     "Update the user profile",
		Description: "Full name and email are required.",
		Tags:        []string{"Profile"},
	}, h.update)
}

type ProfileOutput struct {
	Body Profile
}

type UpdateProfileInput struct {
	Body struct {
		Username  string `json:"username,omitempty"`
		FullName  string `json:"fullName,omitempty"`
		Email     string `json:"email,omitempty"`
		Telephone string `json:"telephone,omitempty"`
		Language  string `json:"language,omitempty"`
		Currency  string `json:"currency,omitempty"`
	}
}

func (h *ProfileHandler) get(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	u, err := h.Profiles.GetProfile(ctx)
	if err != nil {
		return nil, respond.Error(err)
	}
	return &ProfileOutput{Body: fromUser(u)}, nil
}

func (h *ProfileHandler) update(ctx context.Context, input *UpdateProfileInput) (*ProfileOutput, error) {
	u, err := h.Profiles.UpdateProfile(ctx, service.User(input.Body))
	if err != nil {
		return nil, respond.Error(err)
	}
	return &ProfileOutput{Body: fromUser(u)}, nil
}
