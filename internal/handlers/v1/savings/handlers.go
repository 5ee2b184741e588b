package savings

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-client/internal/controller"
	"github.com/carson-networks/finance-client/internal/handlers/v1/respond"
)

type savingsController interface {
	Load(ctx context.Context) (controller.SavingsView, error)
	Submit(ctx context.Context, form controller.SavingsGoalForm) (controller.SavingsView, error)
	Delete(ctx context.Context, id string) (controller.SavingsView, error)
}

type Handler struct {
	Savings savingsController
}

// NewHandler creates a new Handler for the savings goal endpoints.
func NewHandler(c savingsController) *Handler {
	return &Handler{Savings: c}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-savings-goals",
		Method:      http.MethodGet,
		Path:        "/v1/savings",
		Summary:     "List savings goals",
		Description: "Loads the savings goals and the capital still free to put into them.",
		Tags:        []string{"Savings"},
	}, h.list)

	huma.Register(api, huma.Operation{
		OperationID: "save-savings-goal",
		Method:      http.MethodPost,
		Path:        "/v1/savings",
		Summary:     "Create or update a savings goal",
		Tags:        []string{"Savings"},
	}, h.save)

	huma.Register(api, huma.Operation{
		OperationID: "delete-savings-goal",
		Method:      http.MethodDelete,
		Path:        "/v1/savings/{id}",
		Summary:     "Delete a savings goal",
		Tags:        []string{"Savings"},
	}, h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*SavingsOutput, error) {
	stopTimer := respond.Timer(ctx, "loadSavingsMs")
	view, err := h.Savings.Load(ctx)
	stopTimer()
	if err != nil {
		return nil, respond.Error(err)
	}
	return &SavingsOutput{Body: toSavingsView(view)}, nil
}

type SaveGoalInput struct {
	Body struct {
		ID            string `json:"id,omitempty" doc:"Goal to update; empty creates one"`
		GoalName      string `json:"goalName,omitempty"`
		TargetAmount  string `json:"targetAmount,omitempty"`
		CurrentAmount string `json:"currentAmount,omitempty"`
		StartDate     string `json:"startDate,omitempty" doc:"YYYY-MM-DD"`
		Deadline      string `json:"deadline,omitempty" doc:"YYYY-MM-DD"`
	}
}

func (h *Handler) save(ctx context.Context, input *SaveGoalInput) (*SavingsOutput, error) {
	target, err := respond.ParseAmount("targetAmount", input.Body.TargetAmount)
	if err != nil {
		return nil, err
	}
	current, err := respond.ParseAmount("currentAmount", input.Body.CurrentAmount)
	if err != nil {
		return nil, err
	}
	start, err := respond.ParseDate("startDate", input.Body.StartDate)
	if err != nil {
		return nil, err
	}
	deadline, err := respond.ParseDate("deadline", input.Body.Deadline)
	if err != nil {
		return nil, err
	}

	view, err := h.Savings.Submit(ctx, controller.SavingsGoalForm{
		ID:            input.Body.ID,
		GoalName:      input.Body.GoalName,
		TargetAmount:  target,
		CurrentAmount: current,
		StartDate:     start,
		Deadline:      deadline,
	})
	if err != nil {
		return nil, respond.Error(err)
	}
	return &SavingsOutput{Body: toSavingsView(view)}, nil
}

type GoalIDInput struct {
	ID string `path:"id"`
}

func (h *Handler) delete(ctx context.Context, input *GoalIDInput) (*SavingsOutput, error) {
	view, err := h.Savings.Delete(ctx, input.ID)
	if err != nil {
		return nil, respond.Error(err)
	}
	return &SavingsOutput{Body: toSavingsView(view)}, nil
}
