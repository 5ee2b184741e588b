package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-client/internal/controller"
	"github.com/carson-networks/finance-client/internal/handlers/v1/respond"
)

type budgetsController interface {
	Load(ctx context.Context) (controller.BudgetsView, error)
	Submit(ctx context.Context, form controller.BudgetForm) (controller.BudgetsView, error)
	Delete(ctx context.Context, category string) (controller.BudgetsView, error)
}

// Handler serves the budgets page.
type Handler struct {
	Budgets budgetsController
}

// NewHandler creates a new Handler for the budget endpoints.
func NewHandler(b budgetsController) *Handler {
	return &Handler{Budgets: b}
}

// Register registers the budget endpoints with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-budgets",
		Method:      http.MethodGet,
		Path:        "/v1/budgets",
		Summary:     "List budgets",
		Description: "Loads the budgets with the amount left in each this month.",
		Tags:        []string{"Budgets"},
	}, h.list)

	huma.Register(api, huma.Operation{
		OperationID: "save-budget",
		Method:      http.MethodPost,
		Path:        "/v1/budgets",
		Summary:     "Create or update a budget",
		Description: "Creates a budget, or changes the limit of the budget named in selected.",
		Tags:        []string{"Budgets"},
	}, h.save)

	huma.Register(api, huma.Operation{
		OperationID: "delete-budget",
		Method:      http.MethodDelete,
		Path:        "/v1/budgets/{category}",
		Summary:     "Delete a budget",
		Tags:        []string{"Budgets"},
	}, h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*BudgetsOutput, error) {
	stopTimer := respond.Timer(ctx, "loadBudgetsMs")
	view, err := h.Budgets.Load(ctx)
	stopTimer()
	if err != nil {
		return nil, respond.Error(err)
	}
	respond.AddData(ctx, "budgetCount", len(view.Budgets))
	return &BudgetsOutput{Body: toBudgetsView(view)}, nil
}

type SaveBudgetInput struct {
	Body struct {
		Selected     string `json:"selected,omitempty" doc:"Category of the budget to update; empty creates a budget"`
		Category     string `json:"category,omitempty"`
		MonthlyLimit string `json:"monthlyLimit,omitempty" doc:"Decimal monthly limit"`
	}
}

func (h *Handler) save(ctx context.Context, input *SaveBudgetInput) (*BudgetsOutput, error) {
	limit, err := respond.ParseAmount("monthlyLimit", input.Body.MonthlyLimit)
	if err != nil {
		return nil, err
	}

	view, err := h.Budgets.Submit(ctx, controller.BudgetForm{
		Selected:     input.Body.Selected,
		Category:     input.Body.Category,
		MonthlyLimit: limit,
	})
	if err != nil {
		return nil, respond.Error(err)
	}
	return &BudgetsOutput{Body: toBudgetsView(view)}, nil
}

type DeleteBudgetInput struct {
	Category string `path:"category"`
}

func (h *Handler) delete(ctx context.Context, input *DeleteBudgetInput) (*BudgetsOutput, error) {
	view, err := h.Budgets.Delete(ctx, input.Category)
	if err != nil {
		return nil, respond.Error(err)
	}
	return &BudgetsOutput{Body: toBudgetsView(view)}, nil
}
