package debt

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-client/internal/controller"
	"github.com/carson-networks/finance-client/internal/handlers/v1/respond"
)

type debtsController interface {
	Load(ctx context.Context) (controller.DebtsView, error)
	Submit(ctx context.Context, form controller.DebtForm) (controller.DebtsView, error)
	MarkAsPaid(ctx context.Context, id string) (controller.DebtsView, error)
	Delete(ctx context.Context, id string) (controller.DebtsView, error)
}

// Handler serves the debts page.
type Handler struct {
	Debts debtsController
}

// NewHandler creates a new Handler for the debt endpoints.
func NewHandler(d debtsController) *Handler {
	return &Handler{Debts: d}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-debts",
		Method:      http.MethodGet,
		Path:        "/v1/debts",
		Summary:     "List debts",
		Tags:        []string{"Debts"},
	}, h.list)

	huma.Register(api, huma.Operation{
		OperationID: "save-debt",
		Method:      http.MethodPost,
		Path:        "/v1/debts",
		Summary:     "Create or update a debt",
		Description: "Creates a debt, or updates the debt whose id is given.",
		Tags:        []string{"Debts"},
	}, h.save)

	huma.Register(api, huma.Operation{
		OperationID: "mark-debt-paid",
		Method:      http.MethodPut,
		Path:        "/v1/debts/{id}/paid",
		Summary:     "Mark a debt as paid",
		Tags:        []string{"Debts"},
	}, h.markPaid)

	huma.Register(api, huma.Operation{
		OperationID: "delete-debt",
		Method:      http.MethodDelete,
		Path:        "/v1/debts/{id}",
		Summary:     "Delete a debt",
		Tags:        []string{"Debts"},
	}, h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*DebtsOutput, error) {
	stopTimer := respond.Timer(ctx, "loadDebtsMs")
	view, err := h.Debts.Load(ctx)
	stopTimer()
	if err != nil {
		return nil, respond.Error(err)
	}
	return &DebtsOutput{Body: toDebtsView(view)}, nil
}

type SaveDebtInput struct {
	Body struct {
		ID          string `json:"id,omitempty" doc:"Debt to update; empty creates a debt"`
		Creditor    string `json:"creditor,omitempty"`
		Description string `json:"description,omitempty"`
		Amount      string `json:"amount,omitempty" doc:"Decimal amount owed"`
		Deadline    string `json:"deadline,omitempty" doc:"YYYY-MM-DD"`
	}
}

func (h *Handler) save(ctx context.Context, input *SaveDebtInput) (*DebtsOutput, error) {
	amount, err := respond.ParseAmount("amount", input.Body.Amount)
	if err != nil {
		return nil, err
	}
	deadline, err := respond.ParseDate("deadline", input.Body.Deadline)
	if err != nil {
		return nil, err
	}

	view, err := h.Debts.Submit(ctx, controller.DebtForm{
		ID:          input.Body.ID,
		Creditor:    input.Body.Creditor,
		Description: input.Body.Description,
		Amount:      amount,
		Deadline:    deadline,
	})
	if err != nil {
		return nil, respond.Error(err)
	}
	return &DebtsOutput{Body: toDebtsView(view)}, nil
}

type DebtIDInput struct {
	ID string `path:"id"`
}

func (h *Handler) markPaid(ctx context.Context, input *DebtIDInput) (*DebtsOutput, error) {
	view, err := h.Debts.MarkAsPaid(ctx, input.ID)
	if err != nil {
		return nil, respond.Error(err)
	}
	return &DebtsOutput{Body: toDebtsView(view)}, nil
}

func (h *Handler) delete(ctx context.Context, input *DebtIDInput) (*DebtsOutput, error) {
	view, err := h.Debts.Delete(ctx, input.ID)
	if err != nil {
		return nil, respond.Error(err)
	}
	return &DebtsOutput{Body: toDebtsView(view)}, nil
}
