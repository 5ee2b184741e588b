package finance

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-client/internal/controller"
	"github.com/carson-networks/finance-client/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-client/internal/service"
)

// AddTransactionBody is the finance page's transaction form.
type AddTransactionBody struct {
	Type        string `json:"type" doc:"Income or Expense"`
	Amount      string `json:"amount" doc:"Decimal amount"`
	Category    string `json:"category" doc:"Category from the list of the chosen type"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date" doc:"YYYY-MM-DD"`
}

type AddTransactionInput struct {
	Body AddTransactionBody
}

type transactionSubmitter interface {
	Submit(ctx context.Context, form controller.TransactionForm) (controller.FinanceView, error)
}

// AddTransactionHandler handles POST /v1/finance/transactions. Required
// fields are checked by the controller so the user sees its message.
type AddTransactionHandler struct {
	Finance transactionSubmitter
}

// NewAddTransactionHandler creates a new AddTransactionHandler.
func NewAddTransactionHandler(f transactionSubmitter) *AddTransactionHandler {
	return &AddTransactionHandler{Finance: f}
}

func (h *AddTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "add-finance-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/finance/transactions",
		Summary:     "Add transaction",
		Description: "Validates and adds a transaction, then returns the reloaded week.",
		Tags:        []string{"Finance"},
	}, h.handle)
}

func (h *AddTransactionHandler) handle(ctx context.Context, input *AddTransactionInput) (*WeekOutput, error) {
	amount, err := respond.ParseAmount("amount", input.Body.Amount)
	if err != nil {
		return nil, err
	}
	date, err := respond.ParseDate("date", input.Body.Date)
	if err != nil {
		return nil, err
	}

	view, err := h.Finance.Submit(ctx, controller.TransactionForm{
		Type:        service.TransactionType(input.Body.Type),
		Amount:      amount,
		Category:    input.Body.Category,
		Description: input.Body.Description,
		Date:        date,
	})
	if err != nil {
		return nil, respond.Error(err)
	}
	return &WeekOutput{Body: toWeekView(view)}, nil
}

type transactionDeleter interface {
	Delete(ctx context.Context, id string) (controller.FinanceView, error)
}

type DeleteTransactionInput struct {
	ID string `path:"id" doc:"Transaction ID"`
}

// DeleteTransactionHandler handles DELETE /v1/finance/transactions/{id}.
type DeleteTransactionHandler struct {
	Finance transactionDeleter
}

// NewDeleteTransactionHandler creates a new DeleteTransactionHandler.
func NewDeleteTransactionHandler(f transactionDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{Finance: f}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-finance-transaction",
		Method:      http.MethodDelete,
		Path:        "/v1/finance/transactions/{id}",
		Summary:     "Delete transaction",
		Tags:        []string{"Finance"},
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *DeleteTransactionInput) (*WeekOutput, error) {
	view, err := h.Finance.Delete(ctx, input.ID)
	if err != nil {
		return nil, respond.Error(err)
	}
	return &WeekOutput{Body: toWeekView(view)}, nil
}
