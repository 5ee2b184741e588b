package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-client/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-client/internal/service"
)

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	Category string `query:"category" doc:"Only return transactions of this category"`
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction `json:"transactions" doc:"Transactions of the user"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context) ([]service.Transaction, error)
	SearchByCategory(ctx context.Context, category string) ([]service.Transaction, error)
}

// ListTransactionsHandler handles GET /v1/transactions.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transactions",
		Summary:     "List transactions",
		Description: "Returns every transaction of the user, optionally narrowed to one category.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	var (
		transactions []service.Transaction
		err          error
	)

	stopTimer := respond.Timer(ctx, "listTransactionsMs")
	if input.Category != "" {
		respond.AddData(ctx, "category", input.Category)
		transactions, err = h.TransactionService.SearchByCategory(ctx, input.Category)
	} else {
		transactions, err = h.TransactionService.ListTransactions(ctx)
	}
	stopTimer()
	if err != nil {
		return nil, respond.Error(err)
	}

	respond.AddData(ctx, "transactionCount", len(transactions))
	return &ListTransactionsOutput{Body: ListTransactionsResponseBody{
		Transactions: FromServiceList(transactions),
	}}, nil
}
