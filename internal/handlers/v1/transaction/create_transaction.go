package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-client/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-client/internal/operator/actions"
)

// processor queues mutations. The operator delegator implements it.
type processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body TransactionBody
}

// TransactionOutput carries one stored transaction.
type TransactionOutput struct {
	Status int `json:"-"`
	Body   Transaction
}

// CreateTransactionHandler handles POST /v1/transactions.
type CreateTransactionHandler struct {
	Operator processor
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(op processor) *CreateTransactionHandler {
	return &CreateTransactionHandler{Operator: op}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transactions",
		Summary:       "Create transaction",
		Description:   "Creates a new transaction and returns it as stored.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*TransactionOutput, error) {
	tx, err := parseTransactionBody(input.Body)
	if err != nil {
		return nil, err
	}

	action := &actions.AddTransaction{Transaction: tx}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, respond.Error(err)
	}

	respond.AddData(ctx, "transactionID", action.Created.ID)
	return &TransactionOutput{Status: http.StatusCreated, Body: FromService(action.Created)}, nil
}
