package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-client/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-client/internal/operator/actions"
)

// UpdateTransactionInput is the Huma input for replacing a transaction.
type UpdateTransactionInput struct {
	ID   string `path:"id" doc:"Transaction ID"`
	Body TransactionBody
}

// UpdateTransactionHandler handles PUT /v1/transactions/{id}.
type UpdateTransactionHandler struct {
	Operator processor
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(op processor) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{Operator: op}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transactions/{id}",
		Summary:     "Update transaction",
		Description: "Replaces a transaction and returns it as stored.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*TransactionOutput, error) {
	tx, err := parseTransactionBody(input.Body)
	if err != nil {
		return nil, err
	}
	tx.ID = input.ID

	action := &actions.UpdateTransaction{Transaction: tx}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, respond.Error(err)
	}
	return &TransactionOutput{Status: http.StatusOK, Body: FromService(action.Updated)}, nil
}
