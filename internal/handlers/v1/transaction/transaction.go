package transaction

import (
	"github.com/carson-networks/finance-client/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-client/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID          string `json:"id" doc:"Transaction ID"`
	Type        string `json:"type" doc:"Income or Expense"`
	Amount      string `json:"amount" doc:"Decimal amount"`
	Category    string `json:"category" doc:"Transaction category"`
	Description string `json:"description,omitempty" doc:"Free text description"`
	Date        string `json:"date" doc:"RFC3339 transaction date, empty when the stored date could not be read"`
	RawDate     string `json:"rawDate,omitempty" doc:"Date as stored when it could not be read"`
}

// FromService converts a service transaction into its API model.
func FromService(t service.Transaction) Transaction {
	out := Transaction{
		ID:          t.ID,
		Type:        string(t.Type),
		Amount:      t.Amount.String(),
		Category:    t.Category,
		Description: t.Description,
		Date:        respond.FormatDate(t.Date),
	}
	if !t.HasValidDate() {
		out.RawDate = t.RawDate
	}
	return out
}

// FromServiceList converts a list, never returning nil.
func FromServiceList(ts []service.Transaction) []Transaction {
	out := make([]Transaction, len(ts))
	for i, t := range ts {
		out[i] = FromService(t)
	}
	return out
}

// TransactionBody is the request body for creating or replacing a transaction.
type TransactionBody struct {
	Type        string `json:"type" required:"true" enum:"Income,Expense,income,expense" doc:"Income or Expense"`
	Amount      string `json:"amount" required:"true" doc:"Decimal amount"`
	Category    string `json:"category" required:"true" doc:"Transaction category"`
	Description string `json:"description,omitempty" doc:"Free text description"`
	Date        string `json:"date" required:"true" doc:"Date as YYYY-MM-DD or RFC3339"`
}

// parseTransactionBody parses the API body into a service transaction.
func parseTransactionBody(body TransactionBody) (service.Transaction, error) {
	amount, err := respond.ParseAmount("amount", body.Amount)
	if err != nil {
		return service.Transaction{}, err
	}
	date, err := respond.ParseDate("date", body.Date)
	if err != nil {
		return service.Transaction{}, err
	}

	return service.Transaction{
		Type:        service.TransactionType(body.Type).Canonical(),
		Amount:      amount,
		Category:    body.Category,
		Description: body.Description,
		Date:        date,
	}, nil
}
