package service

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "Income"
	TransactionExpense TransactionType = "Expense"
)

func (t TransactionType) IsIncome() bool {
	return strings.EqualFold(string(t), string(TransactionIncome))
}

func (t TransactionType) IsExpense() bool {
	return strings.EqualFold(string(t), string(TransactionExpense))
}

// Valid reports whether t is Income or Expense in any letter case.
func (t TransactionType) Valid() bool {
	return t.IsIncome() || t.IsExpense()
}

// Canonical returns the type with its canonical spelling, or t unchanged
// when it is not a known type.
func (t TransactionType) Canonical() TransactionType {
	switch {
	case t.IsIncome():
		return TransactionIncome
	case t.IsExpense():
		return TransactionExpense
	}
	return t
}

// Transaction represents a transaction in the service layer.
// Date is zero when the backend sent a date that could not be parsed;
// RawDate keeps what was sent.
type Transaction struct {
	ID          string
	Type        TransactionType
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
	RawDate     string
}

// HasValidDate reports whether the transaction can take part in date math.
func (t Transaction) HasValidDate() bool {
	return !t.Date.IsZero()
}

type transactionWire struct {
	identifier
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        timestamp       `json:"date"`
}

func (w transactionWire) toTransaction() Transaction {
	return Transaction{
		ID:          w.value(),
		Type:        TransactionType(w.Type).Canonical(),
		Amount:      w.Amount,
		Category:    w.Category,
		Description: w.Description,
		Date:        w.Date.Time,
		RawDate:     w.Date.Raw,
	}
}

// transactionList decodes either a bare array or {"transactions": [...]}.
type transactionList []transactionWire

func (l *transactionList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			Transactions []transactionWire `json:"transactions"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return err
		}
		*l = envelope.Transactions
		return nil
	}

	var items []transactionWire
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

type transactionPayload struct {
	Type        string      `json:"type"`
	Amount      json.Number `json:"amount"`
	Category    string      `json:"category"`
	Description string      `json:"description,omitempty"`
	Date        string      `json:"date"`
}

func newTransactionPayload(t Transaction) transactionPayload {
	return transactionPayload{
		Type:        string(t.Type.Canonical()),
		Amount:      wireAmount(t.Amount),
		Category:    t.Category,
		Description: t.Description,
		Date:        wireDate(t.Date),
	}
}
