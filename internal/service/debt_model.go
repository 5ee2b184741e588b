package service

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Debt is money owed to a creditor. Debts start unpaid.
type Debt struct {
	ID          string
	Creditor    string
	Description string
	Amount      decimal.Decimal
	Deadline    time.Time
	IsPaid      bool
}

type debtWire struct {
	identifier
	Creditor    string          `json:"creditor"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Deadline    timestamp       `json:"deadline"`
	IsPaid      bool            `json:"isPaid"`
}

func (w debtWire) toDebt() Debt {
	return Debt{
		ID:          w.value(),
		Creditor:    w.Creditor,
		Description: w.Description,
		Amount:      w.Amount,
		Deadline:    w.Deadline.Time,
		IsPaid:      w.IsPaid,
	}
}

type debtPayload struct {
	Creditor    string      `json:"creditor"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Deadline    string      `json:"deadline"`
	IsPaid      bool        `json:"isPaid"`
}

func newDebtPayload(d Debt) debtPayload {
	return debtPayload{
		Creditor:    d.Creditor,
		Description: d.Description,
		Amount:      wireAmount(d.Amount),
		Deadline:    wireDate(d.Deadline),
		IsPaid:      d.IsPaid,
	}
}
