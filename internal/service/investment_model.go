package service

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Investment is a position in a stock, coin or other asset. CurrentValue is
// supplied by the investment service and may be missing.
type Investment struct {
	ID           string
	Type         string
	Name         string
	Amount       decimal.Decimal
	Quantity     decimal.Decimal
	PurchaseDate time.Time
	CurrentValue *decimal.Decimal
	Description  string
	Status       string
	Currency     string
}

type investmentWire struct {
	identifier
	Type         string              `json:"type"`
	Name         string              `json:"name"`
	Amount       decimal.Decimal     `json:"amount"`
	Quantity     decimal.Decimal     `json:"quantity"`
	PurchaseDate timestamp           `json:"purchaseDate"`
	CurrentValue decimal.NullDecimal `json:"currentValue"`
	Description  string              `json:"description"`
	Status       string              `json:"status"`
	Currency     string              `json:"currency"`
}

func (w investmentWire) toInvestment() Investment {
	inv := Investment{
		ID:           w.value(),
		Type:         w.Type,
		Name:         w.Name,
		Amount:       w.Amount,
		Quantity:     w.Quantity,
		PurchaseDate: w.PurchaseDate.Time,
		Description:  w.Description,
		Status:       w.Status,
		Currency:     w.Currency,
	}
	if w.CurrentValue.Valid {
		value := w.CurrentValue.Decimal
		inv.CurrentValue = &value
	}
	return inv
}

type investmentPayload struct {
	Type         string      `json:"type"`
	Name         string      `json:"name"`
	Amount       json.Number `json:"amount"`
	Quantity     json.Number `json:"quantity"`
	PurchaseDate string      `json:"purchaseDate"`
	Description  string      `json:"description,omitempty"`
	Status       string      `json:"status,omitempty"`
	Currency     string      `json:"currency,omitempty"`
}

func newInvestmentPayload(i Investment) investmentPayload {
	return investmentPayload{
		Type:         i.Type,
		Name:         i.Name,
		Amount:       wireAmount(i.Amount),
		Quantity:     wireAmount(i.Quantity),
		PurchaseDate: wireDate(i.PurchaseDate),
		Description:  i.Description,
		Status:       i.Status,
		Currency:     i.Currency,
	}
}
