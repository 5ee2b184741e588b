package service

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Budget is a monthly spending limit for one category. RemainingBudget is
// nil until it has been derived from transactions.
type Budget struct {
	Category        string
	MonthlyLimit    decimal.Decimal
	RemainingBudget *decimal.Decimal
}

type budgetWire struct {
	Category     string          `json:"category"`
	CategoryName string          `json:"categoryName"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit"`
}

func (w budgetWire) toBudget() Budget {
	category := w.Category
	if category == "" {
		category = w.CategoryName
	}
	return Budget{Category: category, MonthlyLimit: w.MonthlyLimit}
}

type budgetPayload struct {
	Category     string      `json:"category"`
	MonthlyLimit json.Number `json:"monthlyLimit"`
}

type budgetLimitPayload struct {
	NewLimit json.Number `json:"newLimit"`
}
