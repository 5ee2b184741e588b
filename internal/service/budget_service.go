package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const budgetResource = "budget"

// BudgetService manages per-category budgets through the budget service.
type BudgetService struct {
	backend Requester
	logger  *logrus.Logger
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(backend Requester, logger *logrus.Logger) *BudgetService {
	return &BudgetService{backend: backend, logger: logger}
}

// ListBudgets returns the user's budgets. When the backend sends more than
// one budget for a category only the first is kept.
func (s *BudgetService) ListBudgets(ctx context.Context) ([]Budget, error) {
	var wires []budgetWire
	if err := s.backend.Get(ctx, budgetResource, nil, &wires); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(wires))
	out := make([]Budget, 0, len(wires))
	for _, w := range wires {
		b := w.toBudget()
		if b.Category == "" || seen[b.Category] {
			s.logger.WithField("category", b.Category).Warn("BudgetService.droppedRecord")
			continue
		}
		seen[b.Category] = true
		out = append(out, b)
	}
	return out, nil
}

// AddBudget creates the budget for category.
func (s *BudgetService) AddBudget(ctx context.Context, category string, monthlyLimit decimal.Decimal) error {
	check := fieldCheck{}
	check.require("category", category != "")
	check.require("monthlyLimit", monthlyLimit.IsPositive())
	if err := check.err(); err != nil {
		return err
	}

	payload := budgetPayload{Category: category, MonthlyLimit: wireAmount(monthlyLimit)}
	return s.backend.Post(ctx, budgetResource, payload, nil)
}

// UpdateBudget changes the monthly limit of the budget for category.
func (s *BudgetService) UpdateBudget(ctx context.Context, category string, newLimit decimal.Decimal) error {
	check := fieldCheck{}
	check.require("category", category != "")
	check.require("monthlyLimit", newLimit.IsPositive())
	if err := check.err(); err != nil {
		return err
	}

	return s.backend.Put(ctx, resourcePath(budgetResource, category), budgetLimitPayload{NewLimit: wireAmount(newLimit)}, nil)
}

func (s *BudgetService) DeleteBudget(ctx context.Context, category string) error {
	if category == "" {
		return NewValidationError(MessageRequiredFields, "category")
	}
	return s.backend.Delete(ctx, resourcePath(budgetResource, category))
}
