package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-client/internal/service"
)

// SaveBudget creates a budget, or updates its limit when Update is set.
type SaveBudget struct {
	Category     string
	MonthlyLimit decimal.Decimal
	Update       bool
}

func (a *SaveBudget) Name() string {
	if a.Update {
		return "UpdateBudget"
	}
	return "AddBudget"
}

func (a *SaveBudget) Perform(ctx context.Context, svc *service.Service) error {
	if a.Update {
		return svc.Budgets.UpdateBudget(ctx, a.Category, a.MonthlyLimit)
	}
	return svc.Budgets.AddBudget(ctx, a.Category, a.MonthlyLimit)
}

type DeleteBudget struct {
	Category string
}

func (a *DeleteBudget) Name() string { return "DeleteBudget" }

func (a *DeleteBudget) Perform(ctx context.Context, svc *service.Service) error {
	return svc.Budgets.DeleteBudget(ctx, a.Category)
}
