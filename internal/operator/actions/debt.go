package actions

import (
	"context"

	"github.com/carson-networks/finance-client/internal/service"
)

// SaveDebt creates the debt when it has no ID and updates it otherwise.
type SaveDebt struct {
	Debt service.Debt
}

func (a *SaveDebt) Name() string {
	if a.Debt.ID == "" {
		return "AddDebt"
	}
	return "UpdateDebt"
}

func (a *SaveDebt) Perform(ctx context.Context, svc *service.Service) error {
	if a.Debt.ID == "" {
		return svc.Debts.AddDebt(ctx, a.Debt)
	}
	return svc.Debts.UpdateDebt(ctx, a.Debt)
}

type MarkDebtPaid struct {
	ID string
}

func (a *MarkDebtPaid) Name() string { return "MarkDebtPaid" }

func (a *MarkDebtPaid) Perform(ctx context.Context, svc *service.Service) error {
	return svc.Debts.MarkDebtAsPaid(ctx, a.ID)
}

type DeleteDebt struct {
	ID string
}

func (a *DeleteDebt) Name() string { return "DeleteDebt" }

func (a *DeleteDebt) Perform(ctx context.Context, svc *service.Service) error {
	return svc.Debts.DeleteDebt(ctx, a.ID)
}
