package actions

import (
	"context"

	"github.com/carson-networks/finance-client/internal/service"
)

// SaveSavingsGoal creates the goal when it has no ID and updates it otherwise.
type SaveSavingsGoal struct {
	Goal service.SavingsGoal
}

func (a *SaveSavingsGoal) Name() string {
	if a.Goal.ID == "" {
		return "AddSavingsGoal"
	}
	return "UpdateSavingsGoal"
}

func (a *SaveSavingsGoal) Perform(ctx context.Context, svc *service.Service) error {
	if a.Goal.ID == "" {
		return svc.SavingsGoals.AddSavingsGoal(ctx, a.Goal)
	}
	return svc.SavingsGoals.UpdateSavingsGoal(ctx, a.Goal)
}

type DeleteSavingsGoal struct {
	ID string
}

func (a *DeleteSavingsGoal) Name() string { return "DeleteSavingsGoal" }

func (a *DeleteSavingsGoal) Perform(ctx context.Context, svc *service.Service) error {
	return svc.SavingsGoals.DeleteSavingsGoal(ctx, a.ID)
}
