package actions

import (
	"context"

	"github.com/carson-networks/finance-client/internal/service"
)

// SaveInvestment creates the investment when it has no ID and updates it otherwise.
type SaveInvestment struct {
	Investment service.Investment
}

func (a *SaveInvestment) Name() string {
	if a.Investment.ID == "" {
		return "CreateInvestment"
	}
	return "UpdateInvestment"
}

func (a *SaveInvestment) Perform(ctx context.Context, svc *service.Service) error {
	if a.Investment.ID == "" {
		return svc.Investments.CreateInvestment(ctx, a.Investment)
	}
	return svc.Investments.UpdateInvestment(ctx, a.Investment)
}

type DeleteInvestment struct {
	ID string
}

func (a *DeleteInvestment) Name() string { return "DeleteInvestment" }

func (a *DeleteInvestment) Perform(ctx context.Context, svc *service.Service) error {
	return svc.Investments.DeleteInvestment(ctx, a.ID)
}
