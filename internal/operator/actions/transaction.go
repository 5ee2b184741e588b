package actions

import (
	"context"

	"github.com/carson-networks/finance-client/internal/service"
)

type AddTransaction struct {
	Transaction service.Transaction

	// Created is set by Perform.
	Created service.Transaction
}

func (a *AddTransaction) Name() string { return "AddTransaction" }

func (a *AddTransaction) Perform(ctx context.Context, svc *service.Service) error {
	created, err := svc.Transactions.AddTransaction(ctx, a.Transaction)
	if err != nil {
		return err
	}
	a.Created = created
	return nil
}

type DeleteTransaction struct {
	ID string
}

func (a *DeleteTransaction) Name() string { return "DeleteTransaction" }

func (a *DeleteTransaction) Perform(ctx context.Context, svc *service.Service) error {
	return svc.Transactions.DeleteTransaction(ctx, a.ID)
}

type UpdateTransaction struct {
	Transaction service.Transaction
	// Updated is set by Perform.
	Updated service.Transaction
}

func (a *UpdateTransaction) Name() string { return "UpdateTransaction" }

func (a *UpdateTransaction) Perform(ctx context.Context, svc *service.Service) error {
	updated, err := svc.Transactions.UpdateTransaction(ctx, a.Transaction)
	if err != nil {
		return err
	}
	a.Updated = updated
	return nil
}
