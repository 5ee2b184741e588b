package service

import (
	"context"

	"github.com/sirupsen/logrus"
)

const debtsResource = "debts"

// DebtService manages debts through the debt tracking service.
type DebtService struct {
	backend Requester
	logger  *logrus.Logger
}

// NewDebtService creates a new DebtService.
func NewDebtService(backend Requester, logger *logrus.Logger) *DebtService {
	return &DebtService{backend: backend, logger: logger}
}

// ListDebts returns the user's debts, paid or not.
func (s *DebtService) ListDebts(ctx context.Context) ([]Debt, error) {
	var wires []debtWire
	if err := s.backend.Get(ctx, debtsResource, nil, &wires); err != nil {
		return nil, err
	}

	out := make([]Debt, 0, len(wires))
	for _, w := range wires {
		d := w.toDebt()
		if d.Amount.IsNegative() {
			s.logger.WithField("debtID", d.ID).Warn("DebtService.droppedRecord")
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// AddDebt creates a pending debt. Creditor, description and deadline are
// mandatory and checked before anything is sent.
func (s *DebtService) AddDebt(ctx context.Context, d Debt) error {
	if err := validateDebt(d); err != nil {
		return err
	}
	d.IsPaid = false
	return s.backend.Post(ctx, debtsResource, newDebtPayload(d), nil)
}

func (s *DebtService) UpdateDebt(ctx context.Context, d Debt) error {
	if d.ID == "" {
		return NewValidationError(MessageRequiredFields, "id")
	}
	if err := validateDebt(d); err != nil {
		return err
	}
	return s.backend.Put(ctx, resourcePath(debtsResource, d.ID), newDebtPayload(d), nil)
}

func (s *DebtService) DeleteDebt(ctx context.Context, id string) error {
	if id == "" {
		return NewValidationError(MessageRequiredFields, "id")
	}
	return s.backend.Delete(ctx, resourcePath(debtsResource, id))
}

// MarkDebtAsPaid flips the debt to paid.
func (s *DebtService) MarkDebtAsPaid(ctx context.Context, id string) error {
	if id == "" {
		return NewValidationError(MessageRequiredFields, "id")
	}
	return s.backend.Put(ctx, resourcePath(debtsResource, id, "markAsPaid"), struct{}{}, nil)
}

func validateDebt(d Debt) error {
	check := fieldCheck{}
	check.require("creditor", d.Creditor != "")
	check.require("description", d.Description != "")
	check.require("amount", d.Amount.IsPositive())
	check.require("deadline", !d.Deadline.IsZero())
	return check.err()
}
