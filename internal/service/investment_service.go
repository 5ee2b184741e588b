package service

import (
	"context"

	"github.com/sirupsen/logrus"
)

const investmentsResource = "investments"

// InvestmentService manages investments through the investment service.
type InvestmentService struct {
	backend Requester
	logger  *logrus.Logger
}

// NewInvestmentService creates a new InvestmentService.
func NewInvestmentService(backend Requester, logger *logrus.Logger) *InvestmentService {
	return &InvestmentService{backend: backend, logger: logger}
}

func (s *InvestmentService) ListInvestments(ctx context.Context) ([]Investment, error) {
	var wires []investmentWire
	if err := s.backend.Get(ctx, investmentsResource, nil, &wires); err != nil {
		return nil, err
	}

	out := make([]Investment, 0, len(wires))
	for _, w := range wires {
		inv := w.toInvestment()
		if inv.Amount.IsNegative() || inv.Quantity.IsNegative() {
			s.logger.WithField("investmentID", inv.ID).Warn("InvestmentService.droppedRecord")
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (s *InvestmentService) GetInvestment(ctx context.Context, id string) (Investment, error) {
	if id == "" {
		return Investment{}, NewValidationError(MessageRequiredFields, "id")
	}
	var w investmentWire
	if err := s.backend.Get(ctx, resourcePath(investmentsResource, id), nil, &w); err != nil {
		return Investment{}, err
	}
	return w.toInvestment(), nil
}

// CreateInvestment creates a position. Type, name, a positive amount and
// quantity, and a purchase date are mandatory.
func (s *InvestmentService) CreateInvestment(ctx context.Context, inv Investment) error {
	if err := ValidateInvestment(inv); err != nil {
		return err
	}
	return s.backend.Post(ctx, investmentsResource, newInvestmentPayload(inv), nil)
}

func (s *InvestmentService) UpdateInvestment(ctx context.Context, inv Investment) error {
	if inv.ID == "" {
		return NewValidationError(MessageRequiredFields, "id")
	}
	if err := ValidateInvestment(inv); err != nil {
		return err
	}
	return s.backend.Put(ctx, resourcePath(investmentsResource, inv.ID), newInvestmentPayload(inv), nil)
}

func (s *InvestmentService) DeleteInvestment(ctx context.Context, id string) error {
	if id == "" {
		return NewValidationError(MessageRequiredFields, "id")
	}
	return s.backend.Delete(ctx, resourcePath(investmentsResource, id))
}

// ValidateInvestment returns a ValidationError naming every missing field.
func ValidateInvestment(inv Investment) error {
	check := fieldCheck{}
	check.require("type", inv.Type != "")
	check.require("name", inv.Name != "")
	check.require("amount", inv.Amount.IsPositive())
	check.require("quantity", inv.Quantity.IsPositive())
	check.require("purchaseDate", !inv.PurchaseDate.IsZero())
	return check.err()
}
