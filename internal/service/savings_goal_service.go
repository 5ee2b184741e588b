package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-client/internal/gateway"
)

const (
	savingsGoalsResource = "savings-goals"

	MessageGoalDates = "Start date must be before the deadline."
)

// SavingsGoalService manages savings goals. The savings goal service answers
// 404 for a user who never created a goal, which is read as no goals.
type SavingsGoalService struct {
	backend Requester
	logger  *logrus.Logger
}

// NewSavingsGoalService creates a new SavingsGoalService.
func NewSavingsGoalService(backend Requester, logger *logrus.Logger) *SavingsGoalService {
	return &SavingsGoalService{backend: backend, logger: logger}
}

func (s *SavingsGoalService) ListSavingsGoals(ctx context.Context) ([]SavingsGoal, error) {
	var wires []savingsGoalWire
	err := s.backend.Get(ctx, savingsGoalsResource, nil, &wires)
	if gateway.IsNotFound(err) {
		return []SavingsGoal{}, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]SavingsGoal, 0, len(wires))
	for _, w := range wires {
		g := w.toSavingsGoal()
		if g.CurrentAmount.IsNegative() {
			s.logger.WithField("goalID", g.ID).Warn("SavingsGoalService.droppedRecord")
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

// AddSavingsGoal creates a goal. The start date must strictly precede the deadline.
func (s *SavingsGoalService) AddSavingsGoal(ctx context.Context, g SavingsGoal) error {
	if err := validateSavingsGoal(g); err != nil {
		return err
	}
	return s.backend.Post(ctx, savingsGoalsResource, newSavingsGoalPayload(g), nil)
}

func (s *SavingsGoalService) UpdateSavingsGoal(ctx context.Context, g SavingsGoal) error {
	if g.ID == "" {
		return NewValidationError(MessageRequiredFields, "id")
	}
	if err := validateSavingsGoal(g); err != nil {
		return err
	}
	return s.backend.Put(ctx, resourcePath(savingsGoalsResource, g.ID), newSavingsGoalPayload(g), nil)
}

func (s *SavingsGoalService) DeleteSavingsGoal(ctx context.Context, id string) error {
	if id == "" {
		return NewValidationError(MessageRequiredFields, "id")
	}
	return s.backend.Delete(ctx, resourcePath(savingsGoalsResource, id))
}

func validateSavingsGoal(g SavingsGoal) error {
	check := fieldCheck{}
	check.require("goalName", g.GoalName != "")
	check.require("targetAmount", g.TargetAmount.IsPositive())
	check.require("currentAmount", !g.CurrentAmount.IsNegative())
	check.require("startDate", !g.StartDate.IsZero())
	check.require("deadline", !g.Deadline.IsZero())
	if err := check.err(); err != nil {
		return err
	}

	if !g.StartDate.Before(g.Deadline) {
		return NewValidationError(MessageGoalDates, "startDate", "deadline")
	}
	return nil
}
