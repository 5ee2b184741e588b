package service

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type SavingsGoal struct {
	ID            string
	GoalName      string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	StartDate     time.Time
	Deadline      time.Time
}

type savingsGoalWire struct {
	identifier
	GoalName      string          `json:"goalName"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	StartDate     timestamp       `json:"startDate"`
	Deadline      timestamp       `json:"deadline"`
}

func (w savingsGoalWire) toSavingsGoal() SavingsGoal {
	return SavingsGoal{
		ID:            w.value(),
		GoalName:      w.GoalName,
		TargetAmount:  w.TargetAmount,
		CurrentAmount: w.CurrentAmount,
		StartDate:     w.StartDate.Time,
		Deadline:      w.Deadline.Time,
	}
}

type savingsGoalPayload struct {
	GoalName      string      `json:"goalName"`
	TargetAmount  json.Number `json:"targetAmount"`
	CurrentAmount json.Number `json:"currentAmount"`
	StartDate     string      `json:"startDate"`
	Deadline      string      `json:"deadline"`
}

func newSavingsGoalPayload(g SavingsGoal) savingsGoalPayload {
	return savingsGoalPayload{
		GoalName:      g.GoalName,
		TargetAmount:  wireAmount(g.TargetAmount),
		CurrentAmount: wireAmount(g.CurrentAmount),
		StartDate:     wireDate(g.StartDate),
		Deadline:      wireDate(g.Deadline),
	}
}
