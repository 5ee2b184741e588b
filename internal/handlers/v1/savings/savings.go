package savings

import (
	"github.com/carson-networks/finance-client/internal/controller"
	"github.com/carson-networks/finance-client/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-client/internal/service"
)

type SavingsGoal struct {
	ID            string `json:"id"`
	GoalName      string `json:"goalName"`
	TargetAmount  string `json:"targetAmount"`
	CurrentAmount string `json:"currentAmount"`
	StartDate     string `json:"startDate"`
	Deadline      string `json:"deadline"`
}

type SavingsView struct {
	State            string                `json:"state"`
	Goals            []SavingsGoal         `json:"goals"`
	AvailableCapital string                `json:"availableCapital" doc:"Capital not yet put into savings goals"`
	MonthIncome      string                `json:"monthIncome"`
	MonthExpenses    string                `json:"monthExpenses"`
	Editing          string                `json:"editing,omitempty" doc:"ID of the goal being edited"`
	Notification     *respond.Notification `json:"notification,omitempty"`
}

type SavingsOutput struct {
	Body SavingsView
}

func fromService(g service.SavingsGoal) SavingsGoal {
	return SavingsGoal{
		ID:            g.ID,
		GoalName:      g.GoalName,
		TargetAmount:  g.TargetAmount.String(),
		CurrentAmount: g.CurrentAmount.String(),
		StartDate:     respond.FormatDate(g.StartDate),
		Deadline:      respond.FormatDate(g.Deadline),
	}
}

func toSavingsView(v controller.SavingsView) SavingsView {
	out := SavingsView{
		State:            string(v.State),
		Goals:            make([]SavingsGoal, len(v.Goals)),
		AvailableCapital: v.Capital.Available.String(),
		MonthIncome:      v.Capital.MonthIncome.String(),
		MonthExpenses:    v.Capital.MonthExpenses.String(),
		Editing:          v.Form.ID,
		Notification:     respond.FromNotification(v.Notification),
	}
	for i, g := range v.Goals {
		out.Goals[i] = fromService(g)
	}
	return out
}
