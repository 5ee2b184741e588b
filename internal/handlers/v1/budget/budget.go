package budget

import (
	"github.com/carson-networks/finance-client/internal/controller"
	"github.com/carson-networks/finance-client/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-client/internal/service"
)

// Budget is the API response model for a budget.
type Budget struct {
	Category        string  `json:"category"`
	MonthlyLimit    string  `json:"monthlyLimit" doc:"Decimal monthly limit"`
	RemainingBudget *string `json:"remainingBudget,omitempty" doc:"Limit minus this category's expenses, absent when nothing could be computed"`
}

type BudgetGroup struct {
	Category string   `json:"category"`
	Budgets  []Budget `json:"budgets"`
}

type BudgetsView struct {
	State        string                `json:"state"`
	Budgets      []Budget              `json:"budgets"`
	Groups       []BudgetGroup         `json:"groups"`
	Selected     string                `json:"selected,omitempty" doc:"Category being edited"`
	Notification *respond.Notification `json:"notification,omitempty"`
}

type BudgetsOutput struct {
	Body BudgetsView
}

func toBudgetsView(v controller.BudgetsView) BudgetsView {
	out := BudgetsView{
		State:        string(v.State),
		Budgets:      make([]Budget, len(v.Budgets)),
		Groups:       make([]BudgetGroup, len(v.Groups)),
		Selected:     v.Form.Selected,
		Notification: respond.FromNotification(v.Notification),
	}
	for i, b := range v.Budgets {
		out.Budgets[i] = fromService(b)
	}
	for i, g := range v.Groups {
		group := BudgetGroup{Category: g.Category, Budgets: make([]Budget, len(g.Budgets))}
		for j, b := range g.Budgets {
			group.Budgets[j] = fromService(b)
		}
		out.Groups[i] = group
	}
	return out
}

func fromService(b service.Budget) Budget {
	out := Budget{Category: b.Category, MonthlyLimit: b.MonthlyLimit.String()}
	if b.RemainingBudget != nil {
		remaining := b.RemainingBudget.String()
		out.RemainingBudget = &remaining
	}
	return out
}
