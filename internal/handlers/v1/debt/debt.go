package debt

import (
	"github.com/carson-networks/finance-client/internal/controller"
	"github.com/carson-networks/finance-client/internal/handlers/v1/respond"
)

type Debt struct {
	ID          string `json:"id"`
	Creditor    string `json:"creditor"`
	Description string `json:"description"`
	Amount      string `json:"amount" doc:"Decimal amount owed"`
	Deadline    string `json:"deadline" doc:"RFC3339 due date"`
	IsPaid      bool   `json:"isPaid"`
}

type DebtsView struct {
	State        string                `json:"state"`
	Debts        []Debt                `json:"debts"`
	Editing      string                `json:"editing,omitempty" doc:"ID of the debt being edited"`
	Notification *respond.Notification `json:"notification,omitempty"`
}

type DebtsOutput struct {
	Body DebtsView
}

func toDebtsView(v controller.DebtsView) DebtsView {
	out := DebtsView{
		State:        string(v.State),
		Debts:        make([]Debt, len(v.Debts)),
		Editing:      v.Form.ID,
		Notification: respond.FromNotification(v.Notification),
	}
	for i, d := range v.Debts {
		out.Debts[i] = Debt{
			ID:          d.ID,
			Creditor:    d.Creditor,
			Description: d.Description,
			Amount:      d.Amount.String(),
			Deadline:    respond.FormatDate(d.Deadline),
			IsPaid:      d.IsPaid,
		}
	}
	return out
}
