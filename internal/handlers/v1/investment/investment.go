package investment

import (
	"maps"
	"slices"

	"github.com/carson-networks/finance-client/internal/aggregate"
	"github.com/carson-networks/finance-client/internal/controller"
	"github.com/carson-networks/finance-client/internal/handlers/v1/respond"
)

type Investment struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Name         string  `json:"name"`
	Amount       string  `json:"amount" doc:"Invested amount"`
	Quantity     string  `json:"quantity"`
	PurchaseDate string  `json:"purchaseDate"`
	CurrentValue *string `json:"currentValue,omitempty"`
	Description  string  `json:"description,omitempty"`
	Status       string  `json:"status,omitempty"`
	Currency     string  `json:"currency,omitempty"`
	Fluctuation  string  `json:"fluctuation" doc:"Percent change with two decimals, or N/A"`
}

type Capital struct {
	Baseline      string `json:"baseline"`
	GoalsTotal    string `json:"goalsTotal" doc:"Amount already put into savings goals"`
	MonthIncome   string `json:"monthIncome"`
	MonthExpenses string `json:"monthExpenses"`
	Available     string `json:"available"`
}

type Split struct {
	Stocks  string `json:"stocks"`
	Crypto  string `json:"crypto"`
	Savings string `json:"savings"`
}

type InvestmentsView struct {
	State         string                `json:"state"`
	Investments   []Investment          `json:"investments"`
	Capital       Capital               `json:"capital"`
	Percentages   Split                 `json:"percentages"`
	Allocation    Split                 `json:"allocation"`
	MissingFields []string              `json:"missingFields,omitempty" doc:"Fields the last submission lacked"`
	Notification  *respond.Notification `json:"notification,omitempty"`
}

type InvestmentsOutput struct {
	Body InvestmentsView
}

func toInvestmentsView(v controller.InvestmentsView) InvestmentsView {
	out := InvestmentsView{
		State:       string(v.State),
		Investments: make([]Investment, len(v.Investments)),
		Capital: Capital{
			Baseline:      v.Capital.Baseline.String(),
			GoalsTotal:    v.Capital.GoalsTotal.String(),
			MonthIncome:   v.Capital.MonthIncome.String(),
			MonthExpenses: v.Capital.MonthExpenses.String(),
			Available:     v.Capital.Available.String(),
		},
		Percentages:   toSplit(aggregate.Allocation(v.Percentages)),
		Allocation:    toSplit(v.Allocation),
		MissingFields: slices.Sorted(maps.Keys(v.MissingFields)),
		Notification:  respond.FromNotification(v.Notification),
	}
	for i, row := range v.Investments {
		inv := row.Investment
		out.Investments[i] = Investment{
			ID:           inv.ID,
			Type:         inv.Type,
			Name:         inv.Name,
			Amount:       inv.Amount.String(),
			Quantity:     inv.Quantity.String(),
			PurchaseDate: respond.FormatDate(inv.PurchaseDate),
			Description:  inv.Description,
			Status:       inv.Status,
			Currency:     inv.Currency,
			Fluctuation:  row.Fluctuation,
		}
		if inv.CurrentValue != nil {
			value := inv.CurrentValue.String()
			out.Investments[i].CurrentValue = &value
		}
	}
	return out
}

func toSplit(a aggregate.Allocation) Split {
	return Split{Stocks: a.Stocks.StringFixed(2), Crypto: a.Crypto.StringFixed(2), Savings: a.Savings.StringFixed(2)}
}
