package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-client/internal/service"
)

// DefaultBaselineCapital is the starting capital when none is configured.
var DefaultBaselineCapital = decimal.NewFromInt(10000)

// CapitalBreakdown explains an available capital figure. MonthIncome and
// MonthExpenses cover the calendar month of the reference time and are
// reported only; Available does not depend on them.
type CapitalBreakdown struct {
	Baseline      decimal.Decimal
	GoalsTotal    decimal.Decimal
	MonthIncome   decimal.Decimal
	MonthExpenses decimal.Decimal
	Available     decimal.Decimal
}

// CalculateAvailableCapital returns baseline minus the amount already put
// into savings goals.
// TODO: fold MonthIncome and MonthExpenses into Available once product
// decides whether the month's cash flow should count.
func CalculateAvailableCapital(baseline decimal.Decimal, transactions []service.Transaction, goals []service.SavingsGoal, now time.Time) CapitalBreakdown {
	breakdown := CapitalBreakdown{
		Baseline:      baseline,
		GoalsTotal:    decimal.Zero,
		MonthIncome:   decimal.Zero,
		MonthExpenses: decimal.Zero,
	}

	year, month, _ := now.Date()
	for _, t := range transactions {
		if !t.HasValidDate() {
			continue
		}
		ty, tm, _ := t.Date.Date()
		if ty != year || tm != month {
			continue
		}
		switch {
		case t.Type.IsIncome():
			breakdown.MonthIncome = breakdown.MonthIncome.Add(t.Amount)
		case t.Type.IsExpense():
			breakdown.MonthExpenses = breakdown.MonthExpenses.Add(t.Amount)
		}
	}

	for _, g := range goals {
		breakdown.GoalsTotal = breakdown.GoalsTotal.Add(g.CurrentAmount)
	}

	breakdown.Available = baseline.Sub(breakdown.GoalsTotal)
	return breakdown
}
