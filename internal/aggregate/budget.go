package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-client/internal/service"
)

// CalculateRemaining attaches RemainingBudget to every budget: the monthly
// limit minus the expenses filed under the same category. With no budgets or
// no transactions the input is returned as is, without remaining amounts.
func CalculateRemaining(budgets []service.Budget, transactions []service.Transaction) []service.Budget {
	if len(budgets) == 0 || len(transactions) == 0 {
		return budgets
	}

	spent := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.Type.IsExpense() {
			spent[t.Category] = spent[t.Category].Add(t.Amount)
		}
	}

	out := make([]service.Budget, len(budgets))
	for i, b := range budgets {
		remaining := b.MonthlyLimit.Sub(spent[b.Category])
		b.RemainingBudget = &remaining
		out[i] = b
	}
	return out
}
