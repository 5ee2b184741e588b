package aggregate

import (
	"github.com/carson-networks/finance-client/internal/service"
)

const (
	// DateKeyLayout renders a group key such as "Mon Jan 01 2024".
	DateKeyLayout = "Mon Jan 02 2006"

	InvalidDateKey = "Invalid Date"
)

type DayGroup struct {
	DateKey      string
	Transactions []service.Transaction
}

type BudgetGroup struct {
	Category string
	Budgets  []service.Budget
}

// DateKey is the calendar-day key a transaction is grouped under.
func DateKey(t service.Transaction) string {
	if !t.HasValidDate() {
		return InvalidDateKey
	}
	return t.Date.Format(DateKeyLayout)
}

// GroupByDate groups transactions by calendar day. Groups come out in the
// order their day was first seen and every transaction lands in exactly one
// group, undated ones under InvalidDateKey.
func GroupByDate(transactions []service.Transaction) []DayGroup {
	index := make(map[string]int)
	groups := []DayGroup{}

	for _, t := range transactions {
		key := DateKey(t)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DayGroup{DateKey: key})
		}
		groups[i].Transactions = append(groups[i].Transactions, t)
	}

	return groups
}

// GroupBudgetsByCategory mirrors GroupByDate for budgets. Categories are
// unique, so each group holds one budget.
func GroupBudgetsByCategory(budgets []service.Budget) []BudgetGroup {
	index := make(map[string]int)
	groups := []BudgetGroup{}

	for _, b := range budgets {
		i, ok := index[b.Category]
		if !ok {
			i = len(groups)
			index[b.Category] = i
			groups = append(groups, BudgetGroup{Category: b.Category})
		}
		groups[i].Budgets = append(groups[i].Budgets, b)
	}

	return groups
}
