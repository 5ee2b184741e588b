package service

import "strings"

var (
	IncomeCategories = []string{"salary", "scholarship", "gifts", "other"}

	ExpenseCategories = []string{
		"groceries",
		"clothes",
		"school",
		"transportation",
		"gifts",
		"subscription",
		"eating",
		"health",
		"selfcare",
		"other",
	}
)

// IsKnownCategory reports whether category belongs to the list for txType.
func IsKnownCategory(txType TransactionType, category string) bool {
	list := ExpenseCategories
	if txType.IsIncome() {
		list = IncomeCategories
	}
	for _, c := range list {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}
