package aggregate

import (
	"github.com/carson-networks/finance-client/internal/service"
)

const NotAvailable = "N/A"

// CalculateFluctuation returns the percentage change from the invested amount
// to the current value with two decimals, or "N/A" without a current value.
// A zero invested amount also yields "N/A".
func CalculateFluctuation(inv service.Investment) string {
	if inv.CurrentValue == nil || inv.Amount.IsZero() {
		return NotAvailable
	}

	change := inv.CurrentValue.Sub(inv.Amount).Div(inv.Amount).Mul(hundred)
	return change.StringFixed(2)
}
