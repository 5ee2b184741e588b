package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-client/internal/service"
)

var (
	ErrAllocationOverLimit = service.NewValidationError("Total allocation percentage cannot exceed 100%.")
	ErrAllocationNegative  = service.NewValidationError("Allocation percentages cannot be negative.")

	hundred = decimal.NewFromInt(100)
)

// AllocationPercentages splits capital between asset classes, in percent.
type AllocationPercentages struct {
	Stocks  decimal.Decimal
	Crypto  decimal.Decimal
	Savings decimal.Decimal
}

func (p AllocationPercentages) Total() decimal.Decimal {
	return p.Stocks.Add(p.Crypto).Add(p.Savings)
}

// Allocation is the capital amount assigned to each asset class.
type Allocation struct {
	Stocks  decimal.Decimal
	Crypto  decimal.Decimal
	Savings decimal.Decimal
}

// CalculateAllocations converts percentages into amounts of capital. When
// the percentages are rejected it returns prior untouched with the error.
func CalculateAllocations(pct AllocationPercentages, capital decimal.Decimal, prior Allocation) (Allocation, error) {
	if pct.Stocks.IsNegative() || pct.Crypto.IsNegative() || pct.Savings.IsNegative() {
		return prior, ErrAllocationNegative
	}
	if pct.Total().GreaterThan(hundred) {
		return prior, ErrAllocationOverLimit
	}

	share := func(p decimal.Decimal) decimal.Decimal {
		return p.Div(hundred).Mul(capital)
	}

	return Allocation{
		Stocks:  share(pct.Stocks),
		Crypto:  share(pct.Crypto),
		Savings: share(pct.Savings),
	}, nil
}
