package chart

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PriceLabelLayout formats price series labels as month/day/year.
const PriceLabelLayout = "1/2/2006"

// PricePoint is one sample of a price history.
type PricePoint struct {
	Time  time.Time
	Value decimal.Decimal
}

// UnmarshalJSON reads the [epochMillis, value] pair used by crypto price APIs.
func (p *PricePoint) UnmarshalJSON(data []byte) error {
	var pair []json.Number
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("price point: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("price point: expected 2 elements, got %d", len(pair))
	}

	millis, err := pair[0].Float64()
	if err != nil {
		return fmt.Errorf("price point timestamp: %w", err)
	}
	value, err := decimal.NewFromString(pair[1].String())
	if err != nil {
		return fmt.Errorf("price point value: %w", err)
	}

	p.Time = time.UnixMilli(int64(millis)).UTC()
	p.Value = value
	return nil
}

type PriceSeries struct {
	Labels []string
	Values []decimal.Decimal
}

// BuildPriceSeries maps points positionally onto labels and values.
func BuildPriceSeries(points []PricePoint) PriceSeries {
	series := PriceSeries{
		Labels: make([]string, len(points)),
		Values: make([]decimal.Decimal, len(points)),
	}
	for i, p := range points {
		series.Labels[i] = p.Time.Format(PriceLabelLayout)
		series.Values[i] = p.Value
	}
	return series
}
