package chart

import (
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultColor is used for categories missing from the color table.
const DefaultColor = "#000000"

var categoryColors = map[string]string{
	"salary":         "#28a745",
	"scholarship":    "#17a2b8",
	"gifts":          "#ffc107",
	"other":          "#fd7e14",
	"groceries":      "#fd7e14",
	"clothes":        "#B57A49",
	"school":         "#ffc107",
	"transportation": "#17a2b8",
	"subscriptions":  "#228B22",
	"subscription":   "#228B22",
	"eating":         "#ad67af",
	"health":         "#FF0F3F",
	"selfcare":       "#483b6d",
}

// CategoryColor looks a category up case-insensitively.
func CategoryColor(category string) string {
	if color, ok := categoryColors[strings.ToLower(category)]; ok {
		return color
	}
	return DefaultColor
}

// CategorySeries is pie chart data: Labels, Values and Colors are parallel.
type CategorySeries struct {
	Labels []string
	Values []decimal.Decimal
	Colors []string
}

// Dataset is one stacked bar layer.
type Dataset struct {
	Label  string
	Values []decimal.Decimal
	Color  string
}

type DateSeries struct {
	Labels   []string
	Datasets []Dataset
}

// BuildCategorySeries emits one entry per category, sorted by name.
func BuildCategorySeries(spendingByCategory map[string]decimal.Decimal) CategorySeries {
	series := CategorySeries{
		Labels: []string{},
		Values: []decimal.Decimal{},
		Colors: []string{},
	}
	for _, category := range slices.Sorted(maps.Keys(spendingByCategory)) {
		series.Labels = append(series.Labels, category)
		series.Values = append(series.Values, spendingByCategory[category])
		series.Colors = append(series.Colors, CategoryColor(category))
	}
	return series
}

// BuildDateSeries labels the x axis with the sorted dates and stacks one
// dataset per category found on any date. A category absent on a date
// contributes zero there.
func BuildDateSeries(spendingByDate map[string]map[string]decimal.Decimal) DateSeries {
	dates := slices.Sorted(maps.Keys(spendingByDate))

	seen := make(map[string]struct{})
	for _, byCategory := range spendingByDate {
		for category := range byCategory {
			seen[category] = struct{}{}
		}
	}
	categories := slices.Sorted(maps.Keys(seen))

	series := DateSeries{
		Labels:   dates,
		Datasets: make([]Dataset, 0, len(categories)),
	}
	for _, category := range categories {
		values := make([]decimal.Decimal, len(dates))
		for i, date := range dates {
			if v, ok := spendingByDate[date][category]; ok {
				values[i] = v
			} else {
				values[i] = decimal.Zero
			}
		}
		series.Datasets = append(series.Datasets, Dataset{
			Label:  category,
			Values: values,
			Color:  CategoryColor(category),
		})
	}
	return series
}
