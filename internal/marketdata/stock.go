package marketdata

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-client/internal/chart"
	"github.com/carson-networks/finance-client/internal/gateway"
)

const defaultStockInterval = "1h"

var stockDatetimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// StockSource reads stock price history from a Twelve Data style API.
type StockSource struct {
	client   requester
	apiKey   string
	interval string
	now      func() time.Time
}

// NewStockSource creates a new StockSource using apiKey.
func NewStockSource(client requester, apiKey string) *StockSource {
	return &StockSource{
		client:   client,
		apiKey:   apiKey,
		interval: defaultStockInterval,
		now:      time.Now,
	}
}

type timeSeries struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Values  []struct {
		Datetime string `json:"datetime"`
		Close    string `json:"close"`
	} `json:"values"`
}

// History asks for the series starting days ago. The currency is not sent;
// quotes come in the listing currency of the symbol.
func (s *StockSource) History(ctx context.Context, symbol, currency string, days int) ([]chart.PricePoint, error) {
	start := s.now().UTC().AddDate(0, 0, -days)
	query := url.Values{
		"symbol":     {symbol},
		"interval":   {s.interval},
		"start_date": {start.Format("2006-01-02")},
		"apikey":     {s.apiKey},
	}

	var resp timeSeries
	if err := s.client.Get(ctx, "time_series", query, &resp); err != nil {
		return nil, fmt.Errorf("stock history %s: %w", symbol, err)
	}
	// Twelve Data reports some failures inside a 200 response.
	if strings.EqualFold(resp.Status, "error") {
		return nil, &gateway.Error{Status: resp.Code, Message: resp.Message, Resource: "time_series"}
	}

	points := make([]chart.PricePoint, 0, len(resp.Values))
	for _, v := range resp.Values {
		when, err := parseStockDatetime(v.Datetime)
		if err != nil {
			return nil, fmt.Errorf("stock history %s: %w", symbol, err)
		}
		closing, err := decimal.NewFromString(v.Close)
		if err != nil {
			return nil, fmt.Errorf("stock history %s: close %q: %w", symbol, v.Close, err)
		}
		points = append(points, chart.PricePoint{Time: when, Value: closing})
	}
	return points, nil
}

func parseStockDatetime(raw string) (time.Time, error) {
	for _, layout := range stockDatetimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", raw)
}
