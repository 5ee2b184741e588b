package marketdata

import (
	"context"
	"net/url"
	"slices"
	"strings"

	"github.com/carson-networks/finance-client/internal/chart"
	"github.com/carson-networks/finance-client/internal/service"
)

type Domain string

const (
	DomainCrypto Domain = "crypto"
	DomainStock  Domain = "stock"
)

// Timeframes are the supported history lengths in days.
var Timeframes = []int{1, 7, 30, 365}

var Currencies = []string{"usd", "eur"}

var AllowedCryptos = []string{
	"bitcoin",
	"ethereum",
	"xrp",
	"solana",
	"chainlink",
	"bnb",
	"tether",
	"cardano",
}

type Stock struct {
	Symbol string
	Name   string
}

var AllowedStocks = []Stock{
	{Symbol: "NVDA", Name: "NVIDIA"},
	{Symbol: "TSLA", Name: "Tesla"},
	{Symbol: "AAPL", Name: "Apple"},
	{Symbol: "VWAGY", Name: "Volkswagen"},
	{Symbol: "MSFT", Name: "Microsoft"},
	{Symbol: "AMZN", Name: "Amazon"},
	{Symbol: "DIS", Name: "Disney"},
	{Symbol: "ALV", Name: "Allianz"},
	{Symbol: "GOOGL", Name: "Alphabet"},
	{Symbol: "SAP", Name: "SAP"},
	{Symbol: "RHM", Name: "Rheinmetall"},
	{Symbol: "BAYRY", Name: "Bayer"},
	{Symbol: "SIEGY", Name: "Siemens"},
}

// requester is the read side of a gateway client.
type requester interface {
	Get(ctx context.Context, resource string, query url.Values, out interface{}) error
}

// Source returns the price history of one item.
type Source interface {
	History(ctx context.Context, item, currency string, days int) ([]chart.PricePoint, error)
}

// Query identifies one price chart.
type Query struct {
	Domain   Domain
	Item     string
	Currency string
	Days     int
}

// Normalize lowercases the currency and checks the query against the
// supported domains, items, currencies and timeframes.
func (q Query) Normalize() (Query, error) {
	q.Currency = strings.ToLower(q.Currency)

	var bad []string
	switch q.Domain {
	case DomainCrypto:
		if !slices.Contains(AllowedCryptos, q.Item) {
			bad = append(bad, "item")
		}
	case DomainStock:
		if !slices.ContainsFunc(AllowedStocks, func(s Stock) bool { return s.Symbol == q.Item }) {
			bad = append(bad, "item")
		}
	default:
		bad = append(bad, "domain")
	}
	if !slices.Contains(Currencies, q.Currency) {
		bad = append(bad, "currency")
	}
	if !slices.Contains(Timeframes, q.Days) {
		bad = append(bad, "days")
	}

	if len(bad) > 0 {
		return q, service.NewValidationError("Unsupported market data selection.", bad...)
	}
	return q, nil
}

// CacheKey is the chart memo key of the query.
func (q Query) CacheKey() string {
	return chart.CacheKey(string(q.Domain), q.Item, q.Currency, q.Days)
}
