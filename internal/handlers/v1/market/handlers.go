// Package market serves price history charts for the supported coins and
// stocks.
package market

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-client/internal/controller"
	"github.com/carson-networks/finance-client/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-client/internal/marketdata"
)

type marketController interface {
	PriceSeries(ctx context.Context, q marketdata.Query) (controller.MarketView, error)
}

type PriceChart struct {
	Domain   string   `json:"domain"`
	Item     string   `json:"item"`
	Currency string   `json:"currency"`
	Days     int      `json:"days"`
	Labels   []string `json:"labels" doc:"Sample dates as month/day/year"`
	Values   []string `json:"values"`
	Cached   bool     `json:"cached" doc:"Served from the chart cache"`
}

type PriceChartOutput struct {
	Body PriceChart
}

type PriceHistoryInput struct {
	Domain   string `path:"domain" enum:"crypto,stock"`
	Item     string `path:"item" doc:"Coin id or stock symbol"`
	Currency string `query:"currency" default:"usd"`
	Days     int    `query:"days" default:"30" doc:"One of 1, 7, 30 or 365"`
}

type Handler struct {
	Market marketController
}

// NewHandler creates a new Handler for the market data endpoints.
func NewHandler(c marketController) *Handler {
	return &Handler{Market: c}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-price-history",
		Method:      http.MethodGet,
		Path:        "/v1/market/{domain}/{item}",
		Summary:     "Get price history",
		Description: "Returns the price chart of a coin or stock over a supported timeframe.",
		Tags:        []string{"Market"},
	}, h.priceHistory)
}

func (h *Handler) priceHistory(ctx context.Context, input *PriceHistoryInput) (*PriceChartOutput, error) {
	respond.AddData(ctx, "marketItem", input.Domain+"/"+input.Item)

	stopTimer := respond.Timer(ctx, "priceHistoryMs")
	view, err := h.Market.PriceSeries(ctx, marketdata.Query{
		Domain:   marketdata.Domain(input.Domain),
		Item:     input.Item,
		Currency: input.Currency,
		Days:     input.Days,
	})
	stopTimer()
	if err != nil {
		return nil, respond.Error(err)
	}

	out := PriceChart{
		Domain:   string(view.Query.Domain),
		Item:     view.Query.Item,
		Currency: view.Query.Currency,
		Days:     view.Query.Days,
		Labels:   view.Series.Labels,
		Values:   make([]string, len(view.Series.Values)),
		Cached:   view.Cached,
	}
	if out.Labels == nil {
		out.Labels = []string{}
	}
	for i, v := range view.Series.Values {
		out.Values[i] = v.String()
	}
	return &PriceChartOutput{Body: out}, nil
}
