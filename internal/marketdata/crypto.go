package marketdata

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/carson-networks/finance-client/internal/chart"
)

// CryptoSource reads coin price history from a CoinGecko style API.
type CryptoSource struct {
	client requester
}

// NewCryptoSource creates a new CryptoSource.
func NewCryptoSource(client requester) *CryptoSource {
	return &CryptoSource{client: client}
}

type marketChart struct {
	Prices []chart.PricePoint `json:"prices"`
}

func (s *CryptoSource) History(ctx context.Context, coinID, currency string, days int) ([]chart.PricePoint, error) {
	query := url.Values{
		"vs_currency": {currency},
		"days":        {strconv.Itoa(days)},
	}

	var resp marketChart
	resource := "coins/" + url.PathEscape(coinID) + "/market_chart"
	if err := s.client.Get(ctx, resource, query, &resp); err != nil {
		return nil, fmt.Errorf("crypto history %s: %w", coinID, err)
	}
	if resp.Prices == nil {
		return []chart.PricePoint{}, nil
	}
	return resp.Prices, nil
}
