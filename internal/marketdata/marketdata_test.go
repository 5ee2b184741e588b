package marketdata

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-client/internal/gateway"
	"github.com/carson-networks/finance-client/internal/service"
)

func newGatewayClient(t *testing.T, handler http.HandlerFunc) *gateway.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	client, err := gateway.NewClient(server.URL, gateway.NewHTTPClient(5*time.Second), logger)
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

// -- Query tests --

func TestQueryNormalize(t *testing.T) {
	q, err := Query{Domain: DomainCrypto, Item: "bitcoin", Currency: "USD", Days: 7}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "usd", q.Currency)
	assert.Equal(t, "crypto-bitcoin-usd-7", q.CacheKey())

	_, err = Query{Domain: DomainStock, Item: "SAP", Currency: "eur", Days: 365}.Normalize()
	assert.NoError(t, err)
}

func TestQueryNormalize_Rejections(t *testing.T) {
	_, err := Query{Domain: DomainCrypto, Item: "dogecoin", Currency: "gbp", Days: 3}.Normalize()
	require.ErrorIs(t, err, service.ErrValidation)

	var vErr *service.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"item", "currency", "days"}, vErr.Fields)

	_, err = Query{Domain: "bonds", Item: "x", Currency: "usd", Days: 1}.Normalize()
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"domain"}, vErr.Fields)
}

// -- CryptoSource tests --

func TestCryptoSource_History(t *testing.T) {
	client := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/bitcoin/market_chart", r.URL.Path)
		assert.Equal(t, "eur", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "30", r.URL.Query().Get("days"))
		writeJSON(w, `{"prices": [[1704067200000, 38000.5], [1704153600000, 39000]]}`)
	})

	points, err := NewCryptoSource(client).History(context.Background(), "bitcoin", "eur", 30)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.True(t, points[0].Time.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "38000.5", points[0].Value.String())
}

func TestCryptoSource_BackendError(t *testing.T) {
	client := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := NewCryptoSource(client).History(context.Background(), "bitcoin", "usd", 1)
	assert.Equal(t, http.StatusTooManyRequests, gateway.StatusOf(err))
}

// -- StockSource tests --

func TestStockSource_History(t *testing.T) {
	client := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/time_series", r.URL.Path)
		assert.Equal(t, "NVDA", q.Get("symbol"))
		assert.Equal(t, "1h", q.Get("interval"))
		assert.Equal(t, "2024-03-03", q.Get("start_date"))
		assert.Equal(t, "secret", q.Get("apikey"))

		body, _ := json.Marshal(map[string]interface{}{
			"status": "ok",
			"values": []map[string]string{
				{"datetime": "2024-03-10 15:00:00", "close": "875.28"},
				{"datetime": "2024-03-09", "close": "870"},
			},
		})
		writeJSON(w, string(body))
	})

	source := NewStockSource(client, "secret")
	source.now = func() time.Time { return time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC) }

	points, err := source.History(context.Background(), "NVDA", "usd", 7)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.True(t, points[0].Time.Equal(time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, "875.28", points[0].Value.String())
}

func TestStockSource_ErrorInsideOKResponse(t *testing.T) {
	client := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"status": "error", "code": 401, "message": "apikey parameter is incorrect"}`)
	})

	_, err := NewStockSource(client, "").History(context.Background(), "NVDA", "usd", 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, gateway.StatusOf(err))
	assert.ErrorContains(t, err, "apikey parameter is incorrect")
}

func TestStockSource_BadDatetime(t *testing.T) {
	client := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"values": [{"datetime": "yesterday", "close": "1"}]}`)
	})

	_, err := NewStockSource(client, "k").History(context.Background(), "NVDA", "usd", 1)
	assert.ErrorContains(t, err, "unrecognized datetime")
}
