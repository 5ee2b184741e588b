package service

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTransactionTestService() (*TransactionService, *mockRequester) {
	backend := new(mockRequester)
	return NewTransactionService(backend, quietLogger()), backend
}

// -- ListTransactions tests --

func TestListTransactions_BareArray(t *testing.T) {
	svc, backend := newTransactionTestService()
	backend.On("Get", mock.Anything, "transactions", url.Values(nil), mock.Anything).
		Run(respondWith(t, `[
			{"id":"t1","type":"expense","amount":30.5,"category":"groceries","date":"2024-01-01T09:30:00"},
			{"id":"t2","type":"Income","amount":"200","category":"salary","date":"2024-01-03"}
		]`)).Return(nil)

	txs, err := svc.ListTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "t1", txs[0].ID)
	assert.Equal(t, TransactionExpense, txs[0].Type)
	assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString("30.5")))
	assert.True(t, time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC).Equal(txs[0].Date))

	assert.Equal(t, TransactionIncome, txs[1].Type)
	assert.True(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC).Equal(txs[1].Date))
	backend.AssertExpectations(t)
}

func TestListTransactions_Envelope(t *testing.T) {
	svc, backend := newTransactionTestService()
	backend.On("Get", mock.Anything, "transactions", url.Values(nil), mock.Anything).
		Run(respondWith(t, `{"transactions":[{"_id":"m1","type":"Expense","amount":5,"category":"eating","date":1704067200000}]}`)).
		Return(nil)

	txs, err := svc.ListTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "m1", txs[0].ID)
	assert.True(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Equal(txs[0].Date))
}

func TestListTransactions_DropsInvalidRecordsKeepsBadDates(t *testing.T) {
	svc, backend := newTransactionTestService()
	backend.On("Get", mock.Anything, "transactions", url.Values(nil), mock.Anything).
		Run(respondWith(t, `[
			{"id":"ok","type":"Expense","amount":1,"category":"other","date":"yesterday"},
			{"id":"bad-type","type":"Transfer","amount":1,"category":"other","date":"2024-01-01"},
			{"id":"negative","type":"Income","amount":-4,"category":"salary","date":"2024-01-01"}
		]`)).Return(nil)

	txs, err := svc.ListTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "ok", txs[0].ID)
	assert.False(t, txs[0].HasValidDate())
	assert.Equal(t, "yesterday", txs[0].RawDate)
}

func TestListTransactions_BackendError(t *testing.T) {
	svc, backend := newTransactionTestService()
	backend.On("Get", mock.Anything, "transactions", url.Values(nil), mock.Anything).Return(errors.New("boom"))

	_, err := svc.ListTransactions(context.Background())
	assert.EqualError(t, err, "boom")
}

// -- SearchByCategory tests --

func TestSearchByCategory_SendsQuery(t *testing.T) {
	svc, backend := newTransactionTestService()
	backend.On("Get", mock.Anything, "transactions/search", mock.MatchedBy(func(q url.Values) bool {
		return len(q["category"]) == 1 && q["category"][0] == "eating"
	}), mock.Anything).Run(respondWith(t, `[]`)).Return(nil)

	txs, err := svc.SearchByCategory(context.Background(), "eating")
	require.NoError(t, err)
	assert.Empty(t, txs)
	backend.AssertExpectations(t)
}

// -- AddTransaction tests --

func TestAddTransaction_Success(t *testing.T) {
	svc, backend := newTransactionTestService()
	date := time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)

	backend.On("Post", mock.Anything, "transactions", mock.MatchedBy(func(body interface{}) bool {
		p := payloadJSON(t, body)
		return p["type"] == "Expense" && p["amount"] == 12.5 && p["category"] == "eating" && p["date"] == "2024-02-14"
	}), mock.Anything).Run(respondWith(t, `{"id":"new","type":"Expense","amount":12.5,"category":"eating","date":"2024-02-14"}`)).Return(nil)

	created, err := svc.AddTransaction(context.Background(), Transaction{
		Type:     "expense",
		Amount:   decimal.RequireFromString("12.50"),
		Category: "eating",
		Date:     date,
	})
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)
	backend.AssertExpectations(t)
}

func TestAddTransaction_MissingFieldsNeverCallsBackend(t *testing.T) {
	svc, backend := newTransactionTestService()

	_, err := svc.AddTransaction(context.Background(), Transaction{Type: "Expense"})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, []string{"amount", "category", "date"}, vErr.Fields)
	backend.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// -- DeleteTransaction tests --

func TestDeleteTransaction_EscapesID(t *testing.T) {
	svc, backend := newTransactionTestService()
	backend.On("Delete", mock.Anything, "transactions/a%2Fb").Return(nil)

	require.NoError(t, svc.DeleteTransaction(context.Background(), "a/b"))
	backend.AssertExpectations(t)
}
