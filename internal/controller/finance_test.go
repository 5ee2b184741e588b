package controller

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-client/internal/aggregate"
	"github.com/carson-networks/finance-client/internal/operator/actions"
	"github.com/carson-networks/finance-client/internal/service"
)

func financeTx(id string, kind service.TransactionType, amount, category string, d time.Time) service.Transaction {
	return service.Transaction{ID: id, Type: kind, Amount: dec(amount), Category: category, Date: d}
}

// -- Load tests --

func TestFinance_LoadBuildsWeek(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)}
	source := staticTransactions(
		financeTx("t1", service.TransactionExpense, "30", "groceries", date(2024, 1, 1)),
		financeTx("t2", service.TransactionIncome, "200", "salary", date(2024, 1, 3)),
		financeTx("t3", service.TransactionExpense, "5", "eating", date(2023, 12, 20)),
	)
	f := NewFinance(source, &mockSubmitter{}, testOptions(clock))

	view, err := f.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateLoaded, view.State)
	assert.True(t, aggregate.IsSameDay(view.Week.Start, date(2024, 1, 1)))
	assert.Len(t, view.Transactions, 3)
	assert.Len(t, view.Groups, 3)
	require.Len(t, view.WeeklySummary, 7)
	assert.True(t, view.WeeklySummary[0].Spent.Equal(dec("30")))
	assert.True(t, view.WeeklySummary[2].Earned.Equal(dec("200")))
	assert.Nil(t, view.Notification)
}

func TestFinance_LoadFailureClearsTransactions(t *testing.T) {
	clock := &fakeClock{now: date(2024, 1, 3)}
	calls := int32(0)
	source := transactionsFunc(func(ctx context.Context) ([]service.Transaction, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return []service.Transaction{financeTx("t1", service.TransactionExpense, "30", "groceries", date(2024, 1, 1))}, nil
		}
		return nil, errBackend
	})
	f := NewFinance(source, &mockSubmitter{}, testOptions(clock))

	_, err := f.Load(context.Background())
	require.NoError(t, err)

	view, err := f.Load(context.Background())
	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, MessageTransactionsLoadFailed, failure.Message)
	assert.Equal(t, StateLoadFailed, view.State)
	assert.Empty(t, view.Transactions)
	require.Len(t, view.WeeklySummary, 7)
	assert.True(t, view.WeeklySummary[0].Spent.IsZero())
	require.NotNil(t, view.Notification)
	assert.Equal(t, MessageTransactionsLoadFailed, view.Notification.Text)
}

func TestFinance_StaleLoadIsDiscarded(t *testing.T) {
	clock := &fakeClock{now: date(2024, 1, 3)}
	stale := []service.Transaction{financeTx("old", service.TransactionExpense, "1", "other", date(2024, 1, 1))}
	fresh := []service.Transaction{financeTx("new", service.TransactionExpense, "2", "other", date(2024, 1, 2))}

	started := make(chan struct{})
	release := make(chan struct{})
	calls := int32(0)
	source := transactionsFunc(func(ctx context.Context) ([]service.Transaction, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
			<-release
			return stale, nil
		}
		return fresh, nil
	})
	f := NewFinance(source, &mockSubmitter{}, testOptions(clock))

	done := make(chan FinanceView)
	go func() {
		view, _ := f.Load(context.Background())
		done <- view
	}()
	<-started

	_, err := f.Load(context.Background())
	require.NoError(t, err)
	close(release)
	<-done

	view := f.View()
	require.Len(t, view.Transactions, 1)
	assert.Equal(t, "new", view.Transactions[0].ID)
}

// -- Navigation tests --

func TestFinance_WeekNavigation(t *testing.T) {
	clock := &fakeClock{now: date(2024, 1, 3)}
	f := NewFinance(staticTransactions(), &mockSubmitter{}, testOptions(clock))

	view, err := f.NextWeek(context.Background())
	require.NoError(t, err)
	assert.True(t, aggregate.IsSameDay(view.Week.Start, date(2024, 1, 8)))

	view, err = f.PrevWeek(context.Background())
	require.NoError(t, err)
	view, err = f.PrevWeek(context.Background())
	require.NoError(t, err)
	assert.True(t, aggregate.IsSameDay(view.Week.Start, date(2023, 12, 25)))

	view, err = f.SetDate(context.Background(), date(2024, 3, 3))
	require.NoError(t, err)
	assert.True(t, aggregate.IsSameDay(view.Week.Start, date(2024, 2, 26)))
}

func TestFinance_ShowDayAndSummary(t *testing.T) {
	clock := &fakeClock{now: date(2024, 1, 3)}
	f := NewFinance(staticTransactions(
		financeTx("t1", service.TransactionExpense, "30", "groceries", date(2024, 1, 1)),
		financeTx("t2", service.TransactionIncome, "200", "salary", date(2024, 1, 3)),
	), &mockSubmitter{}, testOptions(clock))
	_, err := f.Load(context.Background())
	require.NoError(t, err)

	view := f.ShowDay(date(2024, 1, 3))
	require.NotNil(t, view.SelectedDay)
	require.Len(t, view.SelectedDay.Transactions, 1)
	assert.Equal(t, "t2", view.SelectedDay.Transactions[0].ID)

	view = f.ShowWeeklySummary()
	assert.Nil(t, view.SelectedDay)
}

func TestFinance_Calendar(t *testing.T) {
	clock := &fakeClock{now: date(2024, 1, 3)}
	f := NewFinance(staticTransactions(
		financeTx("t1", service.TransactionExpense, "30", "groceries", date(2024, 1, 1)),
		financeTx("t2", service.TransactionExpense, "20", "eating", date(2024, 1, 1)),
	), &mockSubmitter{}, testOptions(clock))
	_, err := f.Load(context.Background())
	require.NoError(t, err)

	events := f.Calendar()
	require.Len(t, events, 1)
	assert.True(t, events[0].Amount.Equal(dec("50")))
}

// -- Submit tests --

func TestFinance_SubmitValidationNeverSubmits(t *testing.T) {
	clock := &fakeClock{now: date(2024, 1, 3)}
	submitter := &mockSubmitter{}
	f := NewFinance(staticTransactions(), submitter, testOptions(clock))

	view, err := f.Submit(context.Background(), TransactionForm{Type: service.TransactionExpense, Category: "groceries"})
	require.ErrorIs(t, err, service.ErrValidation)
	assert.Equal(t, StateSubmitFailed, view.State)
	require.NotNil(t, view.Notification)
	assert.Equal(t, service.MessageRequiredFields, view.Notification.Text)

	_, err = f.Submit(context.Background(), TransactionForm{
		Type: service.TransactionIncome, Amount: dec("10"), Category: "groceries", Date: date(2024, 1, 2),
	})
	require.ErrorIs(t, err, service.ErrValidation)

	submitter.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestFinance_SubmitReloadsThenNotifies(t *testing.T) {
	clock := &fakeClock{now: date(2024, 1, 3)}
	submitter := &mockSubmitter{}
	submitter.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.AddTransaction) bool {
		return a.Transaction.Category == "groceries" && a.Transaction.Type == service.TransactionExpense
	})).Return(nil).Once()

	loads := int32(0)
	source := transactionsFunc(func(ctx context.Context) ([]service.Transaction, error) {
		atomic.AddInt32(&loads, 1)
		return nil, nil
	})
	f := NewFinance(source, submitter, testOptions(clock))

	view, err := f.Submit(context.Background(), TransactionForm{
		Type: "expense", Amount: dec("12.50"), Category: "groceries", Date: date(2024, 1, 2),
	})
	require.NoError(t, err)
	assert.Equal(t, StateSubmitSucceeded, view.State)
	require.NotNil(t, view.Notification)
	assert.Equal(t, MessageTransactionAdded, view.Notification.Text)
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
	submitter.AssertExpectations(t)
}

func TestFinance_DeleteFailure(t *testing.T) {
	clock := &fakeClock{now: date(2024, 1, 3)}
	submitter := &mockSubmitter{}
	submitter.On("Process", mock.Anything, &actions.DeleteTransaction{ID: "t1"}).Return(errBackend)
	f := NewFinance(staticTransactions(), submitter, testOptions(clock))

	view, err := f.Delete(context.Background(), "t1")
	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, MessageTransactionDelFailed, failure.Message)
	assert.Equal(t, StateSubmitFailed, view.State)
	require.NotNil(t, view.Notification)
	assert.Equal(t, MessageTransactionDelFailed, view.Notification.Text)
	submitter.AssertExpectations(t)
}

func TestFinance_SubmitAfterFailedLoadReportsRejection(t *testing.T) {
	clock := &fakeClock{now: date(2024, 1, 3)}
	submitter := &mockSubmitter{}
	f := NewFinance(failingTransactions(errBackend), submitter, testOptions(clock))

	view, err := f.Load(context.Background())
	require.Error(t, err)
	require.NotNil(t, view.Notification)
	assert.Equal(t, MessageTransactionsLoadFailed, view.Notification.Text)

	view, err = f.Submit(context.Background(), TransactionForm{})
	require.ErrorIs(t, err, service.ErrValidation)
	assert.Equal(t, StateSubmitFailed, view.State)
	require.NotNil(t, view.Notification)
	assert.Equal(t, NotificationError, view.Notification.Kind)
	assert.Equal(t, service.MessageRequiredFields, view.Notification.Text)
	submitter.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestFinance_SubmitFailure(t *testing.T) {
	clock := &fakeClock{now: date(2024, 1, 3)}
	submitter := &mockSubmitter{}
	submitter.On("Process", mock.Anything, mock.Anything).Return(errBackend)
	f := NewFinance(staticTransactions(), submitter, testOptions(clock))

	view, err := f.Submit(context.Background(), TransactionForm{
		Type: "expense", Amount: dec("12.50"), Category: "groceries", Date: date(2024, 1, 2),
	})
	require.Error(t, err)
	assert.Equal(t, StateSubmitFailed, view.State)
	require.NotNil(t, view.Notification)
	assert.Equal(t, MessageTransactionAddFailed, view.Notification.Text)
}
