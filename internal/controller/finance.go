package controller

import (
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-client/internal/aggregate"
	"github.com/carson-networks/finance-client/internal/operator/actions"
	"github.com/carson-networks/finance-client/internal/service"
)

const (
	MessageTransactionsLoadFailed = "Failed to load transactions. Please try again."
	MessageTransactionAdded       = "Transaction added successfully!"
	MessageTransactionAddFailed   = "Error adding transaction. Please try again."
	MessageTransactionDeleted     = "Transaction deleted successfully!"
	MessageTransactionDelFailed   = "Error deleting transaction. Please try again."
	MessageUnknownCategory        = "Please choose a category that matches the transaction type."
)

type transactionSource interface {
	ListTransactions(ctx context.Context) ([]service.Transaction, error)
}

type SelectedDay struct {
	Date         time.Time
	Transactions []service.Transaction
}

type FinanceView struct {
	State         State
	ReferenceDate time.Time
	Week          aggregate.WeekRange
	Transactions  []service.Transaction
	Groups        []aggregate.DayGroup
	WeeklySummary []aggregate.WeeklySummaryDay
	SelectedDay   *SelectedDay
	Notification  *Notification
}

type TransactionForm struct {
	Type        service.TransactionType
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
}

// Finance drives the weekly transactions page.
type Finance struct {
	core

	source    transactionSource
	submitter Submitter

	reference    time.Time
	week         aggregate.WeekRange
	transactions []service.Transaction
	groups       []aggregate.DayGroup
	summary      []aggregate.WeeklySummaryDay
	selectedDay  *time.Time
}

// NewFinance creates a new Finance controller showing the current week.
func NewFinance(source transactionSource, submitter Submitter, opts Options) *Finance {
	f := &Finance{source: source, submitter: submitter}
	f.init("finance", opts)
	f.reference = f.now()
	f.week = aggregate.ComputeWeekRange(f.reference)
	f.recomputeLocked()
	return f
}

// Load fetches the transactions and rebuilds the derived views. On failure
// the list is emptied so the summary reads zero.
func (f *Finance) Load(ctx context.Context) (FinanceView, error) {
	f.mu.Lock()
	seq := f.beginLoadLocked()
	f.mu.Unlock()

	transactions, err := f.source.ListTransactions(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.seq.IsCurrent(seq) {
		return f.viewLocked(), nil
	}

	if err != nil {
		f.transactions = nil
		f.recomputeLocked()
		failure := f.loadFailedLocked(err, MessageTransactionsLoadFailed)
		return f.viewLocked(), failure
	}

	f.transactions = transactions
	f.recomputeLocked()
	f.state = StateLoaded
	return f.viewLocked(), nil
}

// SetDate moves to the week containing date and reloads.
func (f *Finance) SetDate(ctx context.Context, date time.Time) (FinanceView, error) {
	f.mu.Lock()
	f.moveLocked(date)
	f.mu.Unlock()
	return f.Load(ctx)
}

func (f *Finance) NextWeek(ctx context.Context) (FinanceView, error) {
	f.mu.Lock()
	f.moveLocked(f.reference.AddDate(0, 0, 7))
	f.mu.Unlock()
	return f.Load(ctx)
}

func (f *Finance) PrevWeek(ctx context.Context) (FinanceView, error) {
	f.mu.Lock()
	f.moveLocked(f.reference.AddDate(0, 0, -7))
	f.mu.Unlock()
	return f.Load(ctx)
}

func (f *Finance) moveLocked(date time.Time) {
	f.reference = date
	f.week = aggregate.ComputeWeekRange(date)
	f.selectedDay = nil
	f.recomputeLocked()
}

// ShowDay narrows the view to the transactions of one day.
func (f *Finance) ShowDay(day time.Time) FinanceView {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selectedDay = &day
	return f.viewLocked()
}

// ShowWeeklySummary drops the day selection.
func (f *Finance) ShowWeeklySummary() FinanceView {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selectedDay = nil
	return f.viewLocked()
}

// Submit adds a transaction and reloads the list.
func (f *Finance) Submit(ctx context.Context, form TransactionForm) (FinanceView, error) {
	if err := validateTransactionForm(form); err != nil {
		f.mu.Lock()
		defer f.mu.Unlock()
		failure := f.rejectLocked(err)
		return f.viewLocked(), failure
	}

	action := &actions.AddTransaction{Transaction: service.Transaction{
		Type:        form.Type.Canonical(),
		Amount:      form.Amount,
		Category:    form.Category,
		Description: form.Description,
		Date:        form.Date,
	}}
	if err := f.submit(ctx, f.submitter, action); err != nil {
		f.mu.Lock()
		defer f.mu.Unlock()
		failure := f.submitFailedLocked(err, MessageTransactionAddFailed)
		return f.viewLocked(), failure
	}

	return f.afterMutation(ctx, MessageTransactionAdded)
}

func (f *Finance) Delete(ctx context.Context, id string) (FinanceView, error) {
	if err := f.submit(ctx, f.submitter, &actions.DeleteTransaction{ID: id}); err != nil {
		f.mu.Lock()
		defer f.mu.Unlock()
		failure := f.submitFailedLocked(err, MessageTransactionDelFailed)
		return f.viewLocked(), failure
	}
	return f.afterMutation(ctx, MessageTransactionDeleted)
}

// afterMutation reloads and then reports the mutation. A failed reload keeps
// its own error notification.
func (f *Finance) afterMutation(ctx context.Context, message string) (FinanceView, error) {
	if _, err := f.Load(ctx); err != nil {
		return f.View(), nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitSucceededLocked(message)
	return f.viewLocked(), nil
}

// Calendar returns the calendar markers for every loaded transaction.
func (f *Finance) Calendar() []aggregate.CalendarEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return aggregate.AggregateTransactionsForCalendar(f.transactions)
}

func (f *Finance) View() FinanceView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.viewLocked()
}

func (f *Finance) recomputeLocked() {
	f.groups = aggregate.GroupByDate(f.transactions)
	f.summary = aggregate.ComputeWeeklySummary(f.week, f.transactions)
}

func (f *Finance) viewLocked() FinanceView {
	view := FinanceView{
		State:         f.state,
		ReferenceDate: f.reference,
		Week:          f.week,
		Transactions:  slices.Clone(f.transactions),
		Groups:        slices.Clone(f.groups),
		WeeklySummary: slices.Clone(f.summary),
		Notification:  f.activeNotificationLocked(),
	}
	if view.Transactions == nil {
		view.Transactions = []service.Transaction{}
	}
	if f.selectedDay != nil {
		view.SelectedDay = &SelectedDay{
			Date:         *f.selectedDay,
			Transactions: aggregate.TransactionsOn(f.transactions, *f.selectedDay),
		}
	}
	return view
}

func validateTransactionForm(form TransactionForm) error {
	var missing []string
	if !form.Type.Valid() {
		missing = append(missing, "type")
	}
	if !form.Amount.IsPositive() {
		missing = append(missing, "amount")
	}
	if form.Category == "" {
		missing = append(missing, "category")
	}
	if form.Date.IsZero() {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return service.NewValidationError(service.MessageRequiredFields, missing...)
	}
	if !service.IsKnownCategory(form.Type, form.Category) {
		return service.NewValidationError(MessageUnknownCategory, "category")
	}
	return nil
}
