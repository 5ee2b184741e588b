package controller

import (
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/finance-client/internal/aggregate"
	"github.com/carson-networks/finance-client/internal/operator/actions"
	"github.com/carson-networks/finance-client/internal/service"
)

const (
	MessageGoalsLoadFailed      = "Failed to load savings goals."
	MessageGoalAdded            = "Savings goal added successfully!"
	MessageGoalAddFailed        = "Failed to add savings goal. Please try again."
	MessageGoalUpdated          = "Savings goal updated successfully!"
	MessageGoalUpdateFailed     = "Failed to update savings goal. Please try again."
	MessageGoalDeleted          = "Savings goal deleted successfully!"
	MessageGoalDeleteFailed     = "Failed to delete savings goal."
	MessageGoalExceedsAvailable = "Current amount cannot exceed the available capital."
)

// SavingsGoalForm is the editable goal. A non-empty ID updates that goal.
type SavingsGoalForm struct {
	ID            string
	GoalName      string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	StartDate     time.Time
	Deadline      time.Time
}

type SavingsView struct {
	State        State
	Goals        []service.SavingsGoal
	Transactions []service.Transaction
	Capital      aggregate.CapitalBreakdown
	Form         SavingsGoalForm
	Notification *Notification
}

// Savings drives the homepage: savings goals next to the capital that is
// still free to put into them.
type Savings struct {
	core

	goals        savingsGoalSource
	transactions transactionSource
	submitter    Submitter
	baseline     decimal.Decimal

	list    []service.SavingsGoal
	txs     []service.Transaction
	capital aggregate.CapitalBreakdown
	form    SavingsGoalForm
}

// NewSavings creates a new Savings controller; baseline is the starting capital.
func NewSavings(goals savingsGoalSource, transactions transactionSource, submitter Submitter,
	baseline decimal.Decimal, opts Options) *Savings {
	s := &Savings{goals: goals, transactions: transactions, submitter: submitter, baseline: baseline}
	s.init("savings", opts)
	s.capital = aggregate.CalculateAvailableCapital(baseline, nil, nil, s.now())
	return s
}

func (s *Savings) Load(ctx context.Context) (SavingsView, error) {
	s.mu.Lock()
	seq := s.beginLoadLocked()
	s.mu.Unlock()

	var (
		goals        []service.SavingsGoal
		transactions []service.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		goals, err = s.goals.ListSavingsGoals(gctx)
		return err
	})
	g.Go(func() (err error) {
		transactions, err = s.transactions.ListTransactions(gctx)
		return err
	})
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.seq.IsCurrent(seq) {
		return s.viewLocked(), nil
	}
	if err != nil {
		failure := s.loadFailedLocked(err, MessageGoalsLoadFailed)
		return s.viewLocked(), failure
	}

	s.list = goals
	s.txs = transactions
	s.capital = aggregate.CalculateAvailableCapital(s.baseline, transactions, goals, s.now())
	s.state = StateLoaded
	return s.viewLocked(), nil
}

func (s *Savings) Edit(id string) (SavingsView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.list, func(g service.SavingsGoal) bool { return g.ID == id })
	if i < 0 {
		return s.viewLocked(), false
	}
	goal := s.list[i]
	s.form = SavingsGoalForm{
		ID:            goal.ID,
		GoalName:      goal.GoalName,
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount,
		StartDate:     goal.StartDate,
		Deadline:      goal.Deadline,
	}
	return s.viewLocked(), true
}

func (s *Savings) Reset() SavingsView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = SavingsGoalForm{}
	return s.viewLocked()
}

// Submit creates or updates a goal. The goal's current amount must fit in
// the available capital; when updating, the amount the goal already holds
// counts as available.
func (s *Savings) Submit(ctx context.Context, form SavingsGoalForm) (SavingsView, error) {
	s.mu.Lock()
	s.form = form
	if err := s.validateLocked(form); err != nil {
		defer s.mu.Unlock()
		failure := s.rejectLocked(err)
		return s.viewLocked(), failure
	}
	s.mu.Unlock()

	action := &actions.SaveSavingsGoal{Goal: service.SavingsGoal{
		ID:            form.ID,
		GoalName:      form.GoalName,
		TargetAmount:  form.TargetAmount,
		CurrentAmount: form.CurrentAmount,
		StartDate:     form.StartDate,
		Deadline:      form.Deadline,
	}}
	success, fallback := MessageGoalAdded, MessageGoalAddFailed
	if form.ID != "" {
		success, fallback = MessageGoalUpdated, MessageGoalUpdateFailed
	}

	if err := s.submit(ctx, s.submitter, action); err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		failure := s.submitFailedLocked(err, fallback)
		return s.viewLocked(), failure
	}
	return s.afterMutation(ctx, success)
}

func (s *Savings) Delete(ctx context.Context, id string) (SavingsView, error) {
	if err := s.submit(ctx, s.submitter, &actions.DeleteSavingsGoal{ID: id}); err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		failure := s.submitFailedLocked(err, MessageGoalDeleteFailed)
		return s.viewLocked(), failure
	}
	return s.afterMutation(ctx, MessageGoalDeleted)
}

func (s *Savings) afterMutation(ctx context.Context, message string) (SavingsView, error) {
	s.mu.Lock()
	s.form = SavingsGoalForm{}
	s.mu.Unlock()

	if _, err := s.Load(ctx); err != nil {
		return s.View(), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitSucceededLocked(message)
	return s.viewLocked(), nil
}

func (s *Savings) View() SavingsView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Savings) viewLocked() SavingsView {
	goals := slices.Clone(s.list)
	if goals == nil {
		goals = []service.SavingsGoal{}
	}
	txs := slices.Clone(s.txs)
	if txs == nil {
		txs = []service.Transaction{}
	}
	return SavingsView{
		State:        s.state,
		Goals:        goals,
		Transactions: txs,
		Capital:      s.capital,
		Form:         s.form,
		Notification: s.activeNotificationLocked(),
	}
}

func (s *Savings) validateLocked(form SavingsGoalForm) error {
	var missing []string
	if form.GoalName == "" {
		missing = append(missing, "goalName")
	}
	if !form.TargetAmount.IsPositive() {
		missing = append(missing, "targetAmount")
	}
	if form.CurrentAmount.IsNegative() {
		missing = append(missing, "currentAmount")
	}
	if form.StartDate.IsZero() {
		missing = append(missing, "startDate")
	}
	if form.Deadline.IsZero() {
		missing = append(missing, "deadline")
	}
	if len(missing) > 0 {
		return service.NewValidationError(service.MessageRequiredFields, missing...)
	}

	if !form.StartDate.Before(form.Deadline) {
		return service.NewValidationError(service.MessageGoalDates, "startDate", "deadline")
	}

	available := s.capital.Available
	if form.ID != "" {
		if i := slices.IndexFunc(s.list, func(g service.SavingsGoal) bool { return g.ID == form.ID }); i >= 0 {
			available = available.Add(s.list[i].CurrentAmount)
		}
	}
	if form.CurrentAmount.GreaterThan(available) {
		return service.NewValidationError(MessageGoalExceedsAvailable, "currentAmount")
	}
	return nil
}
