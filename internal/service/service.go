package service

import (
	"context"
	"net/url"

	"github.com/sirupsen/logrus"
)

// Requester is the slice of the gateway client the resource services use.
type Requester interface {
	Get(ctx context.Context, resource string, query url.Values, out interface{}) error
	Post(ctx context.Context, resource string, body, out interface{}) error
	Put(ctx context.Context, resource string, body, out interface{}) error
	Delete(ctx context.Context, resource string) error
}

// Backends names the requester for each backend service.
type Backends struct {
	User        Requester
	Transaction Requester
	Investment  Requester
	Budget      Requester
	Debt        Requester
	Savings     Requester
	Report      Requester
}

// Service holds all resource services.
type Service struct {
	Transactions *TransactionService
	Budgets      *BudgetService
	Debts        *DebtService
	SavingsGoals *SavingsGoalService
	Investments  *InvestmentService
	Reports      *ReportService
	Auth         *AuthService
	Profile      *ProfileService
}

// NewService creates a new Service over the given backends.
func NewService(b Backends, logger *logrus.Logger) *Service {
	return &Service{
		Transactions: NewTransactionService(b.Transaction, logger),
		Budgets:      NewBudgetService(b.Budget, logger),
		Debts:        NewDebtService(b.Debt, logger),
		SavingsGoals: NewSavingsGoalService(b.Savings, logger),
		Investments:  NewInvestmentService(b.Investment, logger),
		Reports:      NewReportService(b.Report),
		Auth:         NewAuthService(b.User),
		Profile:      NewProfileService(b.User),
	}
}
