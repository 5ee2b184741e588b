package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humamux"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-client/internal/controller"
	"github.com/carson-networks/finance-client/internal/handlers/v1/account"
	"github.com/carson-networks/finance-client/internal/handlers/v1/budget"
	"github.com/carson-networks/finance-client/internal/handlers/v1/debt"
	"github.com/carson-networks/finance-client/internal/handlers/v1/finance"
	"github.com/carson-networks/finance-client/internal/handlers/v1/investment"
	"github.com/carson-networks/finance-client/internal/handlers/v1/market"
	"github.com/carson-networks/finance-client/internal/handlers/v1/report"
	"github.com/carson-networks/finance-client/internal/handlers/v1/savings"
	"github.com/carson-networks/finance-client/internal/handlers/v1/status"
	"github.com/carson-networks/finance-client/internal/handlers/v1/transaction"
	"github.com/carson-networks/finance-client/internal/logging"
	"github.com/carson-networks/finance-client/internal/operator"
	"github.com/carson-networks/finance-client/internal/service"
)

// Controllers are the page controllers the v1 API is served from.
type Controllers struct {
	Finance     *controller.Finance
	Budgets     *controller.Budgets
	Debts       *controller.Debts
	Investments *controller.Investments
	Savings     *controller.Savings
	Reports     *controller.Reports
	Market      *controller.Market
}

type Rest struct {
	Logger      *logrus.Logger
	Port        string
	CORSOrigins []string
	Service     *service.Service
	Operator    *operator.OperatorDelegator
	Controllers Controllers
}

// Handler builds the full HTTP handler: the huma v1 API and /status on one
// router, behind CORS.
func (r *Rest) Handler() http.Handler {
	router := mux.NewRouter()

	statusHandler := status.NewHandler(r.Operator)
	router.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humamux.New(router, huma.DefaultConfig("Finance Client API", "1.0.0"))
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))

	c := r.Controllers
	transaction.NewListTransactionsHandler(r.Service.Transactions).Register(api)
	transaction.NewCreateTransactionHandler(r.Operator).Register(api)
	transaction.NewUpdateTransactionHandler(r.Operator).Register(api)

	finance.NewGetWeekHandler(c.Finance).Register(api)
	finance.NewStepWeekHandler(c.Finance).Register(api)
	finance.NewAddTransactionHandler(c.Finance).Register(api)
	finance.NewDeleteTransactionHandler(c.Finance).Register(api)
	finance.NewCalendarHandler(c.Finance).Register(api)

	budget.NewHandler(c.Budgets).Register(api)
	debt.NewHandler(c.Debts).Register(api)
	investment.NewHandler(c.Investments).Register(api)
	savings.NewHandler(c.Savings).Register(api)
	report.NewHandler(c.Reports).Register(api)
	market.NewHandler(c.Market).Register(api)

	account.NewSessionHandler(r.Service.Auth).Register(api)
	account.NewProfileHandler(r.Service.Profile).Register(api)

	return cors.New(cors.Options{
		AllowedOrigins:   r.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router)
}

func (r *Rest) Serve() {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
