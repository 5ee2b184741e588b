package main

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-client/api"
	"github.com/carson-networks/finance-client/internal/chart"
	"github.com/carson-networks/finance-client/internal/config"
	"github.com/carson-networks/finance-client/internal/controller"
	"github.com/carson-networks/finance-client/internal/gateway"
	"github.com/carson-networks/finance-client/internal/logging"
	"github.com/carson-networks/finance-client/internal/marketdata"
	"github.com/carson-networks/finance-client/internal/operator"
	"github.com/carson-networks/finance-client/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config.Load")
		return
	}
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("config.Validate")
		return
	}

	logger, err := logging.SetupLogging(cfg.LogLevel)
	if err != nil {
		logger.WithError(err).Warn("logging.SetupLogging: unknown level, using info")
	}
	logger.Info("finance-client starting")

	// One http.Client for every backend so the session cookies are shared.
	httpClient := gateway.NewHTTPClient(cfg.GatewayTimeout)
	newClient := func(name, baseURL string) *gateway.Client {
		client, err := gateway.NewClient(baseURL, httpClient, logger)
		if err != nil {
			logger.WithError(err).WithField("service", name).Fatal("gateway.NewClient")
		}
		return client
	}

	users := newClient("user", cfg.Services.User)
	backends := map[string]*gateway.Client{
		"transaction": newClient("transaction", cfg.Services.Transaction),
		"investment":  newClient("investment", cfg.Services.Investment),
		"budget":      newClient("budget", cfg.Services.Budget),
		"debt":        newClient("debt", cfg.Services.Debt),
		"savings":     newClient("savings", cfg.Services.Savings),
		"report":      newClient("report", cfg.Services.Report),
	}

	svc := service.NewService(service.Backends{
		User:        users,
		Transaction: backends["transaction"],
		Investment:  backends["investment"],
		Budget:      backends["budget"],
		Debt:        backends["debt"],
		Savings:     backends["savings"],
		Report:      backends["report"],
	}, logger)
	for _, client := range backends {
		client.SetRefresher(svc.Auth.Refresh)
	}
	users.SetRefresher(svc.Auth.Refresh)

	sources := map[marketdata.Domain]marketdata.Source{
		marketdata.DomainCrypto: marketdata.NewCryptoSource(newClient("crypto", cfg.CryptoAPIURL)),
		marketdata.DomainStock:  marketdata.NewStockSource(newClient("stock", cfg.StockAPIURL), cfg.StockAPIKey),
	}

	op := operator.NewOperatorDelegator(svc, cfg.OperatorWorkers, logger)
	op.Start()
	defer op.Stop()

	priceCache := chart.NewCache[chart.PriceSeries](cfg.ChartCacheSize, cfg.ChartCacheTTL)
	sweeper := chart.NewSweeper(logger)
	sweeper.Register(priceCache)
	if err := sweeper.Start(cfg.ChartCacheCleanup); err != nil {
		logger.WithError(err).Fatal("chart.Sweeper.Start")
		return
	}
	defer sweeper.Stop()

	opts := controller.Options{Window: cfg.NotificationWindow, Logger: logger}
	controllers := api.Controllers{
		Finance:     controller.NewFinance(svc.Transactions, op, opts),
		Budgets:     controller.NewBudgets(svc.Budgets, svc.Transactions, op, opts),
		Debts:       controller.NewDebts(svc.Debts, op, opts),
		Investments: controller.NewInvestments(svc.Investments, svc.Transactions, svc.SavingsGoals, op, cfg.BaselineCapital, opts),
		Savings:     controller.NewSavings(svc.SavingsGoals, svc.Transactions, op, cfg.BaselineCapital, opts),
		Reports:     controller.NewReports(svc.Reports, opts),
		Market:      controller.NewMarket(sources, priceCache, opts),
	}

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		defer wg.Done()
		httpRest := api.Rest{
			Logger:      logger,
			Port:        cfg.Port,
			CORSOrigins: cfg.CORSOrigins,
			Service:     svc,
			Operator:    op,
			Controllers: controllers,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
