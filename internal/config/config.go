package config

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

const (
	envPrefix     = "FINANCE_"
	configFileEnv = "FINANCE_CONFIG_FILE"
)

// ServiceURLs holds the base URL of every backend service the client talks to.
type ServiceURLs struct {
	User        string
	Transaction string
	Investment  string
	Budget      string
	Debt        string
	Savings     string
	Report      string
}

type Config struct {
	Port     string
	LogLevel string

	Services       ServiceURLs
	GatewayTimeout time.Duration

	CryptoAPIURL string
	StockAPIURL  string
	StockAPIKey  string

	BaselineCapital    decimal.Decimal
	NotificationWindow time.Duration

	ChartCacheSize    int
	ChartCacheTTL     time.Duration
	ChartCacheCleanup string

	OperatorWorkers int
	CORSOrigins     []string
}

// In all cases the defaults match the local docker compose setup of the backend services.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"http.port":               "9446",
		"log.level":               "info",
		"user.service.url":        "http://localhost:8080",
		"transaction.service.url": "http://localhost:8082",
		"investment.service.url":  "http://localhost:8083",
		"budget.service.url":      "http://localhost:8084",
		"debt.service.url":        "http://localhost:8085",
		"savings.service.url":     "http://localhost:8086",
		"report.service.url":      "http://localhost:8087",
		"crypto.api.url":          "https://api.coingecko.com/api/v3",
		"stock.api.url":           "https://api.twelvedata.com",
		"stock.api.key":           "",
		"gateway.timeout":         "10s",
		"capital.baseline":        "10000",
		"notification.window":     "3s",
		"chart.cache.size":        64,
		"chart.cache.ttl":         "15m",
		"chart.cache.cleanup":     "@every 1m",
		"operator.workers":        1,
		"cors.origins":            "http://localhost:4200",
	}
}

// Load builds the Config from defaults, an optional YAML file named by
// FINANCE_CONFIG_FILE and FINANCE_* environment variables, in that order.
// A .env file in the working directory is applied to the environment first.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path := os.Getenv(configFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	return fromKoanf(k)
}

// envKey maps FINANCE_USER_SERVICE_URL to user.service.url.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
}

func fromKoanf(k *koanf.Koanf) (*Config, error) {
	baseline, err := decimal.NewFromString(k.String("capital.baseline"))
	if err != nil {
		return nil, fmt.Errorf("config: capital.baseline: %w", err)
	}

	cfg := &Config{
		Port:     k.String("http.port"),
		LogLevel: k.String("log.level"),
		Services: ServiceURLs{
			User:        k.String("user.service.url"),
			Transaction: k.String("transaction.service.url"),
			Investment:  k.String("investment.service.url"),
			Budget:      k.String("budget.service.url"),
			Debt:        k.String("debt.service.url"),
			Savings:     k.String("savings.service.url"),
			Report:      k.String("report.service.url"),
		},
		GatewayTimeout:     k.Duration("gateway.timeout"),
		CryptoAPIURL:       k.String("crypto.api.url"),
		StockAPIURL:        k.String("stock.api.url"),
		StockAPIKey:        k.String("stock.api.key"),
		BaselineCapital:    baseline,
		NotificationWindow: k.Duration("notification.window"),
		ChartCacheSize:     k.Int("chart.cache.size"),
		ChartCacheTTL:      k.Duration("chart.cache.ttl"),
		ChartCacheCleanup:  k.String("chart.cache.cleanup"),
		OperatorWorkers:    k.Int("operator.workers"),
		CORSOrigins:        splitList(k.String("cors.origins")),
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("http.port %q is not a valid port", c.Port))
	}

	urls := map[string]string{
		"user.service.url":        c.Services.User,
		"transaction.service.url": c.Services.Transaction,
		"investment.service.url":  c.Services.Investment,
		"budget.service.url":      c.Services.Budget,
		"debt.service.url":        c.Services.Debt,
		"savings.service.url":     c.Services.Savings,
		"report.service.url":      c.Services.Report,
		"crypto.api.url":          c.CryptoAPIURL,
		"stock.api.url":           c.StockAPIURL,
	}
	for _, key := range slices.Sorted(maps.Keys(urls)) {
		if err := validateURL(urls[key]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}

	if c.GatewayTimeout <= 0 {
		errs = append(errs, errors.New("gateway.timeout must be positive"))
	}
	if c.BaselineCapital.IsNegative() {
		errs = append(errs, errors.New("capital.baseline must not be negative"))
	}
	if c.NotificationWindow <= 0 {
		errs = append(errs, errors.New("notification.window must be positive"))
	}
	if c.ChartCacheSize < 1 {
		errs = append(errs, errors.New("chart.cache.size must be at least 1"))
	}
	if c.ChartCacheTTL <= 0 {
		errs = append(errs, errors.New("chart.cache.ttl must be positive"))
	}
	if _, err := cron.ParseStandard(c.ChartCacheCleanup); err != nil {
		errs = append(errs, fmt.Errorf("chart.cache.cleanup: %w", err))
	}
	if c.OperatorWorkers < 1 {
		errs = append(errs, errors.New("operator.workers must be at least 1"))
	}

	return errors.Join(errs...)
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q is not an absolute http(s) URL", raw)
	}
	return nil
}
