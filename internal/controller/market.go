package controller

import (
	"context"
	"fmt"

	"github.com/carson-networks/finance-client/internal/chart"
	"github.com/carson-networks/finance-client/internal/marketdata"
)

const MessageMarketLoadFailed = "Failed to load price history."

type MarketView struct {
	State        State
	Query        marketdata.Query
	Series       chart.PriceSeries
	Cached       bool
	Notification *Notification
}

// Market serves price charts through a memo cache shared by every chart on
// the page.
type Market struct {
	core

	sources map[marketdata.Domain]marketdata.Source
	cache   *chart.Cache[chart.PriceSeries]
}

// NewMarket creates a new Market serving the given sources through cache.
func NewMarket(sources map[marketdata.Domain]marketdata.Source, cache *chart.Cache[chart.PriceSeries], opts Options) *Market {
	m := &Market{sources: sources, cache: cache}
	m.init("market", opts)
	return m
}

// PriceSeries returns the price chart of q, from the cache when present.
func (m *Market) PriceSeries(ctx context.Context, q marketdata.Query) (MarketView, error) {
	q, err := q.Normalize()
	if err != nil {
		m.mu.Lock()
		defer m.mu.Unlock()
		failure := m.rejectLocked(err)
		return m.viewLocked(q, chart.PriceSeries{}, false), failure
	}

	key := q.CacheKey()
	if series, ok := m.cache.Get(key); ok {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.state = StateLoaded
		return m.viewLocked(q, series, true), nil
	}

	source, ok := m.sources[q.Domain]
	if !ok {
		m.mu.Lock()
		defer m.mu.Unlock()
		err := fmt.Errorf("no price source for %s", q.Domain)
		failure := m.loadFailedLocked(err, MessageMarketLoadFailed)
		return m.viewLocked(q, chart.PriceSeries{}, false), failure
	}

	m.mu.Lock()
	m.state = StateLoading
	m.mu.Unlock()

	points, err := source.History(ctx, q.Item, q.Currency, q.Days)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		failure := m.loadFailedLocked(err, MessageMarketLoadFailed)
		return m.viewLocked(q, chart.PriceSeries{}, false), failure
	}

	series := chart.BuildPriceSeries(points)
	m.cache.Set(key, series)
	m.state = StateLoaded
	return m.viewLocked(q, series, false), nil
}

func (m *Market) viewLocked(q marketdata.Query, series chart.PriceSeries, cached bool) MarketView {
	return MarketView{
		State:        m.state,
		Query:        q,
		Series:       series,
		Cached:       cached,
		Notification: m.activeNotificationLocked(),
	}
}
