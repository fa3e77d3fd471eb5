// Package metrics exposes Prometheus instrumentation for the matching
// engine. Counters are safe to bump from the book's trade callback; they
// are atomic increments and do not allocate.
package metrics

import (
	"net/http"

	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quynhanhha/order-matching-engine/pkg/lob"
)

// BookMetrics instruments a single order book.
type BookMetrics struct {
	namespace string
	registry  *prometheus.Registry
	logger    log.Logger

	ordersProcessed prometheus.Counter
	ordersCancelled prometheus.Counter
	tradesExecuted  prometheus.Counter
	tradedVolume    prometheus.Counter

	restingOrders  prometheus.Gauge
	orderBookDepth *prometheus.GaugeVec

	matchingLatency prometheus.Histogram
}

// New creates and registers the book metrics under namespace.
func New(namespace string) (*BookMetrics, error) {
	logger := log.Root().New("module", "metrics")

	registry := prometheus.NewRegistry()

	m := &BookMetrics{
		namespace: namespace,
		registry:  registry,
		logger:    logger,

		ordersProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_processed_total",
			Help:      "Total number of orders processed",
		}),

		ordersCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_cancelled_total",
			Help:      "Total number of orders cancelled",
		}),

		tradesExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trades_executed_total",
			Help:      "Total number of trades executed",
		}),

		tradedVolume: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "traded_volume_total",
			Help:      "Total quantity traded",
		}),

		restingOrders: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "resting_orders",
			Help:      "Number of currently resting orders",
		}),

		orderBookDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "orderbook_depth",
			Help:      "Current order book depth by side",
		}, []string{"symbol", "side"}),

		matchingLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "matching_latency_nanoseconds",
			Help:      "Order matching latency in nanoseconds",
			Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}),
	}

	for _, c := range []prometheus.Collector{
		m.ordersProcessed,
		m.ordersCancelled,
		m.tradesExecuted,
		m.tradedVolume,
		m.restingOrders,
		m.orderBookDepth,
		m.matchingLatency,
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	logger.Info("book metrics initialized", "namespace", namespace)
	return m, nil
}

// RecordOrder records an order admission.
func (m *BookMetrics) RecordOrder() {
	m.ordersProcessed.Inc()
}

// RecordCancel records a cancel.
func (m *BookMetrics) RecordCancel() {
	m.ordersCancelled.Inc()
}

// RecordTrade records one fill. Suitable as a lob.TradeHandler or for
// chaining inside one.
func (m *BookMetrics) RecordTrade(t lob.Trade) {
	m.tradesExecuted.Inc()
	m.tradedVolume.Add(float64(t.Quantity))
}

// RecordMatchingLatency records one add-order round trip in nanoseconds.
func (m *BookMetrics) RecordMatchingLatency(nanoseconds float64) {
	m.matchingLatency.Observe(nanoseconds)
}

// UpdateBook refreshes the gauges from the book's current state.
func (m *BookMetrics) UpdateBook(b *lob.OrderBook) {
	m.restingOrders.Set(float64(b.Len()))

	bidLevels, askLevels := b.Levels()
	m.orderBookDepth.WithLabelValues(b.Symbol, "bid").Set(float64(bidLevels))
	m.orderBookDepth.WithLabelValues(b.Symbol, "ask").Set(float64(askLevels))
}

// Gatherer exposes the registry for scraping or dumping.
func (m *BookMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// Handler returns the Prometheus scrape handler for this registry.
// Mounting it on a server is the caller's business.
func (m *BookMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
