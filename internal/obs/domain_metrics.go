package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// QuotesSavedTotal counts quotes added to or updated in an order.
	QuotesSavedTotal *prometheus.CounterVec
	// QuotesDeletedTotal counts quotes removed from an order.
	QuotesDeletedTotal prometheus.Counter
	// QuotePreviewsTotal counts stateless price previews by outcome.
	QuotePreviewsTotal *prometheus.CounterVec
	// OrderExportsTotal counts receipt exports by outcome.
	OrderExportsTotal *prometheus.CounterVec
	// OrdersStartedTotal counts orders opened.
	OrdersStartedTotal prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		QuotesSavedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_saved_total",
			Help:      "Count of quotes saved into an order.",
		}, []string{"shape", "paper", "action"})
		QuotesDeletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_deleted_total",
			Help:      "Count of quotes removed from an order.",
		})
		QuotePreviewsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_previews_total",
			Help:      "Count of quote price previews by outcome.",
		}, []string{"result"})
		OrderExportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_exports_total",
			Help:      "Count of order receipt exports by outcome.",
		}, []string{"result"})
		OrdersStartedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_started_total",
			Help:      "Count of orders opened.",
		})

		QuotesSavedTotal = register(reg, QuotesSavedTotal)
		QuotesDeletedTotal = register(reg, QuotesDeletedTotal)
		QuotePreviewsTotal = register(reg, QuotePreviewsTotal)
		OrderExportsTotal = register(reg, OrderExportsTotal)
		OrdersStartedTotal = register(reg, OrdersStartedTotal)
	})
}

// RecordQuoteSaved is a no-op until the domain metrics are registered.
func RecordQuoteSaved(shape, paper, action string) {
	if QuotesSavedTotal != nil {
		QuotesSavedTotal.WithLabelValues(labelOr(shape), labelOr(paper), action).Inc()
	}
}

func RecordQuoteDeleted() {
	if QuotesDeletedTotal != nil {
		QuotesDeletedTotal.Inc()
	}
}

func RecordPreview(result string) {
	if QuotePreviewsTotal != nil {
		QuotePreviewsTotal.WithLabelValues(result).Inc()
	}
}

func RecordExport(result string) {
	if OrderExportsTotal != nil {
		OrderExportsTotal.WithLabelValues(result).Inc()
	}
}

func RecordOrderStarted() {
	if OrdersStartedTotal != nil {
		OrdersStartedTotal.Inc()
	}
}

// RegisterSessionsGauge exposes the number of open quoting sessions, read
// from count at scrape time.
func RegisterSessionsGauge(namespace string, reg prometheus.Registerer, count func() int) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	register(reg, prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_open",
		Help:      "Quoting sessions currently held in memory.",
	}, func() float64 { return float64(count()) }))
}

func labelOr(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
