package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// QuoteItemsPriced counts individual quote items priced by outcome.
	QuoteItemsPriced *prometheus.CounterVec
	// QuotePriced counts full quote pricing requests by outcome.
	QuotePriced *prometheus.CounterVec
	// CartRepriceTotal counts cart fast-path reprices by outcome.
	CartRepriceTotal *prometheus.CounterVec
	// PricingDuration records pricing computation latency in milliseconds.
	PricingDuration *prometheus.HistogramVec
	// CatalogCacheHits counts catalog cache lookups by result.
	CatalogCacheHits *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		QuoteItemsPriced = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_items_priced_total",
			Help:      "Count of quote items priced by outcome.",
		}, []string{"result"})
		QuotePriced = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_priced_total",
			Help:      "Count of full quote pricing requests by outcome.",
		}, []string{"result"})
		CartRepriceTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_reprice_total",
			Help:      "Count of cart item reprices by outcome.",
		}, []string{"result"})
		PricingDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pricing_duration_ms",
			Help:      "Pricing computation latency in milliseconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50},
		}, []string{"operation"})
		CatalogCacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_cache_lookups_total",
			Help:      "Catalog cache lookups by result (hit, miss, error).",
		}, []string{"result"})

		mustRegisterCollector(reg, QuoteItemsPriced, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				QuoteItemsPriced = v
			}
		})
		mustRegisterCollector(reg, QuotePriced, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				QuotePriced = v
			}
		})
		mustRegisterCollector(reg, CartRepriceTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CartRepriceTotal = v
			}
		})
		mustRegisterCollector(reg, PricingDuration, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.HistogramVec); ok {
				PricingDuration = v
			}
		})
		mustRegisterCollector(reg, CatalogCacheHits, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CatalogCacheHits = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
