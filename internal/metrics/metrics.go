package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Link Flow Metrics
var (
	LinkURLsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLinkURLsIssued,
			Help: HelpTextLinkURLsIssued,
		},
		[]string{LabelProvider},
	)

	CallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCallbacksTotal,
			Help: HelpTextCallbacksTotal,
		},
		[]string{LabelProvider, LabelOutcome},
	)

	ExchangeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameExchangeDuration,
			Help:    HelpTextExchangeDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelProvider},
	)

	TokenCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTokenCacheHits,
			Help: HelpTextTokenCacheHits,
		},
	)

	TokenCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTokenCacheMisses,
			Help: HelpTextTokenCacheMisses,
		},
	)
)
