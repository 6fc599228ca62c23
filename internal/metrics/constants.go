package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "techstruck_http_requests_total"
	MetricNameHTTPRequestDuration  = "techstruck_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "techstruck_http_requests_in_flight"

	MetricNameLinkURLsIssued   = "techstruck_link_urls_issued_total"
	MetricNameCallbacksTotal   = "techstruck_oauth_callbacks_total"
	MetricNameExchangeDuration = "techstruck_oauth_exchange_duration_seconds"
	MetricNameTokenCacheHits   = "techstruck_token_cache_hits_total"
	MetricNameTokenCacheMisses = "techstruck_token_cache_misses_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"

	HelpTextLinkURLsIssued   = "Total number of authorize URLs issued"
	HelpTextCallbacksTotal   = "Total number of OAuth callbacks by provider and outcome"
	HelpTextExchangeDuration = "Token exchange latency in seconds by provider"
	HelpTextTokenCacheHits   = "Total number of access token cache hits"
	HelpTextTokenCacheMisses = "Total number of access token cache misses"
)

// Label names
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelProvider = "provider"
	LabelOutcome  = "outcome"
)

// Callback outcomes
const (
	OutcomePersisted      = "persisted"
	OutcomeBadState       = "bad_state"
	OutcomeExchangeFailed = "exchange_failed"
	OutcomeStoreFailed    = "store_failed"
)

// HTTPLatencyBuckets covers fast local handlers up to slow provider exchanges
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
