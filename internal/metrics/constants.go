package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "wareki_http_requests_total"
	MetricNameHTTPRequestDuration  = "wareki_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "wareki_http_requests_in_flight"
)

// Conversion metric names
const (
	MetricNameConversionsTotal = "wareki_conversions_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Conversion metric help text
const (
	HelpTextConversionsTotal = "Year conversions by input kind and outcome"
)

// Label names
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelKind    = "kind"
	LabelOutcome = "outcome"
)

// PathUnmatched labels requests that matched no route
const PathUnmatched = "unmatched"

// Conversion label values
const (
	KindQuery     = "query"
	KindGregorian = "gregorian"

	OutcomeOK          = "ok"
	OutcomeUnparseable = "unparseable"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
var HTTPLatencyBuckets = []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1}
