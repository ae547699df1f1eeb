package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "pickem_http_requests_total"
	MetricNameHTTPRequestDuration  = "pickem_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "pickem_http_requests_in_flight"

	MetricNameEventsPublished    = "pickem_events_published_total"
	MetricNameEventHandlerErrors = "pickem_event_handler_errors_total"
	MetricNameEventsDeadLettered = "pickem_events_dead_lettered_total"

	MetricNamePredictionsRecorded = "pickem_predictions_recorded_total"
	MetricNameMatchesSettled      = "pickem_matches_settled_total"
	MetricNameBonusFinalized      = "pickem_bonus_questions_finalized_total"
	MetricNameBackfillsApplied    = "pickem_backfills_applied_total"
)

// Metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"

	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
	HelpTextEventsDeadLettered = "Total number of events written to the dead letter queue"

	HelpTextPredictionsRecorded = "Total number of predictions recorded"
	HelpTextMatchesSettled      = "Total number of matches settled"
	HelpTextBonusFinalized      = "Total number of bonus questions finalized"
	HelpTextBackfillsApplied    = "Total number of backfill entries applied"
)

// Metric labels
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
)

// HTTPLatencyBuckets covers the expected latency range of the API
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
