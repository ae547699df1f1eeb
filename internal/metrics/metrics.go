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

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)

	EventsDeadLettered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsDeadLettered,
			Help: HelpTextEventsDeadLettered,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	PredictionsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePredictionsRecorded,
			Help: HelpTextPredictionsRecorded,
		},
	)

	MatchesSettled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMatchesSettled,
			Help: HelpTextMatchesSettled,
		},
	)

	BonusFinalized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBonusFinalized,
			Help: HelpTextBonusFinalized,
		},
	)

	BackfillsApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBackfillsApplied,
			Help: HelpTextBackfillsApplied,
		},
	)
)
