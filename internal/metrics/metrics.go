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
)

// Realtime client metrics
var (
	RealtimeStateTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRealtimeStateTransitions,
			Help: HelpTextRealtimeStateTransitions,
		},
		[]string{LabelState},
	)

	RealtimeReconnects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRealtimeReconnects,
			Help: HelpTextRealtimeReconnects,
		},
	)

	FramesDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFramesDispatched,
			Help: HelpTextFramesDispatched,
		},
		[]string{LabelType},
	)

	FramesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFramesDropped,
			Help: HelpTextFramesDropped,
		},
		[]string{LabelReason},
	)

	ToastsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameToastsEmitted,
			Help: HelpTextToastsEmitted,
		},
		[]string{LabelKind},
	)
)

// Relay metrics
var (
	RelayConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameRelayConnections,
			Help: HelpTextRelayConnections,
		},
	)

	RelayAuthResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRelayAuthResults,
			Help: HelpTextRelayAuthResults,
		},
		[]string{LabelResult},
	)

	RelayFramesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRelayFramesSent,
			Help: HelpTextRelayFramesSent,
		},
		[]string{LabelType},
	)

	RelayFramesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRelayFramesDropped,
			Help: HelpTextRelayFramesDropped,
		},
		[]string{LabelReason},
	)
)

// Business Metrics
var (
	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNotificationsCreated,
			Help: HelpTextNotificationsCreated,
		},
		[]string{LabelKind},
	)

	SessionsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSessionsCompleted,
			Help: HelpTextSessionsCompleted,
		},
	)

	AchievementsUnlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAchievementsUnlocked,
			Help: HelpTextAchievementsUnlocked,
		},
		[]string{LabelAchievement},
	)

	LevelUps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
		[]string{LabelLevel},
	)

	XPAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameXPAwarded,
			Help: HelpTextXPAwarded,
		},
	)
)
