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

// Game Metrics
var (
	GamesStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGamesStarted,
			Help: HelpTextGamesStarted,
		},
		[]string{LabelGameType},
	)

	GamesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGamesCompleted,
			Help: HelpTextGamesCompleted,
		},
		[]string{LabelGameType},
	)

	SessionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSessionsExpired,
			Help: HelpTextSessionsJanited,
		},
	)
)

// Economy Metrics
var (
	CoinsAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsAwarded,
			Help: HelpTextCoinsAwarded,
		},
	)

	XPAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameXPAwarded,
			Help: HelpTextXPAwarded,
		},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)

	ManagersHired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameManagersHired,
			Help: HelpTextManagersHired,
		},
	)

	IdleIncomeCollected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameIdleIncomeCollected,
			Help: HelpTextIdleIncomeCollected,
		},
	)
)
