package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Game metric names
const (
	MetricNameGamesStarted    = "games_started_total"
	MetricNameGamesCompleted  = "games_completed_total"
	MetricNameSessionsExpired = "game_sessions_expired_total"
)

// Economy metric names
const (
	MetricNameCoinsAwarded        = "biz_coins_awarded_total"
	MetricNameXPAwarded           = "xp_awarded_total"
	MetricNameLevelUps            = "level_ups_total"
	MetricNameManagersHired       = "managers_hired_total"
	MetricNameIdleIncomeCollected = "idle_income_collected_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Game metric help text
const (
	HelpTextGamesStarted    = "Total number of game sessions started"
	HelpTextGamesCompleted  = "Total number of game sessions completed"
	HelpTextSessionsJanited = "Total number of idle game sessions force-expired"
)

// Economy metric help text
const (
	HelpTextCoinsAwarded        = "Total BizCoins credited by the reward ledger"
	HelpTextXPAwarded           = "Total XP credited by the reward ledger"
	HelpTextLevelUps            = "Total user level-ups"
	HelpTextManagersHired       = "Total managers hired"
	HelpTextIdleIncomeCollected = "Total idle income coins collected"
)

// Metric label names
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelGameType = "game_type"
)

// HTTPLatencyBuckets are the histogram buckets for request latency
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
