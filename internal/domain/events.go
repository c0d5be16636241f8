package domain

// Event type names published on the event bus
const (
	EventTypeGameCompleted   = "game.completed"
	EventTypeLevelUp         = "user.level_up"
	EventTypeManagerHired    = "portfolio.manager_hired"
	EventTypeIncomeCollected = "portfolio.income_collected"
)
