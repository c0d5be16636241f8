package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants for consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// User management error messages
	ErrMsgRegisterUserFailed = "Failed to register user"
	ErrMsgGetUserFailed      = "Failed to get user"

	// Game session error messages
	ErrMsgStartGameFailed   = "Failed to start game"
	ErrMsgGameActionFailed  = "Failed to apply game action"
	ErrMsgExitGameFailed    = "Failed to exit game"
	ErrMsgGetStateFailed    = "Failed to get game state"
	ErrMsgGetTutorialFailed = "Failed to get tutorial"

	// Portfolio error messages
	ErrMsgGetPortfolioFailed = "Failed to get portfolio"
	ErrMsgHireManagerFailed  = "Failed to hire manager"
	ErrMsgCollectFailed      = "Failed to collect idle income"

	// Business catalog error messages
	ErrMsgListBusinessesFailed = "Failed to list businesses"
)

// Success messages for API responses
const (
	MsgManagerHiredSuccess = "Manager hired successfully"
)
