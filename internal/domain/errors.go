package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound  = "user not found"
	ErrMsgUsernameTaken = "username already taken"

	// Business/config errors
	ErrMsgBusinessNotFound = "business not found"
	ErrMsgUnknownGameType  = "unknown game type"
	ErrMsgInvalidConfig    = "invalid business config"

	// Session errors
	ErrMsgSessionNotFound = "no active game session"
	ErrMsgSessionEnded    = "game session already ended"
	ErrMsgInvalidAction   = "invalid game action"

	// Economy errors
	ErrMsgInsufficientFunds   = "insufficient funds"
	ErrMsgUpgradeOwned        = "upgrade already owned"
	ErrMsgUpgradeNotFound     = "upgrade not found"
	ErrMsgManagerAlreadyHired = "manager already hired"
	ErrMsgManagerNotHired     = "no manager hired for business"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound  = errors.New(ErrMsgUserNotFound)
	ErrUsernameTaken = errors.New(ErrMsgUsernameTaken)

	// Business/config errors
	ErrBusinessNotFound = errors.New(ErrMsgBusinessNotFound)
	ErrUnknownGameType  = errors.New(ErrMsgUnknownGameType)
	ErrInvalidConfig    = errors.New(ErrMsgInvalidConfig)

	// Session errors
	ErrSessionNotFound = errors.New(ErrMsgSessionNotFound)
	ErrSessionEnded    = errors.New(ErrMsgSessionEnded)
	ErrInvalidAction   = errors.New(ErrMsgInvalidAction)

	// Economy errors
	ErrInsufficientFunds   = errors.New(ErrMsgInsufficientFunds)
	ErrUpgradeOwned        = errors.New(ErrMsgUpgradeOwned)
	ErrUpgradeNotFound     = errors.New(ErrMsgUpgradeNotFound)
	ErrManagerAlreadyHired = errors.New(ErrMsgManagerAlreadyHired)
	ErrManagerNotHired     = errors.New(ErrMsgManagerNotHired)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
