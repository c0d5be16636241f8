package database

import "time"

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the number of warm connections the pool keeps open
	DefaultMinConnections = 2

	// pingTimeout bounds the connectivity check at startup
	pingTimeout = 5 * time.Second
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse database connection string"
	ErrMsgFailedToCreatePool      = "failed to create database connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
)

// Log Messages
const (
	LogMsgDatabaseConnected = "Connected to Postgres"
)
