package worker

// Log messages
const (
	LogMsgJobFailed       = "Worker job failed"
	LogMsgJanitorSweep    = "Session janitor sweep complete"
	LogMsgJanitorDisabled = "Session janitor has no manager, skipping"
)

// Pool sizing defaults
const (
	DefaultWorkers   = 2
	DefaultQueueSize = 16
)
