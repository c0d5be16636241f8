package worker

import (
	"context"
	"time"

	"github.com/playventures/bizlab/internal/logger"
)

// SessionExpirer is the slice of the game manager the janitor needs
type SessionExpirer interface {
	ExpireIdle(ctx context.Context, timeout time.Duration) int
}

// SessionJanitorJob force-exits game sessions idle beyond the timeout.
// Expired sessions still commit their rewards; players lose nothing but
// the open session.
type SessionJanitorJob struct {
	manager SessionExpirer
	timeout time.Duration
}

// NewSessionJanitorJob creates a janitor job
func NewSessionJanitorJob(manager SessionExpirer, timeout time.Duration) *SessionJanitorJob {
	return &SessionJanitorJob{manager: manager, timeout: timeout}
}

// Process runs one sweep
func (j *SessionJanitorJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if j.manager == nil {
		log.Warn(LogMsgJanitorDisabled)
		return nil
	}

	expired := j.manager.ExpireIdle(ctx, j.timeout)
	if expired > 0 {
		log.Info(LogMsgJanitorSweep, "expired", expired, "timeout", j.timeout)
	}
	return nil
}
