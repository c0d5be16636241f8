// Package ticker provides the single "scheduled tick" capability every
// timer-driven loop in the game runtime sits behind: one-second countdowns,
// auto-click intervals, feedback delays, and the rhythm frame loop all use
// the same callback-plus-cancel contract, so only the interval differs.
package ticker

import (
	"sync"
	"time"
)

// Handle cancels a scheduled tick loop. Stop is idempotent.
type Handle interface {
	Stop()
}

// Scheduler runs a callback at a fixed interval until the handle is stopped
type Scheduler interface {
	Every(interval time.Duration, fn func(now time.Time)) Handle
}

// realScheduler drives callbacks from time.Ticker goroutines
type realScheduler struct{}

// NewScheduler creates a wall-clock backed scheduler
func NewScheduler() Scheduler {
	return &realScheduler{}
}

func (s *realScheduler) Every(interval time.Duration, fn func(now time.Time)) Handle {
	t := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case now := <-t.C:
				fn(now)
			case <-done:
				return
			}
		}
	}()

	return &realHandle{ticker: t, done: done}
}

type realHandle struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (h *realHandle) Stop() {
	h.once.Do(func() {
		h.ticker.Stop()
		close(h.done)
	})
}

// Manual is a test scheduler driven by explicit Advance calls. Callbacks run
// on the calling goroutine in schedule order.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	tasks []*manualTask
}

type manualTask struct {
	interval time.Duration
	next     time.Time
	fn       func(now time.Time)
	stopped  bool
}

// NewManual creates a manual scheduler starting at the given instant
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the manual clock's current instant
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Every(interval time.Duration, fn func(now time.Time)) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	task := &manualTask{interval: interval, next: m.now.Add(interval), fn: fn}
	m.tasks = append(m.tasks, task)
	return &manualHandle{m: m, task: task}
}

// Advance moves the clock forward, firing due callbacks in time order.
// A callback scheduled every second fires five times across Advance(5s).
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		var earliest *manualTask
		for _, t := range m.tasks {
			if t.stopped || t.next.After(target) {
				continue
			}
			if earliest == nil || t.next.Before(earliest.next) {
				earliest = t
			}
		}
		if earliest == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = earliest.next
		earliest.next = earliest.next.Add(earliest.interval)
		fn, now := earliest.fn, m.now
		m.mu.Unlock()

		fn(now)
	}
}

type manualHandle struct {
	m    *Manual
	task *manualTask
}

func (h *manualHandle) Stop() {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	h.task.stopped = true
}
