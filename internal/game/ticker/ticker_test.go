package ticker

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManual_FiresOnInterval(t *testing.T) {
	m := NewManual(time.Unix(0, 0))

	var fired []time.Time
	m.Every(time.Second, func(now time.Time) {
		fired = append(fired, now)
	})

	m.Advance(3500 * time.Millisecond)
	require.Len(t, fired, 3)
	assert.Equal(t, time.Unix(1, 0), fired[0])
	assert.Equal(t, time.Unix(3, 0), fired[2])
	assert.Equal(t, time.Unix(0, 3500*int64(time.Millisecond)), m.Now())
}

func TestManual_StopCancels(t *testing.T) {
	m := NewManual(time.Unix(0, 0))

	count := 0
	h := m.Every(time.Second, func(time.Time) { count++ })

	m.Advance(2 * time.Second)
	h.Stop()
	h.Stop() // idempotent
	m.Advance(5 * time.Second)

	assert.Equal(t, 2, count)
}

func TestManual_InterleavesTasksInTimeOrder(t *testing.T) {
	m := NewManual(time.Unix(0, 0))

	var order []string
	m.Every(2*time.Second, func(time.Time) { order = append(order, "slow") })
	m.Every(time.Second, func(time.Time) { order = append(order, "fast") })

	// Ties go to the earlier-registered task
	m.Advance(4 * time.Second)
	assert.Equal(t, []string{"fast", "slow", "fast", "fast", "slow", "fast"}, order)
}

func TestRealScheduler_TicksAndStops(t *testing.T) {
	s := NewScheduler()

	var mu sync.Mutex
	count := 0
	h := s.Every(5*time.Millisecond, func(time.Time) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count >= 2
	}, time.Second, time.Millisecond)

	h.Stop()
	mu.Lock()
	after := count
	mu.Unlock()

	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	assert.LessOrEqual(t, count-after, 1, "ticks must stop after cancel")
	mu.Unlock()
}
