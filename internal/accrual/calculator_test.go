package accrual

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPending_ZeroElapsed(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 0, Pending(now, now, 1))
}

func TestPending_OneHourLevelOne(t *testing.T) {
	now := time.Now()
	last := now.Add(-1 * time.Hour)
	assert.Equal(t, 10, Pending(last, now, 1))
}

func TestPending_PartialCoinTruncates(t *testing.T) {
	// 10/hour means one coin per 6 minutes; 5m59s is still zero coins
	now := time.Now()
	last := now.Add(-(5*time.Minute + 59*time.Second))
	assert.Equal(t, 0, Pending(last, now, 1))

	last = now.Add(-6 * time.Minute)
	assert.Equal(t, 1, Pending(last, now, 1))
}

func TestPending_CappedAt24Hours(t *testing.T) {
	// 10000 elapsed minutes at level 1 pays as if exactly 1440 minutes passed
	now := time.Now()
	last := now.Add(-10000 * time.Minute)
	assert.Equal(t, 240, Pending(last, now, 1))

	// Exactly at the cap yields the same amount
	last = now.Add(-1440 * time.Minute)
	assert.Equal(t, 240, Pending(last, now, 1))
}

func TestPending_MonotonicUpToCap(t *testing.T) {
	now := time.Now()
	prev := 0
	for minutes := 0; minutes <= 2000; minutes += 7 {
		last := now.Add(-time.Duration(minutes) * time.Minute)
		pending := Pending(last, now, 3)
		assert.GreaterOrEqual(t, pending, prev, "pending must be non-decreasing at %d minutes", minutes)
		prev = pending
	}
	// Beyond the cap it is constant
	assert.Equal(t, Pending(now.Add(-1440*time.Minute), now, 3), prev)
}

func TestPending_RateScalesWithManagerLevel(t *testing.T) {
	now := time.Now()
	last := now.Add(-30 * time.Minute)
	assert.Equal(t, 5, Pending(last, now, 1))
	assert.Equal(t, 25, Pending(last, now, 5))
}

func TestPending_ClockSkewYieldsZero(t *testing.T) {
	now := time.Now()
	last := now.Add(10 * time.Minute) // lastCollected in the future
	assert.Equal(t, 0, Pending(last, now, 1))
}

func TestHourlyRate_FloorsAtLevelOne(t *testing.T) {
	assert.Equal(t, 10, HourlyRate(0))
	assert.Equal(t, 10, HourlyRate(-3))
	assert.Equal(t, 40, HourlyRate(4))
}

func TestProgress_HalfwayToNextCoin(t *testing.T) {
	// Level 1: one coin per 360_000ms. 3 minutes in = halfway.
	now := time.Now()
	last := now.Add(-3 * time.Minute)
	assert.InDelta(t, 0.5, Progress(last, now, 1), 0.001)
}

func TestProgress_ZeroWhenCapped(t *testing.T) {
	now := time.Now()
	last := now.Add(-48 * time.Hour)
	assert.Equal(t, 0.0, Progress(last, now, 1))
}
