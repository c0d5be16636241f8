// Package accrual computes idle income from elapsed wall-clock time.
// Everything here is a pure function of its inputs so the portfolio UI can
// poll it every render tick and the ledger can recompute the authoritative
// amount at collection time without a running process.
package accrual

import (
	"math"
	"time"
)

const (
	// CoinsPerHourPerLevel is the hourly yield per manager level
	CoinsPerHourPerLevel = 10

	// MaxAccrualMinutes caps unclaimed accrual at 24 hours. Minutes beyond
	// the cap are forfeited, not accumulated.
	MaxAccrualMinutes = 1440

	msPerMinute = 60_000
	msPerHour   = 3_600_000
)

// HourlyRate returns the coins-per-hour yield for a manager level.
// Levels below 1 are treated as 1.
func HourlyRate(managerLevel int) int {
	if managerLevel < 1 {
		managerLevel = 1
	}
	return CoinsPerHourPerLevel * managerLevel
}

// Pending returns the claimable coins accrued between lastCollected and now.
// Truncates toward zero; partial coins are never rounded up.
func Pending(lastCollected, now time.Time, managerLevel int) int {
	minutes := cappedElapsedMinutes(lastCollected, now)
	rate := float64(HourlyRate(managerLevel))
	return int(math.Floor(rate / 60 * minutes))
}

// Progress returns the fraction [0,1) of the way to the next whole coin.
// UI-only derived value; it has no effect on collection amounts.
func Progress(lastCollected, now time.Time, managerLevel int) float64 {
	elapsedMs := elapsedMilliseconds(lastCollected, now)
	if elapsedMs > MaxAccrualMinutes*msPerMinute {
		// Capped: the window is full, nothing further accrues.
		return 0
	}
	timePerCoin := float64(msPerHour) / float64(HourlyRate(managerLevel))
	return math.Mod(float64(elapsedMs), timePerCoin) / timePerCoin
}

func cappedElapsedMinutes(lastCollected, now time.Time) float64 {
	minutes := float64(elapsedMilliseconds(lastCollected, now)) / msPerMinute
	if minutes > MaxAccrualMinutes {
		return MaxAccrualMinutes
	}
	return minutes
}

func elapsedMilliseconds(lastCollected, now time.Time) int64 {
	ms := now.Sub(lastCollected).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}
