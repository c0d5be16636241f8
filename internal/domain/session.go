package domain

import "time"

// TycoonSave is the tycoon template's durable per-user-per-business session
// blob. Absence of a save is a valid state (fresh start), not an error.
type TycoonSave struct {
	Day          int            `json:"day"`
	Funds        int            `json:"funds"`
	Upgrades     []string       `json:"upgrades"`
	SliderValues map[string]int `json:"slider_values"`
	Timestamp    time.Time      `json:"timestamp"`
}

// GameResult is the (currency, xp) pair a template reports to the reward
// ledger exactly once per session on exit.
type GameResult struct {
	CurrencyEarned int `json:"currency_earned"`
	XPEarned       int `json:"xp_earned"`
}
