// Package clicker implements the tap-to-earn template: manual clicks plus an
// optional per-second auto rate, with upgrades that permanently raise either.
package clicker

import (
	"context"
	"fmt"
	"time"

	"github.com/playventures/bizlab/internal/domain"
	"github.com/playventures/bizlab/internal/game/engine"
)

// DefaultClickValue applies when the config leaves click_value unset
const DefaultClickValue = 1

const tickInterval = time.Second

// Session is a clicker game in progress
type Session struct {
	cfg        *domain.BusinessSimulation
	score      int
	clickValue int
	autoRate   int
	owned      map[string]bool
	ended      bool
}

// New creates a clicker session from a config
func New(cfg *domain.BusinessSimulation, _ engine.Deps) *Session {
	clickValue := cfg.GameMechanics.ClickValue
	if clickValue <= 0 {
		clickValue = DefaultClickValue
	}

	return &Session{
		cfg:        cfg,
		clickValue: clickValue,
		autoRate:   cfg.GameMechanics.AutoRate,
		owned:      make(map[string]bool),
	}
}

func (s *Session) Type() domain.GameType {
	return domain.GameTypeClicker
}

func (s *Session) View() engine.View {
	ownedIDs := make([]string, 0, len(s.owned))
	for _, u := range s.cfg.UpgradeTree {
		if s.owned[u.ID] {
			ownedIDs = append(ownedIDs, u.ID)
		}
	}

	return engine.View{
		GameType: domain.GameTypeClicker,
		Phase:    "playing",
		Score:    s.score,
		Extra: map[string]any{
			"click_value": s.clickValue,
			"auto_rate":   s.autoRate,
			"upgrades":    ownedIDs,
		},
	}
}

func (s *Session) Act(_ context.Context, action engine.Action) (engine.View, error) {
	if s.ended {
		return engine.View{}, domain.ErrSessionEnded
	}

	switch action.Type {
	case engine.ActionClick:
		s.score += s.clickValue
	case engine.ActionBuyUpgrade:
		if err := s.buyUpgrade(action.UpgradeID); err != nil {
			return engine.View{}, err
		}
	default:
		return engine.View{}, fmt.Errorf("%w: %s", domain.ErrInvalidAction, action.Type)
	}

	return s.View(), nil
}

func (s *Session) buyUpgrade(upgradeID string) error {
	upgrade := s.cfg.FindUpgrade(upgradeID)
	if upgrade == nil {
		return fmt.Errorf("%w: %s", domain.ErrUpgradeNotFound, upgradeID)
	}
	if s.owned[upgradeID] {
		return fmt.Errorf("%w: %s", domain.ErrUpgradeOwned, upgradeID)
	}
	if s.score < upgrade.Cost {
		return fmt.Errorf("%w: upgrade costs %d, score %d", domain.ErrInsufficientFunds, upgrade.Cost, s.score)
	}

	s.score -= upgrade.Cost
	s.owned[upgradeID] = true

	switch upgrade.ModifierTarget {
	case domain.ModifierTargetClickValue:
		s.clickValue += int(upgrade.ModifierValue)
	case domain.ModifierTargetAutoRate:
		s.autoRate += int(upgrade.ModifierValue)
	}
	return nil
}

// Tick adds the auto rate once per second
func (s *Session) Tick(_ context.Context, _ time.Time) {
	if s.ended || s.autoRate <= 0 {
		return
	}
	s.score += s.autoRate
}

func (s *Session) TickInterval() time.Duration {
	return tickInterval
}

func (s *Session) Exit(_ context.Context) (domain.GameResult, error) {
	if s.ended {
		return domain.GameResult{}, domain.ErrSessionEnded
	}
	s.ended = true

	return domain.GameResult{
		CurrencyEarned: s.score / 10,
		XPEarned:       s.score / 20,
	}, nil
}
