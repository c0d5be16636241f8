// Package sorting implements the bin-sorting template: one item at a time
// must be routed to the bin matching its identity. Bins are position-indexed
// over the config's first three item entities.
package sorting

import (
	"context"
	"fmt"
	"time"

	"github.com/playventures/bizlab/internal/domain"
	"github.com/playventures/bizlab/internal/game/engine"
)

// Scoring deltas
const (
	CorrectPoints   = 10
	IncorrectPoints = 5
	BinCount        = 3
)

// Session is a sorting game in progress
type Session struct {
	bins      []domain.Entity
	rnd       func() float64
	score     int
	current   int // index into bins of the item waiting to be sorted
	configErr string
	ended     bool
}

// New creates a sorting session. A config with fewer than three item
// entities is a configuration error surfaced to the player, not a crash.
func New(cfg *domain.BusinessSimulation, deps engine.Deps) *Session {
	s := &Session{rnd: deps.Rnd}

	items := cfg.ItemEntities()
	if len(items) < BinCount {
		s.configErr = fmt.Sprintf("this game needs at least %d item entities, config has %d", BinCount, len(items))
		return s
	}

	s.bins = items[:BinCount]
	s.spawn()
	return s
}

func (s *Session) spawn() {
	s.current = int(s.rnd() * BinCount)
	if s.current >= BinCount {
		s.current = BinCount - 1
	}
}

func (s *Session) Type() domain.GameType {
	return domain.GameTypeSorting
}

func (s *Session) View() engine.View {
	view := engine.View{
		GameType:    domain.GameTypeSorting,
		Phase:       "playing",
		Score:       s.score,
		ConfigError: s.configErr,
	}
	if s.configErr != "" {
		view.Phase = "error"
		return view
	}

	binGlyphs := make([]string, BinCount)
	for i, b := range s.bins {
		binGlyphs[i] = b.Glyph
	}
	view.Extra = map[string]any{
		"item_id":    s.bins[s.current].ID,
		"item_glyph": s.bins[s.current].Glyph,
		"bins":       binGlyphs,
	}
	return view
}

func (s *Session) Act(_ context.Context, action engine.Action) (engine.View, error) {
	if s.ended {
		return engine.View{}, domain.ErrSessionEnded
	}
	if s.configErr != "" {
		return engine.View{}, fmt.Errorf("%w: %s", domain.ErrInvalidConfig, s.configErr)
	}
	if action.Type != engine.ActionSort {
		return engine.View{}, fmt.Errorf("%w: %s", domain.ErrInvalidAction, action.Type)
	}
	if action.Bin < 0 || action.Bin >= BinCount {
		return engine.View{}, fmt.Errorf("%w: bin %d out of range", domain.ErrInvalidAction, action.Bin)
	}

	if action.Bin == s.current {
		s.score += CorrectPoints
	} else {
		s.score -= IncorrectPoints
		if s.score < 0 {
			s.score = 0
		}
	}

	s.spawn()
	return s.View(), nil
}

// Tick is a no-op; sorting advances only on player decisions
func (s *Session) Tick(_ context.Context, _ time.Time) {}

func (s *Session) TickInterval() time.Duration {
	return 0
}

func (s *Session) Exit(_ context.Context) (domain.GameResult, error) {
	if s.ended {
		return domain.GameResult{}, domain.ErrSessionEnded
	}
	s.ended = true

	return domain.GameResult{
		CurrencyEarned: s.score,
		XPEarned:       int(float64(s.score) * 0.4),
	}, nil
}
