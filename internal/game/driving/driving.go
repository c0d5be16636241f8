// Package driving implements the grid-navigation template: a player token on
// a fixed 10x10 grid chases a relocating target against a countdown timer.
package driving

import (
	"context"
	"fmt"
	"time"

	"github.com/playventures/bizlab/internal/domain"
	"github.com/playventures/bizlab/internal/game/engine"
)

// Grid and timing constants
const (
	GridSize                = 10
	DefaultBasePoints       = 10
	DefaultTimeLimitSeconds = 30
	TargetBonusSeconds      = 5
)

type cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Session is a driving round in progress
type Session struct {
	cfg        *domain.BusinessSimulation
	rnd        func() float64
	basePoints int
	timeLimit  int

	player   cell
	target   cell
	score    int
	timeLeft int
	over     bool // round over, retry allowed
	ended    bool // session exited
}

// New creates a driving session from a config
func New(cfg *domain.BusinessSimulation, deps engine.Deps) *Session {
	basePoints := cfg.Scoring.BasePoints
	if basePoints <= 0 {
		basePoints = DefaultBasePoints
	}
	timeLimit := cfg.Scoring.TimeLimitSeconds
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimitSeconds
	}

	s := &Session{
		cfg:        cfg,
		rnd:        deps.Rnd,
		basePoints: basePoints,
		timeLimit:  timeLimit,
	}
	s.startRound()
	return s
}

func (s *Session) startRound() {
	s.player = cell{X: 0, Y: 0}
	s.score = 0
	s.timeLeft = s.timeLimit
	s.over = false
	s.respawnTarget()
}

// respawnTarget places the target on any cell except the player's
func (s *Session) respawnTarget() {
	for {
		c := cell{
			X: int(s.rnd() * GridSize),
			Y: int(s.rnd() * GridSize),
		}
		if c.X >= GridSize {
			c.X = GridSize - 1
		}
		if c.Y >= GridSize {
			c.Y = GridSize - 1
		}
		if c != s.player {
			s.target = c
			return
		}
	}
}

func (s *Session) Type() domain.GameType {
	return domain.GameTypeDriving
}

func (s *Session) View() engine.View {
	phase := "playing"
	if s.over {
		phase = "round_over"
	}
	return engine.View{
		GameType: domain.GameTypeDriving,
		Phase:    phase,
		Score:    s.score,
		TimeLeft: s.timeLeft,
		Extra: map[string]any{
			"player":    s.player,
			"target":    s.target,
			"grid_size": GridSize,
		},
	}
}

func (s *Session) Act(_ context.Context, action engine.Action) (engine.View, error) {
	if s.ended {
		return engine.View{}, domain.ErrSessionEnded
	}

	switch action.Type {
	case engine.ActionMove:
		if s.over {
			return engine.View{}, fmt.Errorf("%w: round is over, retry or exit", domain.ErrInvalidAction)
		}
		if err := s.move(action.Direction); err != nil {
			return engine.View{}, err
		}
	case engine.ActionRetry:
		// Abandoning a round forfeits its score; no partial reward
		s.startRound()
	default:
		return engine.View{}, fmt.Errorf("%w: %s", domain.ErrInvalidAction, action.Type)
	}

	return s.View(), nil
}

// move applies one step, clamped to grid bounds with no wraparound
func (s *Session) move(direction string) error {
	next := s.player
	switch direction {
	case engine.DirectionUp:
		next.Y--
	case engine.DirectionDown:
		next.Y++
	case engine.DirectionLeft:
		next.X--
	case engine.DirectionRight:
		next.X++
	default:
		return fmt.Errorf("%w: direction %q", domain.ErrInvalidAction, direction)
	}

	if next.X < 0 || next.X >= GridSize || next.Y < 0 || next.Y >= GridSize {
		return nil // clamped, no movement
	}
	s.player = next

	if s.player == s.target {
		s.score += s.basePoints
		s.timeLeft += TargetBonusSeconds
		s.respawnTarget()
	}
	return nil
}

// Tick runs the one-second countdown
func (s *Session) Tick(_ context.Context, _ time.Time) {
	if s.ended || s.over {
		return
	}
	s.timeLeft--
	if s.timeLeft <= 0 {
		s.timeLeft = 0
		s.over = true
	}
}

func (s *Session) TickInterval() time.Duration {
	return time.Second
}

func (s *Session) Exit(_ context.Context) (domain.GameResult, error) {
	if s.ended {
		return domain.GameResult{}, domain.ErrSessionEnded
	}
	s.ended = true

	return domain.GameResult{
		CurrencyEarned: s.score,
		XPEarned:       int(float64(s.score) * 0.5),
	}, nil
}
