// Package matching implements the recipe-assembly template: a three-item
// target order must be reproduced in sequence from an ingredient palette.
package matching

import (
	"context"
	"fmt"
	"time"

	"github.com/playventures/bizlab/internal/domain"
	"github.com/playventures/bizlab/internal/game/engine"
)

// Template constants
const (
	RecipeLength      = 3
	DefaultBasePoints = 10
	FeedbackDelay     = time.Second

	tickInterval = 250 * time.Millisecond
)

type feedback int

const (
	feedbackNone feedback = iota
	feedbackSuccess
	feedbackFailure
)

// Session is a matching game in progress
type Session struct {
	cfg        *domain.BusinessSimulation
	rnd        func() float64
	now        func() time.Time
	items      []domain.Entity
	basePoints int

	target        []string
	buffer        []string
	score         int
	feedback      feedback
	feedbackUntil time.Time
	configErr     string
	ended         bool
}

// New creates a matching session. Fewer than three item entities cannot form
// a recipe, so that is a configuration error surfaced to the player.
func New(cfg *domain.BusinessSimulation, deps engine.Deps) *Session {
	basePoints := cfg.Scoring.BasePoints
	if basePoints <= 0 {
		basePoints = DefaultBasePoints
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	s := &Session{
		cfg:        cfg,
		rnd:        deps.Rnd,
		now:        now,
		basePoints: basePoints,
	}

	s.items = cfg.ItemEntities()
	if len(s.items) < RecipeLength {
		s.configErr = fmt.Sprintf("this game needs at least %d item entities, config has %d", RecipeLength, len(s.items))
		return s
	}

	s.newTarget()
	return s
}

// newTarget draws a fresh recipe of distinct ingredients
func (s *Session) newTarget() {
	indexes := make([]int, len(s.items))
	for i := range indexes {
		indexes[i] = i
	}
	// Partial Fisher-Yates: only the first RecipeLength picks matter
	for i := 0; i < RecipeLength; i++ {
		j := i + int(s.rnd()*float64(len(indexes)-i))
		if j >= len(indexes) {
			j = len(indexes) - 1
		}
		indexes[i], indexes[j] = indexes[j], indexes[i]
	}

	s.target = make([]string, RecipeLength)
	for i := 0; i < RecipeLength; i++ {
		s.target[i] = s.items[indexes[i]].ID
	}
}

func (s *Session) Type() domain.GameType {
	return domain.GameTypeMatching
}

func (s *Session) View() engine.View {
	view := engine.View{
		GameType:    domain.GameTypeMatching,
		Phase:       "playing",
		Score:       s.score,
		ConfigError: s.configErr,
	}
	if s.configErr != "" {
		view.Phase = "error"
		return view
	}

	palette := make([]string, len(s.items))
	for i, it := range s.items {
		palette[i] = it.ID
	}

	switch s.feedback {
	case feedbackSuccess:
		view.Phase = "feedback"
		view.Message = "Perfect match!"
	case feedbackFailure:
		view.Phase = "feedback"
		view.Message = "Not quite, try that order again."
	}

	view.Extra = map[string]any{
		"target":  append([]string(nil), s.target...),
		"buffer":  append([]string(nil), s.buffer...),
		"palette": palette,
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
	if action.Type != engine.ActionSelect {
		return engine.View{}, fmt.Errorf("%w: %s", domain.ErrInvalidAction, action.Type)
	}

	// Lockout while feedback is showing: the tap is swallowed, not an error
	if s.feedback != feedbackNone {
		return s.View(), nil
	}

	if !s.knownIngredient(action.IngredientID) {
		return engine.View{}, fmt.Errorf("%w: unknown ingredient %q", domain.ErrInvalidAction, action.IngredientID)
	}

	s.buffer = append(s.buffer, action.IngredientID)
	if len(s.buffer) < RecipeLength {
		return s.View(), nil
	}

	// Element-wise, in order; a correct set in the wrong order fails
	correct := true
	for i, id := range s.buffer {
		if id != s.target[i] {
			correct = false
			break
		}
	}

	if correct {
		s.score += s.basePoints
		s.feedback = feedbackSuccess
	} else {
		s.feedback = feedbackFailure
	}
	s.feedbackUntil = s.now().Add(FeedbackDelay)

	return s.View(), nil
}

func (s *Session) knownIngredient(id string) bool {
	for _, it := range s.items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Tick clears elapsed feedback: success rolls a new recipe, failure keeps
// the same one for another attempt.
func (s *Session) Tick(_ context.Context, now time.Time) {
	if s.ended || s.feedback == feedbackNone || now.Before(s.feedbackUntil) {
		return
	}

	wasSuccess := s.feedback == feedbackSuccess
	s.feedback = feedbackNone
	s.buffer = nil
	if wasSuccess {
		s.newTarget()
	}
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
		CurrencyEarned: s.score,
		XPEarned:       int(float64(s.score) * 0.5),
	}, nil
}
