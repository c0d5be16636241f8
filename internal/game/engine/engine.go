// Package engine defines the contract between the game session manager and
// the six template state machines. Each template is its own state shape
// behind the Session interface; there is no shared mutable game state.
package engine

import (
	"context"
	"time"

	"github.com/playventures/bizlab/internal/domain"
	"github.com/playventures/bizlab/internal/repository"
	"github.com/playventures/bizlab/internal/skill"
)

// Action types understood by the templates. Each template accepts its own
// subset and rejects the rest with domain.ErrInvalidAction.
const (
	ActionSetSliders = "set_sliders"
	ActionStartDay   = "start_day"
	ActionNextDay    = "next_day"
	ActionBuyUpgrade = "buy_upgrade"
	ActionReset      = "reset"
	ActionClick      = "click"
	ActionSort       = "sort"
	ActionMove       = "move"
	ActionSelect     = "select"
	ActionTap        = "tap"
	ActionRetry      = "retry"
)

// Movement directions for the driving template
const (
	DirectionUp    = "up"
	DirectionDown  = "down"
	DirectionLeft  = "left"
	DirectionRight = "right"
)

// Action is a single player input delivered to a session. Type selects the
// operation; the remaining fields are per-type parameters.
type Action struct {
	Type         string         `json:"type" validate:"required"`
	Sliders      map[string]int `json:"sliders,omitempty"`
	UpgradeID    string         `json:"upgrade_id,omitempty"`
	Bin          int            `json:"bin,omitempty"`
	Direction    string         `json:"direction,omitempty"`
	IngredientID string         `json:"ingredient_id,omitempty"`
	Lane         int            `json:"lane,omitempty"`
}

// View is the player-facing snapshot of a session. Templates fill the fields
// that apply to them and put anything type-specific under Extra.
type View struct {
	GameType    domain.GameType `json:"game_type"`
	Phase       string          `json:"phase"`
	Day         int             `json:"day,omitempty"`
	Funds       int             `json:"funds,omitempty"`
	Score       int             `json:"score"`
	Combo       int             `json:"combo,omitempty"`
	TimeLeft    int             `json:"time_left,omitempty"`
	Message     string          `json:"message,omitempty"`
	ConfigError string          `json:"config_error,omitempty"`
	Extra       map[string]any  `json:"extra,omitempty"`
}

// ModifierSource supplies the current skill modifiers for a user. Resolved
// fresh on every simulated day, never snapshotted.
type ModifierSource interface {
	ModifiersFor(ctx context.Context, userID string) (skill.Modifiers, error)
}

// Deps carries everything a template may need beyond its config. Rnd and Now
// are injected so tests can pin randomness and time.
type Deps struct {
	UserID    string
	Rnd       func() float64
	Now       func() time.Time
	Modifiers ModifierSource
	Saves     repository.SessionSave
}

// Session is one live game instance. The manager serializes all calls on a
// session, so implementations need no internal locking.
//
// Exit commits the template's reward exactly once; any later call returns
// domain.ErrSessionEnded. TickInterval returns 0 for templates that do not
// need scheduled ticks.
type Session interface {
	Type() domain.GameType
	View() View
	Act(ctx context.Context, action Action) (View, error)
	Tick(ctx context.Context, now time.Time)
	TickInterval() time.Duration
	Exit(ctx context.Context) (domain.GameResult, error)
}
