// Package game hosts the template state machines behind a single session
// manager: dispatching on a config's game type, serializing input per
// session, driving scheduled ticks, and committing exit rewards.
package game

import (
	"context"
	"fmt"

	"github.com/playventures/bizlab/internal/domain"
	"github.com/playventures/bizlab/internal/game/clicker"
	"github.com/playventures/bizlab/internal/game/driving"
	"github.com/playventures/bizlab/internal/game/engine"
	"github.com/playventures/bizlab/internal/game/matching"
	"github.com/playventures/bizlab/internal/game/rhythm"
	"github.com/playventures/bizlab/internal/game/sorting"
	"github.com/playventures/bizlab/internal/game/tycoon"
)

// NewSession constructs the template session for a config's game type.
// Pure dispatch: unknown types return a typed error, never a panic.
func NewSession(ctx context.Context, cfg *domain.BusinessSimulation, deps engine.Deps) (engine.Session, error) {
	switch cfg.GameType {
	case domain.GameTypeTycoon:
		return tycoon.New(ctx, cfg, deps), nil
	case domain.GameTypeClicker:
		return clicker.New(cfg, deps), nil
	case domain.GameTypeSorting:
		return sorting.New(cfg, deps), nil
	case domain.GameTypeDriving:
		return driving.New(cfg, deps), nil
	case domain.GameTypeMatching:
		return matching.New(cfg, deps), nil
	case domain.GameTypeRhythm:
		return rhythm.New(cfg, deps), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownGameType, cfg.GameType)
	}
}
