// Package tycoon implements the three-phase business simulation template:
// set sliders and buy upgrades (strategy), resolve a simulated day
// (simulation), review the breakdown (result). Session state is durable per
// user per business, saved with a short debounce.
package tycoon

import (
	"context"
	"fmt"
	"time"

	"github.com/playventures/bizlab/internal/domain"
	"github.com/playventures/bizlab/internal/game/engine"
	"github.com/playventures/bizlab/internal/logger"
	"github.com/playventures/bizlab/internal/skill"
)

// Phases of the daily cycle
const (
	PhaseStrategy = "strategy"
	PhaseResult   = "result"
)

// Simulation tuning. The event multipliers apply when a config's event
// carries no multiplier of its own.
const (
	DefaultStartingFunds      = 100
	DefaultSliderValue        = 50
	SliderMin                 = 0
	SliderMax                 = 100
	PositiveEventThreshold    = 0.8
	NegativeEventThreshold    = 0.2
	DefaultPositiveMultiplier = 1.5
	DefaultNegativeMultiplier = 0.6
	BaseCustomers             = 20
	UpgradeCustomerBonus      = 0.2
	RevenuePerCustomer        = 5
	CostPerCustomer           = 2
	FixedDailyCost            = 10
	ExitXPCap                 = 200

	SaveDebounce = time.Second
	tickInterval = time.Second
)

// DayResult is the breakdown of one simulated day
type DayResult struct {
	Day          int     `json:"day"`
	EventName    string  `json:"event_name,omitempty"`
	EventEffect  string  `json:"event_effect,omitempty"`
	Multiplier   float64 `json:"multiplier"`
	Satisfaction int     `json:"satisfaction"`
	Customers    int     `json:"customers"`
	Revenue      int     `json:"revenue"`
	Expenses     int     `json:"expenses"`
	Profit       int     `json:"profit"`
}

// Session is a tycoon simulation in progress
type Session struct {
	cfg  *domain.BusinessSimulation
	deps engine.Deps

	phase    string
	day      int
	funds    int
	sliders  map[string]int
	owned    map[string]bool
	last     *DayResult
	dirtyAt  time.Time
	dirty    bool
	ended    bool
}

// New creates a tycoon session, reloading any saved state for this user and
// business. Load failures fall back to a fresh start; they never block play.
func New(ctx context.Context, cfg *domain.BusinessSimulation, deps engine.Deps) *Session {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	s := &Session{cfg: cfg, deps: deps}
	s.fresh()

	if deps.Saves == nil {
		return s
	}

	save, err := deps.Saves.Load(ctx, deps.UserID, cfg.ID)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to load tycoon save, starting fresh", "business_id", cfg.ID, "error", err)
		return s
	}
	if save != nil {
		s.restore(save)
	}
	return s
}

// fresh resets to day 1 with default funds and sliders
func (s *Session) fresh() {
	s.phase = PhaseStrategy
	s.day = 1
	s.funds = DefaultStartingFunds
	s.owned = make(map[string]bool)
	s.last = nil
	s.sliders = make(map[string]int, len(s.cfg.Variables.PlayerInputs))
	for _, input := range s.cfg.Variables.PlayerInputs {
		s.sliders[input.Name] = DefaultSliderValue
	}
}

func (s *Session) restore(save *domain.TycoonSave) {
	if save.Day > 0 {
		s.day = save.Day
	}
	s.funds = save.Funds
	for _, id := range save.Upgrades {
		if s.cfg.FindUpgrade(id) != nil {
			s.owned[id] = true
		}
	}
	for name, v := range save.SliderValues {
		if _, ok := s.sliders[name]; ok {
			s.sliders[name] = clampSlider(v)
		}
	}
}

func clampSlider(v int) int {
	if v < SliderMin {
		return SliderMin
	}
	if v > SliderMax {
		return SliderMax
	}
	return v
}

func (s *Session) Type() domain.GameType {
	return domain.GameTypeTycoon
}

func (s *Session) View() engine.View {
	ownedIDs := s.ownedIDs()
	sliders := make(map[string]int, len(s.sliders))
	for k, v := range s.sliders {
		sliders[k] = v
	}

	extra := map[string]any{
		"sliders":  sliders,
		"upgrades": ownedIDs,
	}
	if s.last != nil {
		extra["day_result"] = *s.last
	}

	return engine.View{
		GameType: domain.GameTypeTycoon,
		Phase:    s.phase,
		Day:      s.day,
		Funds:    s.funds,
		Extra:    extra,
	}
}

func (s *Session) ownedIDs() []string {
	ids := make([]string, 0, len(s.owned))
	for _, u := range s.cfg.UpgradeTree {
		if s.owned[u.ID] {
			ids = append(ids, u.ID)
		}
	}
	return ids
}

func (s *Session) Act(ctx context.Context, action engine.Action) (engine.View, error) {
	if s.ended {
		return engine.View{}, domain.ErrSessionEnded
	}

	var err error
	switch action.Type {
	case engine.ActionSetSliders:
		err = s.setSliders(action.Sliders)
	case engine.ActionBuyUpgrade:
		err = s.buyUpgrade(action.UpgradeID)
	case engine.ActionStartDay:
		err = s.runDay(ctx)
	case engine.ActionNextDay:
		err = s.nextDay()
	case engine.ActionReset:
		s.reset(ctx)
	default:
		err = fmt.Errorf("%w: %s", domain.ErrInvalidAction, action.Type)
	}
	if err != nil {
		return engine.View{}, err
	}

	return s.View(), nil
}

func (s *Session) setSliders(values map[string]int) error {
	if s.phase != PhaseStrategy {
		return fmt.Errorf("%w: sliders can only change during strategy", domain.ErrInvalidAction)
	}
	for name := range values {
		if _, ok := s.sliders[name]; !ok {
			return fmt.Errorf("%w: unknown slider %q", domain.ErrInvalidInput, name)
		}
	}
	for name, v := range values {
		s.sliders[name] = clampSlider(v)
	}
	s.markDirty()
	return nil
}

func (s *Session) buyUpgrade(upgradeID string) error {
	if s.phase != PhaseStrategy {
		return fmt.Errorf("%w: upgrades can only be bought during strategy", domain.ErrInvalidAction)
	}

	upgrade := s.cfg.FindUpgrade(upgradeID)
	if upgrade == nil {
		return fmt.Errorf("%w: %s", domain.ErrUpgradeNotFound, upgradeID)
	}
	if s.owned[upgradeID] {
		return fmt.Errorf("%w: %s", domain.ErrUpgradeOwned, upgradeID)
	}
	if s.funds < upgrade.Cost {
		return fmt.Errorf("%w: upgrade costs %d, funds %d", domain.ErrInsufficientFunds, upgrade.Cost, s.funds)
	}

	s.funds -= upgrade.Cost
	s.owned[upgradeID] = true
	s.markDirty()
	return nil
}

// runDay resolves one simulated day and moves to the result phase
func (s *Session) runDay(ctx context.Context) error {
	if s.phase != PhaseStrategy {
		return fmt.Errorf("%w: the day already ran", domain.ErrInvalidAction)
	}

	mods := s.modifiers(ctx)
	result := s.simulate(mods)

	s.funds += result.Profit
	if s.funds < 0 {
		s.funds = 0
	}
	s.last = &result
	s.phase = PhaseResult
	s.markDirty()
	return nil
}

// modifiers resolves skill modifiers fresh for this day. Resolution failures
// degrade to neutral; a missing skill service must not block play.
func (s *Session) modifiers(ctx context.Context) skill.Modifiers {
	neutral := skill.Modifiers{PriceMultiplier: 1.0, CostMultiplier: 1.0}
	if s.deps.Modifiers == nil {
		return neutral
	}
	mods, err := s.deps.Modifiers.ModifiersFor(ctx, s.deps.UserID)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to resolve skill modifiers, using neutral", "error", err)
		return neutral
	}
	return mods
}

func (s *Session) simulate(mods skill.Modifiers) DayResult {
	result := DayResult{Day: s.day, Multiplier: 1.0}

	// Event roll: top 20% positive, bottom 20% negative
	roll := s.deps.Rnd()
	polarity := 0
	switch {
	case roll > PositiveEventThreshold:
		polarity = 1
		result.Multiplier = DefaultPositiveMultiplier
		if evt := s.pickEvent(s.cfg.EventTriggers.Positive); evt != nil {
			result.EventName, result.EventEffect = evt.Name, evt.Effect
			if evt.Multiplier > 0 {
				result.Multiplier = evt.Multiplier
			}
		}
	case roll < NegativeEventThreshold:
		polarity = -1
		result.Multiplier = DefaultNegativeMultiplier
		if evt := s.pickEvent(s.cfg.EventTriggers.Negative); evt != nil {
			result.EventName, result.EventEffect = evt.Name, evt.Effect
			if evt.Multiplier > 0 {
				result.Multiplier = evt.Multiplier
			}
		}
	}

	quality := s.averageSlider() / 100
	satisfaction := 60 + quality*40
	switch polarity {
	case 1:
		satisfaction *= 1.1
	case -1:
		satisfaction *= 0.9
	}
	if satisfaction > 100 {
		satisfaction = 100
	}
	result.Satisfaction = int(satisfaction)

	upgradeFactor := 1 + float64(len(s.owned))*UpgradeCustomerBonus
	result.Customers = int(float64(BaseCustomers) * upgradeFactor * result.Multiplier * (satisfaction / 100))
	result.Revenue = int(float64(result.Customers) * RevenuePerCustomer * mods.PriceMultiplier)
	result.Expenses = int((float64(result.Customers)*CostPerCustomer + FixedDailyCost) * mods.CostMultiplier)
	result.Profit = result.Revenue - result.Expenses
	return result
}

func (s *Session) pickEvent(events []domain.BusinessEvent) *domain.BusinessEvent {
	if len(events) == 0 {
		return nil
	}
	i := int(s.deps.Rnd() * float64(len(events)))
	if i >= len(events) {
		i = len(events) - 1
	}
	return &events[i]
}

func (s *Session) averageSlider() float64 {
	if len(s.sliders) == 0 {
		return float64(DefaultSliderValue)
	}
	sum := 0
	for _, v := range s.sliders {
		sum += v
	}
	return float64(sum) / float64(len(s.sliders))
}

func (s *Session) nextDay() error {
	if s.phase != PhaseResult {
		return fmt.Errorf("%w: no day result to advance from", domain.ErrInvalidAction)
	}
	s.day++
	s.phase = PhaseStrategy
	s.markDirty()
	return nil
}

// reset clears the saved state and restarts at day 1 with default funds
func (s *Session) reset(ctx context.Context) {
	s.fresh()
	s.dirty = false
	if s.deps.Saves != nil {
		if err := s.deps.Saves.Delete(ctx, s.deps.UserID, s.cfg.ID); err != nil {
			logger.FromContext(ctx).Warn("Failed to delete tycoon save", "business_id", s.cfg.ID, "error", err)
		}
	}
}

func (s *Session) markDirty() {
	s.dirty = true
	s.dirtyAt = s.deps.Now()
}

// Tick flushes a dirty save once the debounce window has passed
func (s *Session) Tick(ctx context.Context, now time.Time) {
	if s.ended || !s.dirty || now.Sub(s.dirtyAt) < SaveDebounce {
		return
	}
	s.persist(ctx)
}

// persist writes the save blob. Failures are logged, not fatal; in-memory
// state stays authoritative for the session.
func (s *Session) persist(ctx context.Context) {
	if s.deps.Saves == nil {
		s.dirty = false
		return
	}

	save := domain.TycoonSave{
		Day:          s.day,
		Funds:        s.funds,
		Upgrades:     s.ownedIDs(),
		SliderValues: s.sliders,
		Timestamp:    s.deps.Now(),
	}
	if err := s.deps.Saves.Save(ctx, s.deps.UserID, s.cfg.ID, save); err != nil {
		logger.FromContext(ctx).Error("Failed to save tycoon session", "business_id", s.cfg.ID, "error", err)
		return
	}
	s.dirty = false
}

func (s *Session) TickInterval() time.Duration {
	return tickInterval
}

// Exit flushes any unsaved state and converts session funds into the exit
// reward. The reward is external currency; the session's own funds pool is
// left intact in the save.
func (s *Session) Exit(ctx context.Context) (domain.GameResult, error) {
	if s.ended {
		return domain.GameResult{}, domain.ErrSessionEnded
	}
	s.ended = true

	if s.dirty {
		s.persist(ctx)
	}

	xp := s.funds / 5 // floor(funds * 0.2)
	if xp > ExitXPCap {
		xp = ExitXPCap
	}
	return domain.GameResult{
		CurrencyEarned: s.funds,
		XPEarned:       xp,
	}, nil
}
