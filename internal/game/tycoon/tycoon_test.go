package tycoon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playventures/bizlab/internal/domain"
	"github.com/playventures/bizlab/internal/game/engine"
	"github.com/playventures/bizlab/internal/skill"
)

// fakeSaves is an in-memory repository.SessionSave with error injection
type fakeSaves struct {
	saves    map[string]*domain.TycoonSave
	saveErr  error
	loadErr  error
	saveOps  int
}

func newFakeSaves() *fakeSaves {
	return &fakeSaves{saves: make(map[string]*domain.TycoonSave)}
}

func (f *fakeSaves) key(userID, businessID string) string { return userID + "|" + businessID }

func (f *fakeSaves) Load(_ context.Context, userID, businessID string) (*domain.TycoonSave, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.saves[f.key(userID, businessID)], nil
}

func (f *fakeSaves) Save(_ context.Context, userID, businessID string, save domain.TycoonSave) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saveOps++
	f.saves[f.key(userID, businessID)] = &save
	return nil
}

func (f *fakeSaves) Delete(_ context.Context, userID, businessID string) error {
	delete(f.saves, f.key(userID, businessID))
	return nil
}

type staticModifiers struct {
	mods skill.Modifiers
}

func (m *staticModifiers) ModifiersFor(context.Context, string) (skill.Modifiers, error) {
	return m.mods, nil
}

func testConfig() *domain.BusinessSimulation {
	return &domain.BusinessSimulation{
		ID:       "lemonade_stand",
		Name:     "Lemonade Stand",
		GameType: domain.GameTypeTycoon,
		Variables: domain.Variables{
			PlayerInputs: []domain.PlayerInput{
				{Name: "quality", Label: "Quality"},
				{Name: "price", Label: "Price"},
			},
		},
		UpgradeTree: []domain.Upgrade{
			{ID: "bigger_sign", Name: "Bigger Sign", Cost: 100},
		},
		EventTriggers: domain.EventTriggers{
			Positive: []domain.BusinessEvent{{Name: "Heat Wave", Multiplier: 1.5}},
			Negative: []domain.BusinessEvent{{Name: "Rainy Day", Multiplier: 0.6}},
		},
	}
}

type sessionOpts struct {
	rnd   func() float64
	saves *fakeSaves
	mods  skill.Modifiers
	clock *time.Time
}

func newTestSession(t *testing.T, cfg *domain.BusinessSimulation, opts sessionOpts) *Session {
	t.Helper()
	if opts.rnd == nil {
		opts.rnd = func() float64 { return 0.5 } // neutral event branch
	}
	if opts.clock == nil {
		start := time.Unix(1000, 0)
		opts.clock = &start
	}
	if opts.mods == (skill.Modifiers{}) {
		opts.mods = skill.Modifiers{PriceMultiplier: 1.0, CostMultiplier: 1.0}
	}

	deps := engine.Deps{
		UserID:    "user-1",
		Rnd:       opts.rnd,
		Now:       func() time.Time { return *opts.clock },
		Modifiers: &staticModifiers{mods: opts.mods},
	}
	if opts.saves != nil {
		deps.Saves = opts.saves
	}
	return New(context.Background(), cfg, deps)
}

func act(t *testing.T, s *Session, action engine.Action) engine.View {
	t.Helper()
	view, err := s.Act(context.Background(), action)
	require.NoError(t, err)
	return view
}

func TestFreshSession_Defaults(t *testing.T) {
	s := newTestSession(t, testConfig(), sessionOpts{})

	view := s.View()
	assert.Equal(t, PhaseStrategy, view.Phase)
	assert.Equal(t, 1, view.Day)
	assert.Equal(t, DefaultStartingFunds, view.Funds)
	assert.Equal(t, map[string]int{"quality": 50, "price": 50}, view.Extra["sliders"])
}

func TestNeutralDay_SpecMath(t *testing.T) {
	// Sliders all 100, no upgrades, neutral event, neutral modifiers:
	// satisfaction 100, customers 20, revenue 100, expenses 50, profit 50
	s := newTestSession(t, testConfig(), sessionOpts{})
	act(t, s, engine.Action{Type: engine.ActionSetSliders, Sliders: map[string]int{"quality": 100, "price": 100}})

	view := act(t, s, engine.Action{Type: engine.ActionStartDay})
	assert.Equal(t, PhaseResult, view.Phase)

	result := view.Extra["day_result"].(DayResult)
	assert.Equal(t, 100, result.Satisfaction)
	assert.Equal(t, 20, result.Customers)
	assert.Equal(t, 100, result.Revenue)
	assert.Equal(t, 50, result.Expenses)
	assert.Equal(t, 50, result.Profit)
	assert.Equal(t, DefaultStartingFunds+50, view.Funds)
}

func TestPositiveEvent_AppliesConfigMultiplier(t *testing.T) {
	s := newTestSession(t, testConfig(), sessionOpts{rnd: func() float64 { return 0.9 }})
	act(t, s, engine.Action{Type: engine.ActionSetSliders, Sliders: map[string]int{"quality": 100, "price": 100}})

	view := act(t, s, engine.Action{Type: engine.ActionStartDay})
	result := view.Extra["day_result"].(DayResult)
	assert.Equal(t, "Heat Wave", result.EventName)
	assert.Equal(t, 1.5, result.Multiplier)
	// Satisfaction nudged up but clamped at 100; customers floor(20*1*1.5*1)
	assert.Equal(t, 100, result.Satisfaction)
	assert.Equal(t, 30, result.Customers)
}

func TestNegativeEvent_ReducesCustomers(t *testing.T) {
	s := newTestSession(t, testConfig(), sessionOpts{rnd: func() float64 { return 0.1 }})

	view := act(t, s, engine.Action{Type: engine.ActionStartDay})
	result := view.Extra["day_result"].(DayResult)
	assert.Equal(t, "Rainy Day", result.EventName)
	assert.Equal(t, 0.6, result.Multiplier)
	// Sliders at default 50: satisfaction floor(80 * 0.9) = 72
	assert.Equal(t, 72, result.Satisfaction)
	// floor(20 * 1 * 0.6 * 0.72) = 8
	assert.Equal(t, 8, result.Customers)
}

func TestSkillModifiers_AffectRevenueAndExpenses(t *testing.T) {
	s := newTestSession(t, testConfig(), sessionOpts{
		mods: skill.Modifiers{PriceMultiplier: 1.1, CostMultiplier: 0.9},
	})
	act(t, s, engine.Action{Type: engine.ActionSetSliders, Sliders: map[string]int{"quality": 100, "price": 100}})

	view := act(t, s, engine.Action{Type: engine.ActionStartDay})
	result := view.Extra["day_result"].(DayResult)
	assert.Equal(t, 110, result.Revenue) // floor(20*5*1.1)
	assert.Equal(t, 45, result.Expenses) // floor((20*2+10)*0.9)
}

func TestFundsFloorAtZero(t *testing.T) {
	// Punishing cost modifier forces a loss-making day: 12 customers,
	// revenue 60, expenses floor((12*2+10)*10) = 340, profit -280
	s := newTestSession(t, testConfig(), sessionOpts{
		mods: skill.Modifiers{PriceMultiplier: 1.0, CostMultiplier: 10.0},
	})
	act(t, s, engine.Action{Type: engine.ActionSetSliders, Sliders: map[string]int{"quality": 0, "price": 0}})

	view := act(t, s, engine.Action{Type: engine.ActionStartDay})
	result := view.Extra["day_result"].(DayResult)
	assert.Negative(t, result.Profit)
	assert.Equal(t, 0, view.Funds, "funds floor at zero, never negative")
}

func TestUpgradePurchase_Idempotent(t *testing.T) {
	s := newTestSession(t, testConfig(), sessionOpts{})

	view := act(t, s, engine.Action{Type: engine.ActionBuyUpgrade, UpgradeID: "bigger_sign"})
	assert.Equal(t, 0, view.Funds)
	assert.Equal(t, []string{"bigger_sign"}, view.Extra["upgrades"])

	_, err := s.Act(context.Background(), engine.Action{Type: engine.ActionBuyUpgrade, UpgradeID: "bigger_sign"})
	assert.ErrorIs(t, err, domain.ErrUpgradeOwned)
	assert.Equal(t, 0, s.funds, "a rejected purchase must not touch funds")
	assert.Len(t, s.ownedIDs(), 1)
}

func TestUpgrade_IncreasesCustomers(t *testing.T) {
	s := newTestSession(t, testConfig(), sessionOpts{})
	act(t, s, engine.Action{Type: engine.ActionBuyUpgrade, UpgradeID: "bigger_sign"})
	act(t, s, engine.Action{Type: engine.ActionSetSliders, Sliders: map[string]int{"quality": 100, "price": 100}})

	view := act(t, s, engine.Action{Type: engine.ActionStartDay})
	result := view.Extra["day_result"].(DayResult)
	assert.Equal(t, 24, result.Customers) // floor(20 * 1.2 * 1 * 1)
}

func TestDayCycle_AdvancesDay(t *testing.T) {
	s := newTestSession(t, testConfig(), sessionOpts{})

	act(t, s, engine.Action{Type: engine.ActionStartDay})
	view := act(t, s, engine.Action{Type: engine.ActionNextDay})
	assert.Equal(t, 2, view.Day)
	assert.Equal(t, PhaseStrategy, view.Phase)

	// Phase guards
	_, err := s.Act(context.Background(), engine.Action{Type: engine.ActionNextDay})
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
}

func TestSliderValidation(t *testing.T) {
	s := newTestSession(t, testConfig(), sessionOpts{})

	_, err := s.Act(context.Background(), engine.Action{Type: engine.ActionSetSliders, Sliders: map[string]int{"volume": 50}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	view := act(t, s, engine.Action{Type: engine.ActionSetSliders, Sliders: map[string]int{"quality": 150}})
	assert.Equal(t, 100, view.Extra["sliders"].(map[string]int)["quality"], "slider values clamp to 0-100")
}

func TestSave_DebouncedSingleWrite(t *testing.T) {
	saves := newFakeSaves()
	clock := time.Unix(1000, 0)
	s := newTestSession(t, testConfig(), sessionOpts{saves: saves, clock: &clock})
	ctx := context.Background()

	// Burst of changes, then ticks inside the debounce window: no write yet
	act(t, s, engine.Action{Type: engine.ActionSetSliders, Sliders: map[string]int{"quality": 80}})
	act(t, s, engine.Action{Type: engine.ActionSetSliders, Sliders: map[string]int{"price": 30}})
	s.Tick(ctx, clock.Add(500*time.Millisecond))
	assert.Equal(t, 0, saves.saveOps)

	s.Tick(ctx, clock.Add(SaveDebounce))
	assert.Equal(t, 1, saves.saveOps, "one write per debounce window")

	s.Tick(ctx, clock.Add(2*SaveDebounce))
	assert.Equal(t, 1, saves.saveOps, "clean state writes nothing")

	saved := saves.saves["user-1|lemonade_stand"]
	require.NotNil(t, saved)
	assert.Equal(t, 80, saved.SliderValues["quality"])
	assert.Equal(t, 30, saved.SliderValues["price"])
}

func TestSaveFailure_DoesNotCrashSession(t *testing.T) {
	saves := newFakeSaves()
	saves.saveErr = errors.New("disk full")
	clock := time.Unix(1000, 0)
	s := newTestSession(t, testConfig(), sessionOpts{saves: saves, clock: &clock})
	ctx := context.Background()

	act(t, s, engine.Action{Type: engine.ActionSetSliders, Sliders: map[string]int{"quality": 80}})
	s.Tick(ctx, clock.Add(SaveDebounce))

	// In-memory state stays authoritative
	assert.Equal(t, 80, s.sliders["quality"])
	assert.True(t, s.dirty, "a failed save stays dirty for retry")
}

func TestReload_RestoresSavedState(t *testing.T) {
	saves := newFakeSaves()
	saves.saves["user-1|lemonade_stand"] = &domain.TycoonSave{
		Day:          5,
		Funds:        730,
		Upgrades:     []string{"bigger_sign", "ghost_upgrade"},
		SliderValues: map[string]int{"quality": 90, "volume": 10},
	}
	s := newTestSession(t, testConfig(), sessionOpts{saves: saves})

	view := s.View()
	assert.Equal(t, 5, view.Day)
	assert.Equal(t, 730, view.Funds)
	assert.Equal(t, []string{"bigger_sign"}, view.Extra["upgrades"], "unknown saved upgrades are dropped")
	assert.Equal(t, 90, s.sliders["quality"])
	assert.NotContains(t, s.sliders, "volume", "unknown saved sliders are dropped")
}

func TestLoadFailure_FallsBackToFreshStart(t *testing.T) {
	saves := newFakeSaves()
	saves.loadErr = errors.New("connection refused")
	s := newTestSession(t, testConfig(), sessionOpts{saves: saves})

	view := s.View()
	assert.Equal(t, 1, view.Day)
	assert.Equal(t, DefaultStartingFunds, view.Funds)
}

func TestReset_ClearsSaveAndRestarts(t *testing.T) {
	saves := newFakeSaves()
	saves.saves["user-1|lemonade_stand"] = &domain.TycoonSave{Day: 9, Funds: 999}
	s := newTestSession(t, testConfig(), sessionOpts{saves: saves})
	require.Equal(t, 9, s.View().Day)

	view := act(t, s, engine.Action{Type: engine.ActionReset})
	assert.Equal(t, 1, view.Day)
	assert.Equal(t, DefaultStartingFunds, view.Funds)
	assert.Empty(t, saves.saves, "reset deletes the durable save")
}

func TestExit_RewardAndFlush(t *testing.T) {
	saves := newFakeSaves()
	s := newTestSession(t, testConfig(), sessionOpts{saves: saves})
	s.funds = 450
	s.markDirty()

	result, err := s.Exit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 450, result.CurrencyEarned)
	assert.Equal(t, 90, result.XPEarned) // floor(450 * 0.2)
	assert.Equal(t, 1, saves.saveOps, "exit flushes the pending save")

	_, err = s.Exit(context.Background())
	assert.ErrorIs(t, err, domain.ErrSessionEnded)
}

func TestExit_XPCapped(t *testing.T) {
	s := newTestSession(t, testConfig(), sessionOpts{})
	s.funds = 5000

	result, err := s.Exit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5000, result.CurrencyEarned)
	assert.Equal(t, ExitXPCap, result.XPEarned)
}

func TestEmptyConfigCollections_Degrade(t *testing.T) {
	cfg := testConfig()
	cfg.Variables = domain.Variables{}
	cfg.UpgradeTree = nil
	cfg.EventTriggers = domain.EventTriggers{}
	s := newTestSession(t, cfg, sessionOpts{rnd: func() float64 { return 0.9 }})

	// Positive branch with no configured events falls back to the default
	view := act(t, s, engine.Action{Type: engine.ActionStartDay})
	result := view.Extra["day_result"].(DayResult)
	assert.Equal(t, DefaultPositiveMultiplier, result.Multiplier)
	assert.Empty(t, result.EventName)
	assert.Greater(t, result.Customers, 0)
}
